package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jainabhishek-dev/ai-question-generator-sub000/internal/taxonomy"
)

type taxonomyOutput struct {
	Grades      []taxonomy.Grade      `yaml:"grades"`
	BloomLevels []taxonomy.BloomLevel `yaml:"bloom_levels"`
}

func newTaxonomyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "taxonomy",
		Short: "Print the grade and Bloom's-level tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			err := enc.Encode(taxonomyOutput{
				Grades:      a.taxonomy.Grades(),
				BloomLevels: a.taxonomy.BloomLevels(),
			})
			if err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
