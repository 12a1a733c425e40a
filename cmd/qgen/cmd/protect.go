package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/display"
)

func newProtectCmd(a *app) *cobra.Command {
	var fromHTML bool

	cmd := &cobra.Command{
		Use:   "protect [file|-]",
		Short: "Make free text safe for markdown and math rendering",
		Long: `Apply display protection to free text: math delimiters and tables are
preserved, bare dollar amounts are escaped, bullets are normalized and
paragraph breaks are collapsed.

With --html (or pipeline.convert_html in the config), HTML input is
converted to markdown first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if fromHTML || a.cfg.Pipeline.ConvertHTML {
				text = display.FromHTML(text)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), display.Protect(text))
			return err
		},
	}
	cmd.Flags().BoolVar(&fromHTML, "html", false, "convert HTML to markdown before protecting")
	return cmd
}
