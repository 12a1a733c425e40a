package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/parse"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/question"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/internal/taxonomy"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/providers/observability"
)

type questionsOutput struct {
	RequestID  string               `json:"requestId"`
	Grade      *taxonomy.Grade      `json:"grade,omitempty"`
	BloomLevel *taxonomy.BloomLevel `json:"bloomLevel,omitempty"`
	Strategy   parse.Strategy       `json:"strategy"`
	Questions  []question.Question  `json:"questions"`
}

func newQuestionsCmd(a *app) *cobra.Command {
	var grade, bloom string

	cmd := &cobra.Command{
		Use:   "questions [file|-]",
		Short: "Recover questions from model output",
		Long: `Recover canonical questions from a model response.

The response is read from the file argument, or from stdin when the
argument is missing or "-". --grade and --bloom label the output and must
name an entry of the taxonomy (see "qgen taxonomy").

Exits with status 2 when no usable question is recovered.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := questionsOutput{}
			if grade != "" {
				g, err := a.taxonomy.LookupGrade(grade)
				if err != nil {
					return err
				}
				out.Grade = &g
			}
			if bloom != "" {
				l, err := a.taxonomy.LookupBloomLevel(bloom)
				if err != nil {
					return err
				}
				out.BloomLevel = &l
			}

			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			res := a.pipeline.Questions(cmd.Context(), raw)
			out.RequestID = res.RequestID
			out.Strategy = res.Strategy
			out.Questions = res.Questions

			if out.Grade != nil || out.BloomLevel != nil {
				a.observer.Debug(cmd.Context(), "questions labelled",
					observability.String(observability.AttrRequestID, res.RequestID),
					observability.String(observability.AttrGrade, grade),
					observability.String(observability.AttrBloomLevel, bloom),
				)
			}

			if err := writeJSON(cmd, out); err != nil {
				return err
			}
			if res.IsEmpty() {
				return ErrNothingRecovered
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&grade, "grade", "", "grade id or label, e.g. 7 or \"Grade 7\"")
	cmd.Flags().StringVar(&bloom, "bloom", "", "Bloom's level id or label, e.g. apply")
	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
