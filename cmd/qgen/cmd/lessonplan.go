package cmd

import (
	"github.com/spf13/cobra"
)

func newLessonPlanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lessonplan [file|-]",
		Short: "Recover lesson-plan sections from model output",
		Long: `Recover an ordered list of lesson-plan sections from a model response.

Accepts {"sections": [...]}, a bare array of sections, or a flat object
whose keys are section titles. Exits with status 2 when nothing is
recovered.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			res := a.pipeline.LessonPlan(cmd.Context(), raw)
			if err := writeJSON(cmd, res); err != nil {
				return err
			}
			if res.Plan.IsEmpty() {
				return ErrNothingRecovered
			}
			return nil
		},
	}
}
