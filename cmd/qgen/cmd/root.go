// Package cmd implements the qgen command line: it reads raw model output
// from a file or stdin and prints the recovered, render-safe result as JSON.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/normalize"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/pipeline"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/internal/config"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/internal/taxonomy"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/providers/observability/slogobs"
)

// ErrNothingRecovered is returned when the model output yields no usable
// content. Execute maps it to exit status 2.
var ErrNothingRecovered = errors.New("nothing usable recovered from model output")

// app is the state shared by all subcommands, built once per run.
type app struct {
	cfgFile string

	cfg      *config.Config
	observer *slogobs.Observer
	pipeline *pipeline.Pipeline
	taxonomy *taxonomy.Taxonomy
}

// NewRootCmd builds the qgen command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "qgen",
		Short: "Recover questions and lesson plans from raw LLM output",
		Long: `qgen turns unreliable language-model output into clean, render-safe JSON.

Input may be fenced, wrapped in prose, carry trailing commas or invalid
escapes, or be truncated. Text fields are protected for markdown display:
math stays intact and bare dollar amounts are escaped.

Example:
  qgen questions response.txt
  cat response.txt | qgen questions --grade 7 --bloom apply
  qgen lessonplan plan.txt`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./.qgen.yaml or $HOME/.qgen.yaml)")

	root.AddCommand(
		newQuestionsCmd(a),
		newLessonPlanCmd(a),
		newProtectCmd(a),
		newTaxonomyCmd(a),
	)
	return root
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, ErrNothingRecovered) {
			return 2
		}
		return 1
	}
	return 0
}

func (a *app) init(logOutput io.Writer) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	tax, err := taxonomy.Load(cfg.Taxonomy.File)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.taxonomy = tax
	a.observer = slogobs.New(
		slogobs.WithFormat(slogobs.ParseFormat(cfg.Log.Format)),
		slogobs.WithLevel(slogobs.ParseLevel(cfg.Log.Level)),
		slogobs.WithOutput(logOutput),
	)
	a.pipeline = pipeline.New(
		pipeline.WithObserver(a.observer),
		pipeline.WithNormalizer(normalize.New(normalize.WithHTMLConversion(cfg.Pipeline.ConvertHTML))),
	)
	return nil
}

// readInput reads the single positional argument, or stdin when it is
// absent or "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}
