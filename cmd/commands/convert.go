package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pluqqy/pluqqy-convert/internal/cli"
	"github.com/pluqqy/pluqqy-convert/pkg/clip"
	"github.com/pluqqy/pluqqy-convert/pkg/convert"
	"github.com/pluqqy/pluqqy-convert/pkg/feedback"
	"github.com/pluqqy/pluqqy-convert/pkg/files"
	"github.com/pluqqy/pluqqy-convert/pkg/models"
)

// clipboard is swapped in tests
var clipboard clip.Clipboard = clip.System{}

type convertOptions struct {
	to     string
	outDir string
	copy   bool
	format string
	wait   time.Duration
	jobs   int
}

// ConversionResult is one converted source as reported by the convert command
type ConversionResult struct {
	Source   string `json:"source" yaml:"source"`
	Target   string `json:"target" yaml:"target"`
	Output   string `json:"output,omitempty" yaml:"output,omitempty"`
	Code     string `json:"code,omitempty" yaml:"code,omitempty"`
	Feedback string `json:"feedback" yaml:"feedback"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`

	controller *convert.Controller
}

// NewConvertCommand creates the convert command
func NewConvertCommand(globals *GlobalFlags) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert source files to another language",
		Long: `Convert one or more source files to a target language with the configured AI backend.

With no files, or with "-", the source is read from standard input.

Examples:
  # Convert a file and print the result
  pluqqy-convert convert hello.js --to Go

  # Convert several files into a directory, four at a time
  pluqqy-convert convert src/*.js --to Rust --out converted --jobs 4

  # Convert from standard input and copy the result
  cat util.py | pluqqy-convert convert --to TypeScript --copy

  # Machine readable output
  pluqqy-convert convert hello.js --to Java -o json`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(opts.format); err != nil {
				return err
			}
			if err := cli.ValidateJobs(opts.jobs); err != nil {
				return err
			}
			if err := cli.ValidateOutputDir(opts.outDir); err != nil {
				return err
			}
			for _, arg := range args {
				if err := cli.ValidateSourcePath(arg); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, globals, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.to, "to", "t", "", "Target language: "+targetNames()+" (default from settings)")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "Write converted files to this directory")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the converted code to the clipboard")
	cmd.Flags().StringVarP(&opts.format, "output", "o", "text", "Output format (text|json|yaml)")
	cmd.Flags().DurationVar(&opts.wait, "wait", 30*time.Second, "How long to wait for the AI backend to become ready")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 4, "Number of files converted concurrently")

	return cmd
}

func runConvert(cmd *cobra.Command, globals *GlobalFlags, opts *convertOptions, args []string) error {
	cc := globals.CommandContext()
	defer cc.Close()

	settings, err := cc.LoadSettings()
	if err != nil {
		return err
	}

	target := settings.Conversion.DefaultLanguage
	if opts.to != "" {
		if target, err = cli.ValidateLanguage(opts.to); err != nil {
			return err
		}
	}

	sources := args
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	monitor, err := cc.Monitor(ctx)
	if err != nil {
		return err
	}

	waitCtx, cancel := context.WithTimeout(ctx, opts.wait)
	defer cancel()
	if _, err := monitor.Wait(waitCtx); err != nil {
		msg := feedback.Present(feedback.OutcomeNotReady, nil)
		return fmt.Errorf("%s (%s provider, waited %s)", msg.Text, settings.AI.Provider, opts.wait)
	}

	logger := cc.Logger()
	results := make([]*ConversionResult, len(sources))

	var stdinOnce sync.Once
	var stdinContent string
	var stdinErr error

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs)

	for i, source := range sources {
		g.Go(func() error {
			result := &ConversionResult{
				Source:     source,
				Target:     target.String(),
				controller: cc.NewController(monitor),
			}
			results[i] = result

			var code string
			var err error
			if source == "-" {
				stdinOnce.Do(func() { stdinContent, stdinErr = cli.ReadStdin() })
				code, err = stdinContent, stdinErr
			} else {
				code, err = files.ReadSource(source)
			}
			if err != nil {
				result.Error = err.Error()
				result.Feedback = feedback.Present(feedback.OutcomeFailure, err).Text
				return nil
			}

			converted, err := result.controller.Convert(gctx, code, target)
			result.Feedback = result.controller.Feedback().Text
			if err != nil {
				result.Error = err.Error()
				// Cancellation stops the remaining conversions
				if errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			}
			result.Code = converted

			if opts.outDir != "" {
				result.Output = files.OutputPath(opts.outDir, source, target)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// Written after all conversions so overwrite prompts do not interleave
	for _, r := range results {
		if r.Output == "" || r.Error != "" {
			continue
		}
		if err := writeOutput(r.Output, r.Code); err != nil {
			r.Error = err.Error()
			r.Feedback = feedback.Present(feedback.OutcomeFailure, err).Text
		}
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
			logger.Warn("conversion failed",
				zap.String("source", r.Source),
				zap.String("target", r.Target),
				zap.String("error", r.Error))
		}
	}

	if opts.copy {
		copyResults(results)
	}

	if err := printResults(cmd, opts, results); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(results))
	}
	return nil
}

// writeOutput refuses to overwrite an existing file unless confirmed. An
// existing file with the same content is left alone.
func writeOutput(path, content string) error {
	if existing, err := os.ReadFile(path); err == nil {
		stats := files.LineDiff(string(existing), content)
		if !stats.Changed() {
			return nil
		}
		ok, err := cli.Confirm(fmt.Sprintf("Overwrite %s (+%d -%d lines)?", path, stats.Added, stats.Removed), false)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("not overwriting existing file %s", path)
		}
	}
	return files.WriteFile(path, content)
}

// copyResults copies a single result through its controller, or all
// successful results joined together
func copyResults(results []*ConversionResult) {
	if len(results) == 1 {
		r := results[0]
		if err := r.controller.Copy(clipboard); err != nil {
			if !errors.Is(err, convert.ErrNothingToCopy) {
				cli.PrintWarning("%s", feedback.Present(feedback.OutcomeFailure, err).Text)
			}
			return
		}
		r.Feedback = r.controller.Feedback().Text
		return
	}

	var parts []string
	for _, r := range results {
		if r.Code != "" {
			parts = append(parts, r.Code)
		}
	}
	if len(parts) == 0 {
		return
	}
	if err := clipboard.WriteText(strings.Join(parts, "\n\n")); err != nil {
		cli.PrintWarning("%s", feedback.Present(feedback.OutcomeFailure, err).Text)
		return
	}
	if !cli.Quiet() {
		fmt.Fprintln(os.Stderr, feedback.Present(feedback.OutcomeCopied, nil).Text)
	}
}

// maxStatusWidth bounds one status line; the full error stays in the log and
// in json/yaml output
const maxStatusWidth = 160

func printResults(cmd *cobra.Command, opts *convertOptions, results []*ConversionResult) error {
	out := cmd.OutOrStdout()
	status := cmd.ErrOrStderr()

	if opts.format != string(cli.FormatText) {
		return cli.OutputResults(out, opts.format, results)
	}

	for i, r := range results {
		if !cli.Quiet() {
			fmt.Fprintf(status, "%s: %s\n", r.Source, cli.TruncateString(cli.FirstLine(r.Feedback), maxStatusWidth))
		}
		switch {
		case r.Error != "", r.Output != "":
			continue
		case len(results) > 1:
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "==> %s (%s) <==\n", r.Source, r.Target)
		}
		fmt.Fprintln(out, r.Code)
	}
	return nil
}

// targetNames lists the supported languages
func targetNames() string {
	names := make([]string, 0, len(models.Languages()))
	for _, l := range models.Languages() {
		names = append(names, l.String())
	}
	return strings.Join(names, ", ")
}
