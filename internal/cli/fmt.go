package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/basilforge/lispfmt/internal/logging"
	"github.com/basilforge/lispfmt/pkg/config"
	"github.com/basilforge/lispfmt/pkg/engine"
	"github.com/basilforge/lispfmt/pkg/runner"
)

type fmtFlags struct {
	stdout bool
	ignore []string
	jobs   int
}

func newFmtCommand() *cobra.Command {
	var cfg config.Config
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Reformat files, printing to stdout with --stdout",
		Long: `Fmt applies the same reformatting as fix. With --stdout it prints the
reformatted source instead of writing it back to disk, prefixing each
file's output with a "==> path <==" header whenever more than one file
is processed.

Examples:
  lispfmt fmt core.clj --stdout        Print reformatted source
  lispfmt fmt src/ --stdout            Print every reformatted file`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "print reformatted source to stdout instead of writing files")
	cmd.Flags().IntVar(&cfg.LineLength, "line-length", 0, "maximum line width (0 = use config default)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")

	return cmd
}

func runFmt(cmd *cobra.Command, args []string, cfg *config.Config, flags *fmtFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := loadEffectiveConfig(ctx, cmd, workDir, *cfg)
	if err != nil {
		return err
	}
	finalCfg := loadResult.Config

	if !flags.stdout {
		return runFmtInPlace(cmd, args, workDir, finalCfg, flags)
	}

	return runFmtStdout(cmd, args, workDir, finalCfg, flags, logger)
}

// runFmtInPlace delegates to the same write-back path as fix.
func runFmtInPlace(cmd *cobra.Command, args []string, workDir string, cfg config.Config, flags *fmtFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: flags.ignore,
		Jobs:         flags.jobs,
		Config:       cfg,
		Mode:         runner.ModeFix,
	}

	r := runner.New()
	result, err := r.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("fmt run failed"), err)
	}

	if result.Stats.FilesErrored > 0 {
		return fmt.Errorf("%d file(s) could not be processed", result.Stats.FilesErrored)
	}

	return nil
}

// runFmtStdout reads and reformats each discovered file directly,
// writing the result to stdout instead of back to disk.
func runFmtStdout(cmd *cobra.Command, args []string, workDir string, cfg config.Config, flags *fmtFlags, logger *log.Logger) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	discoverOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: flags.ignore,
	}

	files, err := runner.Discover(ctx, discoverOpts)
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	out := cmd.OutOrStdout()
	multi := len(files) > 1
	failed := 0

	for _, path := range files {
		source, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read file failed", logging.FieldPath, path, logging.FieldError, err)
			failed++
			continue
		}

		fixed, err := engine.FixSource(ctx, source, cfg)
		if err != nil {
			logger.Error("fix failed", logging.FieldPath, path, logging.FieldError, err)
			failed++
			continue
		}

		if multi {
			fmt.Fprintf(out, "==> %s <==\n", path)
		}
		if err := writeAll(out, fixed); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be processed", failed)
	}

	return nil
}

func writeAll(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}
