package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/basilforge/lispfmt/internal/logging"
	"github.com/basilforge/lispfmt/pkg/config"
	"github.com/basilforge/lispfmt/pkg/reporter"
	"github.com/basilforge/lispfmt/pkg/runner"
)

type fixFlags struct {
	format    string
	ignore    []string
	noContext bool
	jobs      int
	dryRun    bool
	noBackups bool
}

func newFixCommand() *cobra.Command {
	var cfg config.Config
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Rewrite lines exceeding the configured width",
		Long: `Fix repeatedly applies FixSource to each file until no fixable violation
remains, then writes the result back to disk. A sidecar backup is written
first when the config's backups.enabled is true (it is false by default)
and --no-backups is not given.

Examples:
  lispfmt fix                    Fix current directory
  lispfmt fix src/                Fix a directory
  lispfmt fix --dry-run           Show what would change without writing
  lispfmt fix --no-backups        Skip sidecar backups`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, &cfg, flags)
		},
	}

	addFixFlags(cmd, &cfg, flags)

	return cmd
}

func addFixFlags(cmd *cobra.Command, cfg *config.Config, flags *fixFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, summary")
	cmd.Flags().IntVar(&cfg.LineLength, "line-length", 0, "maximum line width (0 = use config default)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when fixing")
}

func runFix(cmd *cobra.Command, args []string, cfg *config.Config, flags *fixFlags) error {
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
	if flags.noBackups {
		finalCfg.Backups.Enabled = false
	}

	logger.Debug("configuration loaded",
		logging.FieldLineLength, finalCfg.LineLength,
		logging.FieldDryRun, flags.dryRun,
	)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: flags.ignore,
		Jobs:         flags.jobs,
		Config:       finalCfg,
		Mode:         runner.ModeFix,
		DryRun:       flags.dryRun,
	}

	logger.Debug("starting fix run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	r := runner.New()
	result, err := r.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("fix run failed"), err)
	}

	colorMode, _ := cmd.Flags().GetString("color")

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: true,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if result.Stats.FilesErrored > 0 {
		return fmt.Errorf("%d file(s) could not be processed", result.Stats.FilesErrored)
	}

	return nil
}
