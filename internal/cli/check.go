package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/basilforge/lispfmt/internal/configloader"
	"github.com/basilforge/lispfmt/internal/logging"
	"github.com/basilforge/lispfmt/pkg/config"
	"github.com/basilforge/lispfmt/pkg/reporter"
	"github.com/basilforge/lispfmt/pkg/runner"
)

// ErrViolationsFound is returned when check mode finds violations.
var ErrViolationsFound = errors.New("violations found")

type checkFlags struct {
	format    string
	ignore    []string
	noContext bool
	jobs      int
}

func newCheckCommand() *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report lines exceeding the configured width",
		Long: `Check reports every line whose character width exceeds line_length and
is not covered by an ignore marker. It never modifies files.

By default, checks all .clj, .cljs, .cljc, and .edn files in the current
directory and subdirectories.

Examples:
  lispfmt check                  Check current directory
  lispfmt check src/             Check a directory
  lispfmt check core.clj         Check a single file
  lispfmt check --format summary Print aggregate counts only`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &cfg, flags)
		},
	}

	addCheckFlags(cmd, &cfg, flags)

	return cmd
}

func addCheckFlags(cmd *cobra.Command, cfg *config.Config, flags *checkFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, summary")
	cmd.Flags().IntVar(&cfg.LineLength, "line-length", 0, "maximum line width (0 = use config default)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
}

func runCheck(cmd *cobra.Command, args []string, cfg *config.Config, flags *checkFlags) error {
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

	logger.Debug("configuration loaded", logging.FieldLineLength, finalCfg.LineLength)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: flags.ignore,
		Jobs:         flags.jobs,
		Config:       finalCfg,
		Mode:         runner.ModeCheck,
	}

	logger.Debug("starting check run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	r := runner.New()
	result, err := r.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
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

	switch ExitCodeFromResult(result) {
	case ExitError:
		return fmt.Errorf("%d file(s) could not be processed", result.Stats.FilesErrored)
	case ExitViolationsFound:
		return ErrViolationsFound
	}

	return nil
}

// loadEffectiveConfig resolves configuration by layering CLI overrides
// on top of discovered/explicit config files.
func loadEffectiveConfig(ctx context.Context, cmd *cobra.Command, workDir string, cliCfg config.Config) (configloader.Result, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return configloader.Result{}, fmt.Errorf("get config flag: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return configloader.Result{}, errors.Join(errors.New("failed to load configuration"), err)
	}

	return result, nil
}
