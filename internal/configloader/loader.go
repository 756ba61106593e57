// Package configloader discovers, merges, and validates lispfmt's
// configuration before pkg/engine ever sees it.
package configloader

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/basilforge/lispfmt/pkg/config"
)

// LineLengthEnvVar overrides line_length, layered between the
// discovered/explicit config file and CLI flags.
const LineLengthEnvVar = "LISPFMT_LINE_LENGTH"

// LoadOptions controls configuration discovery and layering.
type LoadOptions struct {
	// WorkingDir is where upward project-config discovery begins.
	WorkingDir string

	// ExplicitPath, if set, is used instead of discovery (--config).
	ExplicitPath string

	// CLIConfig carries CLI-flag overrides, layered last.
	CLIConfig config.Config
}

// Result carries the resolved config plus which files contributed to it.
type Result struct {
	Config    config.Config
	Paths     *ConfigPaths
	FromFiles []string
}

// Load resolves the effective configuration by layering, in
// increasing precedence: built-in defaults, system config, user
// config, project config (or --config), an env override, then CLI
// flags. The result is validated before being returned so pkg/engine
// only ever sees a well-formed Config.
func Load(ctx context.Context, opts LoadOptions) (Result, error) {
	cfg := config.Default()
	var fromFiles []string

	paths, err := DiscoverPaths(ctx, opts.WorkingDir)
	if err != nil {
		return Result{}, err
	}
	if opts.ExplicitPath != "" {
		paths.Explicit = opts.ExplicitPath
		paths.Project = ""
	}

	for _, path := range []string{paths.System, paths.User, layerProjectOrExplicit(paths)} {
		if path == "" {
			continue
		}
		layer, err := readConfigFile(path)
		if err != nil {
			return Result{}, err
		}
		cfg = Merge(cfg, layer)
		fromFiles = append(fromFiles, path)
	}

	if raw := os.Getenv(LineLengthEnvVar); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Result{}, fmt.Errorf("%s must be an integer, got %q", LineLengthEnvVar, raw)
		}
		cfg = Merge(cfg, config.Config{LineLength: n})
	}

	cfg = Merge(cfg, opts.CLIConfig)

	if err := Validate(cfg); err != nil {
		return Result{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return Result{Config: cfg, Paths: paths, FromFiles: fromFiles}, nil
}

func layerProjectOrExplicit(paths *ConfigPaths) string {
	if paths.Explicit != "" {
		return paths.Explicit
	}
	return paths.Project
}

func readConfigFile(path string) (config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := config.FromYAML(data)
	if err != nil {
		return config.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
