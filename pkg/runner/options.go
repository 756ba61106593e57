// Package runner provides multi-file orchestration for the check and
// fix operations, discovering source files and running pkg/engine over
// each one concurrently.
package runner

import "github.com/basilforge/lispfmt/pkg/config"

// Mode selects which engine operation the runner performs per file.
type Mode int

const (
	// ModeCheck reports violations without modifying files.
	ModeCheck Mode = iota

	// ModeFix rewrites files that exceed the configured line length.
	ModeFix
)

// Options controls multi-file processing behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered source files. Defaults to DefaultExtensions() when empty.
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config config.Config

	// Mode selects check or fix behavior.
	Mode Mode

	// DryRun suppresses writes in ModeFix; the outcome still reports
	// what would have changed.
	DryRun bool
}

// DefaultExtensions returns the default set of source file extensions
// recognized as Lisp-family source.
func DefaultExtensions() []string {
	return []string{".clj", ".cljs", ".cljc", ".edn"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
