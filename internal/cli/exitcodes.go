package cli

import "github.com/basilforge/lispfmt/pkg/runner"

// Exit codes for lispfmt. 0/1/2 are the engine's own semantics (spec
// §6); the rest follow BSD sysexits.h conventions for CLI errors.
const (
	// ExitSuccess indicates a clean run with no violations.
	ExitSuccess = 0

	// ExitViolationsFound indicates check mode found violations.
	ExitViolationsFound = 1

	// ExitError indicates a parse failure or internal invariant error.
	ExitError = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code for a check-mode run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}

	if result.Stats.FilesErrored > 0 {
		return ExitError
	}

	if result.Stats.ViolationsTotal > 0 {
		return ExitViolationsFound
	}

	return ExitSuccess
}
