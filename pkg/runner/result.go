package runner

import "github.com/basilforge/lispfmt/pkg/engine"

// FileOutcome captures what happened to a single source file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Violations are the line-length violations found in the file
	// (post-fix, if Mode was ModeFix; pre-fix if ModeCheck).
	Violations []engine.Violation

	// Changed reports whether ModeFix produced different bytes than
	// the file originally contained. Always false in ModeCheck.
	Changed bool

	// Written reports whether the changed content was persisted to
	// disk. False when DryRun is set, even if Changed is true.
	Written bool

	// BackedUp reports whether a sidecar backup was created before
	// writing.
	BackedUp bool

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one violation.
	FilesWithIssues int

	// ViolationsTotal is the total number of violations across all files.
	ViolationsTotal int

	// FilesModified is the number of files actually written by a fix run.
	FilesModified int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file still has violations after
// processing (in ModeFix, an unresolved unbreakable line; in
// ModeCheck, any violation at all) or could not be processed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.ViolationsTotal > 0 || r.Stats.FilesErrored > 0
}

// HasIssues reports whether any violations were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.ViolationsTotal > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++

	if len(outcome.Violations) > 0 {
		r.Stats.FilesWithIssues++
		r.Stats.ViolationsTotal += len(outcome.Violations)
	}

	if outcome.Written {
		r.Stats.FilesModified++
	}
}
