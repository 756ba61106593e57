// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging, preventing typos and
// enabling IDE autocomplete across call sites.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldReason     = "reason"
	FieldErrorKind  = "error_kind"

	// Configuration fields.
	FieldLineLength = "line_length"
	FieldFix        = "fix"
	FieldDryRun     = "dry_run"
	FieldJobs       = "jobs"
	FieldConfigFile = "config_file"

	// Run statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithIssues = "files_with_issues"
	FieldViolationsTotal = "violations_total"
	FieldFilesModified   = "files_modified"
	FieldIterations      = "iterations"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule table fields.
	FieldTag = "tag"
)
