// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration fields.
	FieldFlavor         = "flavor"
	FieldWrite          = "write"
	FieldCheck          = "check"
	FieldJobs           = "jobs"
	FieldFirstLineBlank = "first_line_blank"

	// Document fields.
	FieldDefinitions = "definitions"
	FieldReferences  = "references"
	FieldLabel       = "label"
	FieldLanguage    = "language"
	FieldBackup      = "backup"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesFailed     = "files_failed"
	FieldDuration        = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
