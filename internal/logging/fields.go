package logging

// Field names for structured logging.
const (
	FieldError   = "error"
	FieldPath    = "path"
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Feature registry.
	FieldFeature = "feature"
	FieldState   = "state"

	// Document and decorations.
	FieldLine    = "line"
	FieldLines   = "lines"
	FieldChanges = "changes"
	FieldDocVer  = "doc_version"

	// Services.
	FieldTheme    = "theme"
	FieldScope    = "scope"
	FieldLanguage = "language"
	FieldCount    = "count"
)
