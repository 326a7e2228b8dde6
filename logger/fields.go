package logger

// Standard field names for consistent structured logging across dtsgen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldPhase     = "phase"

	// Symbols
	FieldLongname = "longname"
	FieldKind     = "kind"
	FieldName     = "name"

	// Diagnostics
	FieldDiagnostic = "diagnostic"
	FieldSeverity   = "severity"
	FieldHint       = "hint"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount = "count"
	FieldSize  = "size"

	// Files and paths
	FieldFile   = "file"
	FieldLine   = "line"
	FieldPath   = "path"
	FieldOutput = "output"
)
