package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - Declarations, diagnostics, final status
//	1 (-v)      - + Input files read, output summary
//	2 (-vv)     - + Pipeline phases, timing, config loaded
//	3 (-vvv)    - + Per-doclet build decisions
//	4 (-vvvv)   - + Full symbol tree dump

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults     OutputCategory = iota // Generated declarations
	OutputDiagnostics                       // Diagnostics table
	OutputUserStatus                        // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress // Input files read, doclet counts
	OutputSummary  // Output size and location

	// Level 2 (-vv) - Detailed
	OutputPhases // Pipeline phase boundaries
	OutputTiming // Phase timing
	OutputConfig // Config values loaded/applied

	// Level 3 (-vvv) - Debug
	OutputDocletTrace // Per-doclet build decisions

	// Level 4 (-vvvv) - Full dump
	OutputTreeDump // Full symbol tree
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:     VerbosityUser,
	OutputDiagnostics: VerbosityUser,
	OutputUserStatus:  VerbosityUser,

	OutputProgress: VerbosityInfo,
	OutputSummary:  VerbosityInfo,

	OutputPhases: VerbosityDebug,
	OutputTiming: VerbosityDebug,
	OutputConfig: VerbosityDebug,

	OutputDocletTrace: VerbosityTrace,

	OutputTreeDump: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}
