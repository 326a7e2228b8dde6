// Package config loads dtsgen settings from TOML files and DTSGEN_*
// environment variables.
//
// Precedence (lowest to highest): built-in defaults, ~/.dtsgen/config.toml,
// the nearest dtsgen.toml found walking up from the working directory,
// environment variables. Command-line flags are bound on top by the CLI.
package config

// Config represents the dtsgen configuration
type Config struct {
	Input   InputConfig   `mapstructure:"input" toml:"input" yaml:"input" json:"input"`
	Output  OutputConfig  `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
	Emit    EmitConfig    `mapstructure:"emit" toml:"emit" yaml:"emit" json:"emit"`
	Compile CompileConfig `mapstructure:"compile" toml:"compile" yaml:"compile" json:"compile"`
	Log     LogConfig     `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
}

// InputConfig selects the doclet dumps to read
type InputConfig struct {
	Path      string `mapstructure:"path" toml:"path" yaml:"path" json:"path"`                     // file or directory of dumps
	Recursive bool   `mapstructure:"recursive" toml:"recursive" yaml:"recursive" json:"recursive"` // descend into subdirectories
	Format    string `mapstructure:"format" toml:"format" yaml:"format" json:"format"`             // auto, json or yaml
}

// OutputConfig configures where declarations are written
type OutputConfig struct {
	Path     string `mapstructure:"path" toml:"path" yaml:"path" json:"path"`                 // file or directory; empty = stdout
	Filename string `mapstructure:"filename" toml:"filename" yaml:"filename" json:"filename"` // used when Path is a directory
	Header   bool   `mapstructure:"header" toml:"header" yaml:"header" json:"header"`         // prepend the generated-file header
}

// EmitConfig controls rendering
type EmitConfig struct {
	Private         bool   `mapstructure:"private" toml:"private" yaml:"private" json:"private"`
	DocComments     bool   `mapstructure:"doc_comments" toml:"doc_comments" yaml:"doc_comments" json:"doc_comments"`
	UnresolvedTypes string `mapstructure:"unresolved_types" toml:"unresolved_types" yaml:"unresolved_types" json:"unresolved_types"` // any or verbatim
}

// CompileConfig controls the compiler phases
type CompileConfig struct {
	Strict     bool   `mapstructure:"strict" toml:"strict" yaml:"strict" json:"strict"`                     // warnings fail the run
	APIVersion string `mapstructure:"api_version" toml:"api_version" yaml:"api_version" json:"api_version"` // drop doclets with a newer since
}

// LogConfig configures the logger
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" yaml:"verbosity" json:"verbosity"`
}

// Config file names
const (
	ProjectFileName = "dtsgen.toml"
	UserDirName     = ".dtsgen"
	UserFileName    = "config.toml"
)

// DefaultDirPermissions is used when creating the user config directory
const DefaultDirPermissions = 0750
