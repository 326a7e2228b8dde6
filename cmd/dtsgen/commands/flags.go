package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/dtsgen/config"
	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/logger"
)

// flagKeys maps command-line flags onto the config keys they override
var flagKeys = map[string]string{
	"recursive":        "input.recursive",
	"format":           "input.format",
	"output":           "output.path",
	"filename":         "output.filename",
	"private":          "emit.private",
	"doc-comments":     "emit.doc_comments",
	"unresolved-types": "emit.unresolved_types",
	"strict":           "compile.strict",
	"api-version":      "compile.api_version",
	"log-json":         "log.json",
	"verbose":          "log.verbosity",
}

// verbosity is the effective log.verbosity of the running command
var verbosity int

// AddInputFlags registers the flags every compiling command shares
func AddInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolP("recursive", "r", false, "Read dumps from subdirectories too")
	f.String("format", "auto", "Input format: auto, json or yaml")
	f.Bool("strict", false, "Treat warnings as errors")
	f.Bool("private", false, "Keep symbols with private access")
	f.String("api-version", "", "Drop symbols whose @since is newer than this version")
	f.Bool("doc-comments", true, "Emit JSDoc comments")
	f.String("unresolved-types", "any", "Undocumented type names: any or verbatim")
	f.Bool("no-header", false, "Omit the generated-file header")
}

// AddGenerateFlags registers the output flags of generate
func AddGenerateFlags(cmd *cobra.Command) {
	AddInputFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Output file or directory (default: stdout)")
	cmd.Flags().String("filename", "index.d.ts", "File name used when --output is a directory")
}

// bindFlags binds the flags cmd actually has onto the shared Viper
// instance. Only flags set on the command line take precedence over
// config files and the environment.
func bindFlags(cmd *cobra.Command) error {
	v := config.GetViper()
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "failed to bind --%s", name)
		}
	}
	if noHeader, _ := cmd.Flags().GetBool("no-header"); noHeader {
		v.Set("output.header", false)
	}
	return nil
}

// Setup binds cmd's flags, loads the configuration and starts the logger.
// It runs before every command except the config subcommands.
func Setup(cmd *cobra.Command) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	verbosity = cfg.Log.Verbosity
	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	logger.Debugw("configuration loaded",
		"input", cfg.Input.Path,
		"output", cfg.Output.Path,
		"strict", cfg.Compile.Strict,
		"verbosity", logger.LevelName(cfg.Log.Verbosity))
	if logger.ShouldLogTrace(verbosity) {
		for _, s := range config.Introspect() {
			logger.Debugw("setting",
				"key", s.Key,
				"value", s.Value,
				"source", string(s.Source))
		}
	}
	return nil
}

// ExitCode maps a command error to the process exit status: 0 on success,
// 1 for out-of-date checks and fatal diagnostics, 2 for anything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errors.ErrOutOfDate), errors.Is(err, errors.ErrFatal):
		return 1
	default:
		return 2
	}
}
