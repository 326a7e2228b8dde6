package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dtsgen/config"
	"github.com/teranos/dtsgen/diag"
	"github.com/teranos/dtsgen/doclet"
	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/logger"
	"github.com/teranos/dtsgen/typegen"
	"github.com/teranos/dtsgen/typegen/typescript"
)

// GenerateCmd compiles doclet dumps into a declaration file
var GenerateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Compile jsdoc doclets into a TypeScript declaration file",
	Long: `Read doclet dumps produced by jsdoc -X and write an ambient TypeScript
declaration file.

The path may be a single dump or a directory of *.json, *.yaml and *.yml
dumps. Without --output the declarations go to stdout.

Examples:
  jsdoc -X src > doclets.json
  dtsgen generate doclets.json -o types/
  dtsgen generate dumps/ --recursive --strict`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	AddGenerateFlags(GenerateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	result, err := compile(cfg, args)
	printDiagnostics(result)
	if err != nil {
		return err
	}

	path := outputPath(cfg.Output.Path, cfg.Output.Filename)
	if path == "" {
		if _, err := fmt.Fprint(cmd.OutOrStdout(), result.Text); err != nil {
			return err
		}
		summarize(result)
		return nil
	}
	if err := writeOutput(path, result.Text); err != nil {
		return err
	}

	status(pterm.Success.Sprintf("Wrote %s (%s, %d symbols)",
		path, humanize.Bytes(uint64(len(result.Text))), result.Stats.Symbols))
	summarize(result)
	return nil
}

// summarize prints the compilation stats at -v and the whole tree at -vvvv
func summarize(result *typegen.Result) {
	if logger.ShouldOutput(verbosity, logger.OutputSummary) {
		s := result.Stats
		status(pterm.Info.Sprintf("%d doclets read, %d skipped, %d symbols (%d synthesized)",
			s.Doclets, s.Skipped, s.Symbols, s.Synthesized))
	}
	if logger.ShouldOutput(verbosity, logger.OutputTreeDump) && len(result.Tree.Roots) > 0 {
		if out, err := renderTree(result.Tree); err == nil {
			status(out)
		}
	}
}

// compile reads the configured input and runs the TypeScript generator.
// args may override the input path.
func compile(cfg *config.Config, args []string) (*typegen.Result, error) {
	path := cfg.Input.Path
	if len(args) > 0 {
		path = args[0]
	}

	format, err := doclet.ParseFormat(cfg.Input.Format)
	if err != nil {
		return nil, err
	}
	mode, err := typescript.ParseUnresolvedMode(cfg.Emit.UnresolvedTypes)
	if err != nil {
		return nil, err
	}

	doclets, err := doclet.Read(path, cfg.Input.Recursive, format)
	if err != nil {
		return nil, err
	}
	logger.Infow("doclets loaded",
		logger.FieldFile, path,
		logger.FieldCount, len(doclets))

	gen := typescript.NewGenerator(typescript.Options{
		DocComments:     cfg.Emit.DocComments,
		UnresolvedTypes: mode,
	})
	return typegen.Compile(doclets, gen, typegen.Options{
		Strict:     cfg.Compile.Strict,
		Private:    cfg.Emit.Private,
		APIVersion: cfg.Compile.APIVersion,
		Header:     cfg.Output.Header,
	})
}

// outputPath resolves the configured output to a file path. An empty
// result means stdout.
func outputPath(out, filename string) string {
	if out == "" || out == "-" {
		return ""
	}
	if strings.HasSuffix(out, "/") || strings.HasSuffix(out, string(os.PathSeparator)) {
		return filepath.Join(out, filename)
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, filename)
	}
	return out
}

func writeOutput(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), config.DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// diagnosticRows lays diagnostics out for a pterm table, header first
func diagnosticRows(diags []diag.Diagnostic) pterm.TableData {
	rows := pterm.TableData{{"Severity", "Kind", "Symbol", "Location", "Message"}}
	for _, d := range diags {
		loc := d.File
		if loc != "" && d.Line > 0 {
			loc = fmt.Sprintf("%s:%d", d.File, d.Line)
		}
		msg := d.Message
		if d.Hint != "" {
			msg += " (hint: " + d.Hint + ")"
		}
		rows = append(rows, []string{d.Severity.String(), string(d.Kind), d.Longname, loc, msg})
	}
	return rows
}

// printDiagnostics renders the diagnostics table on stderr, which keeps
// stdout free for declarations.
func printDiagnostics(result *typegen.Result) {
	if result == nil || len(result.Diagnostics) == 0 {
		return
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(diagnosticRows(result.Diagnostics)).Srender()
	if err != nil {
		logger.Warnw("failed to render diagnostics", logger.FieldError, err)
		return
	}
	fmt.Fprintln(os.Stderr, table)

	warnings, errs := 0, 0
	for _, d := range result.Diagnostics {
		switch d.Severity {
		case diag.SeverityWarning:
			warnings++
		case diag.SeverityError:
			errs++
		}
	}
	status(pterm.Info.Sprintf("%d diagnostics: %d errors, %d warnings",
		len(result.Diagnostics), errs, warnings))
}

func status(line string) {
	fmt.Fprintln(os.Stderr, line)
}
