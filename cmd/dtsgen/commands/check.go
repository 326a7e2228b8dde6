package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dtsgen/config"
	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/typegen"
)

// CheckCmd verifies a committed declaration file matches its doclets
var CheckCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Check that a declaration file is up to date",
	Long: `Compile the doclets and compare the result with an existing declaration
file. The generator version line is ignored.

Exit codes:
  0 - up to date
  1 - out of date or missing
  2 - error during check`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	AddInputFlags(CheckCmd)
	CheckCmd.Flags().StringP("output", "o", "", "Configured output file or directory")
	CheckCmd.Flags().String("filename", "index.d.ts", "File name used when --output is a directory")
	CheckCmd.Flags().String("against", "", "Declaration file to compare with (default: the configured output)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	against, _ := cmd.Flags().GetString("against")
	if against == "" {
		against = outputPath(cfg.Output.Path, cfg.Output.Filename)
	}
	if against == "" {
		return errors.WithHint(
			errors.NewInvalidInputError("no declaration file to check"),
			"pass --against FILE or set output.path in dtsgen.toml")
	}

	result, err := compile(cfg, args)
	printDiagnostics(result)
	if err != nil {
		return err
	}

	check, err := typegen.CheckFile(result.Text, against)
	if err != nil {
		return err
	}
	report(check)
	return check.Err()
}

func report(check *typegen.CheckResult) {
	switch {
	case check.UpToDate:
		status(pterm.Success.Sprintf("✓ %s is up to date", check.Path))
	case check.Missing:
		status(pterm.Error.Sprintf("✗ %s does not exist", check.Path))
	default:
		status(pterm.Error.Sprintf("✗ %s is out of date (first difference at line %d)", check.Path, check.Line))
	}
}
