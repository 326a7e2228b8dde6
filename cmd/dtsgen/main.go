package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dtsgen/cmd/dtsgen/commands"
	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "dtsgen [path]",
	Short: "dtsgen - TypeScript declarations from jsdoc doclets",
	Long: `dtsgen compiles the doclets jsdoc dumps with -X into an ambient TypeScript
declaration file (.d.ts).

Without a subcommand dtsgen runs generate.

Available commands:
  generate - Compile doclet dumps into declarations
  check    - Verify a declaration file is up to date
  tree     - Print the reconstructed symbol tree
  config   - Show and initialize configuration
  version  - Show version information

Examples:
  jsdoc -X src > doclets.json
  dtsgen doclets.json -o index.d.ts
  dtsgen check doclets.json --against index.d.ts
  dtsgen tree doclets.json`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return commands.Setup(cmd)
	},
	RunE: commands.GenerateCmd.RunE,
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	commands.AddGenerateFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.TreeCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		if logger.JSONOutput {
			logger.Errorw("command failed",
				logger.FieldError, err.Error(),
				logger.FieldHint, errors.FlattenHints(err))
		} else {
			fmt.Fprintln(os.Stderr, pterm.Error.Sprint(err))
			for _, hint := range errors.GetAllHints(err) {
				fmt.Fprintln(os.Stderr, "  hint: "+hint)
			}
		}
	}
	logger.Cleanup()
	os.Exit(commands.ExitCode(err))
}
