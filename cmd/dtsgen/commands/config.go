package commands

import (
	"fmt"
	"path/filepath"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dtsgen/config"
	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/logger"
)

// ConfigCmd inspects and initializes dtsgen configuration
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage dtsgen configuration",
	Long: `Show the effective configuration, where each value came from, and
which config files dtsgen reads.

Precedence (lowest to highest): defaults, ~/.dtsgen/config.toml, the
nearest dtsgen.toml, DTSGEN_* environment variables, flags.`,
	// config commands must work while the config itself is invalid
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		verbosity, _ := cmd.Flags().GetCount("verbose")
		return logger.Initialize(jsonLogs, verbosity)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Print the merged configuration as TOML (default), YAML or JSON.

With --sources, print a table of every key with the file or environment
variable that set it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if sources, _ := cmd.Flags().GetBool("sources"); sources {
			return showSources(cmd)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		data, err := marshalConfig(cfg, format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file holding the defaults",
	Long: `Write every default setting to a TOML file. The path defaults to
dtsgen.toml in the working directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ProjectFileName
		if len(args) > 0 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")
		if err := config.WriteDefault(path, force); err != nil {
			return err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		pterm.Success.Printf("Wrote %s\n", abs)
		return nil
	},
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "List the config files dtsgen reads",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		locations := config.Locations()
		if len(locations) == 0 {
			pterm.Info.Println("No config locations (no home directory and no dtsgen.toml)")
			return nil
		}
		for _, loc := range locations {
			state := "missing"
			if loc.Exists {
				state = "found"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-8s %s\n", loc.Source, state, loc.Path)
		}
		return nil
	},
}

func init() {
	configShowCmd.Flags().String("format", "toml", "Output format: toml, yaml or json")
	configShowCmd.Flags().Bool("sources", false, "Show where each setting comes from")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configWhereCmd)
}

func marshalConfig(cfg *config.Config, format string) ([]byte, error) {
	if format != "json" {
		return cfg.Marshal(format)
	}
	data, err := json.Marshal(cfg, jsontext.WithIndent("  "))
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	return append(data, '\n'), nil
}

func showSources(cmd *cobra.Command) error {
	rows := pterm.TableData{{"Key", "Value", "Source", "From"}}
	for _, s := range config.Introspect() {
		rows = append(rows, []string{s.Key, fmt.Sprint(s.Value), string(s.Source), s.SourcePath})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), table)
	return err
}
