package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkt-dev/tk/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		GroupID:     "data",
		Short:       "Show or change tk settings",
		Annotations: map[string]string{annotationNoStore: "true"},
		Long: `Show or change tk settings.

Settings come from config.yaml (searched in ./.tk, $XDG_CONFIG_HOME/tk,
~/.config/tk and ~/.tk), overridden by TK_* environment variables and
then by command-line flags.

Keys:
  file           ticket data file (default ~/.tk/tickets.json)
  json           always print JSON (default false)
  lock-timeout   how long to wait for another tk process (default 5s)
  color          auto, always or never (default auto)`,
	}
	cmd.AddCommand(newConfigGetCmd(), newConfigSetCmd(), newConfigListCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := config.CheckKey(key); err != nil {
				return err
			}
			value := config.GetString(key)
			if jsonOutput {
				return outputJSON(cmd, map[string]string{"key": key, "value": value})
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting in config.yaml",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.SetYamlConfig(args[0], args[1])
			if err != nil {
				return err
			}
			if jsonOutput {
				return outputJSON(cmd, map[string]string{"key": args[0], "value": args[1], "path": path})
			}
			printSuccess("Set %s = %s in %s", args[0], args[1], path)
			return nil
		},
	}
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every setting and where config was loaded from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := config.KnownKeys()
			settings := make(map[string]string, len(keys))
			for _, key := range keys {
				settings[key] = config.GetString(key)
			}
			if jsonOutput {
				return outputJSON(cmd, map[string]interface{}{
					"config_file": config.ConfigFileUsed(),
					"settings":    settings,
				})
			}

			out := cmd.OutOrStdout()
			if used := config.ConfigFileUsed(); used != "" {
				fmt.Fprintf(out, "# %s\n", used)
			} else {
				fmt.Fprintln(out, "# no config file, using defaults")
			}
			for _, k := range keys {
				fmt.Fprintf(out, "%s = %s\n", k, settings[k])
			}
			return nil
		},
	}
}
