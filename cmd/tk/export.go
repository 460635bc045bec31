package main

import (
	"github.com/spf13/cobra"

	"github.com/tkt-dev/tk/internal/export"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export",
		GroupID: "data",
		Short:   "Export all tickets as JSON, JSONL, YAML or TOML",
		Long: `Write a snapshot of every ticket and the ID counter.

Without --output the snapshot goes to stdout. When --format is omitted it
is taken from the output file's extension, falling back to JSON.`,
		Example: `  tk export --format yaml
  tk export -o backup.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")

			format := export.FormatJSON
			if cmd.Flags().Changed("format") {
				raw, _ := cmd.Flags().GetString("format")
				f, err := export.ParseFormat(raw)
				if err != nil {
					return err
				}
				format = f
			} else if f, ok := export.FormatFromPath(output); ok {
				format = f
			}

			snap := export.NewSnapshot(store)
			if output == "" {
				return export.Encode(cmd.OutOrStdout(), format, snap)
			}
			if err := export.WriteFile(output, format, snap); err != nil {
				return err
			}
			if jsonOutput {
				return outputJSON(cmd, map[string]interface{}{
					"path":   output,
					"format": format,
					"count":  snap.Count,
				})
			}
			printSuccess("Exported %d tickets to %s", snap.Count, output)
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "json", "Export format (json, jsonl, yaml, toml)")
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	return cmd
}

