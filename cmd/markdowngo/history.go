// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barbaragodoy/markdowngo/internal/history"
	"github.com/barbaragodoy/markdowngo/internal/logview"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded conversion runs",
	Long: `History reads the SQLite database of recorded runs in history.dir.
Runs are recorded when history.enabled is set or a converting command is
given --history.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := history.NewStore(appConfig.History)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.List(cmd.Context(), limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No runs recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-19s  %-8s  %9s  %6s\n", "ID", "Started", "Status", "Converted", "Failed")
		fmt.Fprintln(out, strings.Repeat("-", 86))
		for _, r := range runs {
			fmt.Fprintf(out, "%-36s  %-19s  %-8s  %9d  %6d\n",
				r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Status, r.Succeeded, r.Failed)
		}
		fmt.Fprintf(out, "\n%d runs\n", len(runs))
		return nil
	},
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the events of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		showMarkdown, _ := cmd.Flags().GetBool("markdown")

		store, err := history.NewStore(appConfig.History)
		if err != nil {
			return err
		}
		defer store.Close()

		rep, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if showMarkdown {
			fmt.Fprintln(out, rep.Markdown)
			return nil
		}

		for _, f := range rep.Files {
			state := "ok"
			if !f.Result.Success {
				state = "failed: " + f.Result.Error
			}
			fmt.Fprintf(out, "%-30s  %-6s  %s\n", f.Name, f.Format.Label(), state)
		}
		fmt.Fprintln(out)
		if err := logview.Render(out, rep.Events, ""); err != nil {
			return err
		}
		fmt.Fprintln(out, logview.Status(rep.Status, rep.Succeeded(), rep.Failed()))
		return nil
	},
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every recorded run to YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		store, err := history.NewStore(appConfig.History)
		if err != nil {
			return err
		}
		defer store.Close()

		var path string
		switch format {
		case "yaml", "":
			path, err = store.ExportYAML(cmd.Context())
		case "json":
			path, err = store.ExportJSON(cmd.Context())
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
		return nil
	},
}

// --- delete subcommand ---

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.NewStore(appConfig.History)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted", args[0])
		return nil
	},
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "maximum runs to list (0 = all)")
	historyShowCmd.Flags().Bool("markdown", false, "print the run's Markdown instead of its events")
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyDeleteCmd)

	rootCmd.AddCommand(historyCmd)
}
