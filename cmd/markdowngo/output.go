// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/barbaragodoy/markdowngo/internal/batch"
	"github.com/barbaragodoy/markdowngo/internal/convert"
	"github.com/barbaragodoy/markdowngo/internal/history"
	"github.com/barbaragodoy/markdowngo/internal/logview"
	"github.com/barbaragodoy/markdowngo/pkg/types"
)

// newOrchestrator builds the conversion engine from the loaded config.
func newOrchestrator() *batch.Orchestrator {
	reg := convert.NewRegistry(convert.WithTimestampLayout(appConfig.Conversion.TimestampLayout))
	return batch.New(reg, batch.WithMaxFiles(appConfig.Conversion.MaxFiles))
}

// addOutputFlags registers the flags shared by every converting command.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "write Markdown to this file instead of stdout")
	cmd.Flags().String("report", "", "write the run report (status, files, events) as YAML to this file")
	cmd.Flags().String("events", "info", "minimum event severity to print: info, warning, error")
	cmd.Flags().BoolP("quiet", "q", false, "do not print conversion events")
	cmd.Flags().Bool("history", false, "record the run in the history database")
}

// finishRun prints the events and status, writes the Markdown and the
// optional report, and records the run when history is enabled. It returns
// an error when nothing was converted.
func finishRun(cmd *cobra.Command, rep batch.Report) error {
	stderr := cmd.ErrOrStderr()

	quiet, _ := cmd.Flags().GetBool("quiet")
	if !quiet {
		minimum, _ := cmd.Flags().GetString("events")
		if err := logview.Render(stderr, rep.Events, logview.ParseSeverity(minimum)); err != nil {
			return err
		}
		fmt.Fprintln(stderr, logview.Status(rep.Status, rep.Succeeded(), rep.Failed()))
	}

	if rep.Markdown != "" {
		output, _ := cmd.Flags().GetString("output")
		if err := writeOutput(cmd.OutOrStdout(), output, rep.Markdown); err != nil {
			return err
		}
	}

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := writeReport(reportPath, rep); err != nil {
			return err
		}
	}

	record, _ := cmd.Flags().GetBool("history")
	if record || appConfig.History.Enabled {
		if err := recordRun(cmd.Context(), rep); err != nil {
			slog.Warn("history write failed", "run", rep.ID, "error", err)
		}
	}

	switch rep.Status {
	case types.BatchFailed:
		return fmt.Errorf("conversion failed: %d of %d input(s) could not be converted", rep.Failed(), rep.Total())
	case types.BatchEmpty:
		return fmt.Errorf("nothing to convert")
	}
	return nil
}

// writeOutput writes md to path, or to stdout when path is empty or "-".
func writeOutput(stdout io.Writer, path, md string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(stdout, md+"\n")
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(md+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	slog.Info("markdown written", "path", path)
	return nil
}

func writeReport(path string, rep batch.Report) error {
	data, err := yaml.Marshal(&rep)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func recordRun(ctx context.Context, rep batch.Report) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := history.NewStore(appConfig.History)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, rep)
}

// readInput returns the first argument, the contents of --file, or stdin.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
