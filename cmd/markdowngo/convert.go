// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/barbaragodoy/markdowngo/internal/batch"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert files to a single Markdown document",
	Long: `Convert reads each file, detects its format from the extension, and
renders it as Markdown. Supported formats are .xlsx, .xls, .docx, .csv and
.txt; .pdf is recognised but must go through the base64 command.

At most conversion.max_files files are converted per run (default 5);
extra files are dropped. Converted documents are joined with a horizontal
rule. The command fails only when no file could be converted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	o := newOrchestrator()

	if len(args) > o.MaxFiles() {
		slog.Warn("too many files, extra files dropped",
			"max_files", o.MaxFiles(), "given", len(args), "dropped", len(args)-o.MaxFiles())
		args = args[:o.MaxFiles()]
	}

	files := make([]batch.File, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		files = append(files, batch.File{Name: filepath.Base(path), Data: data})
	}
	o.Add(files...)

	return finishRun(cmd, o.Run())
}

func init() {
	convertCmd.Flags().Int("max-files", 0, "maximum number of files per run (default from conversion.max_files)")
	_ = viper.BindPFlag("conversion.max_files", convertCmd.Flags().Lookup("max-files"))
	addOutputFlags(convertCmd)

	rootCmd.AddCommand(convertCmd)
}
