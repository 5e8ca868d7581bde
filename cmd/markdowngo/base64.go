// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barbaragodoy/markdowngo/pkg/types"
)

var base64Cmd = &cobra.Command{
	Use:   "base64 [payload]",
	Short: "Convert a Base64 payload to Markdown",
	Long: `Base64 decodes a payload given as an argument, read from --file, or read
from stdin. An optional data URI prefix (data:<mime>;base64,) is removed and
missing padding is accepted.

--source-type declares what the data is: pdf, docx, xlsx, csv, or generic.
CSV data is rendered as a table; everything else is inserted as text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBase64,
}

func runBase64(cmd *cobra.Command, args []string) error {
	sourceFlag, _ := cmd.Flags().GetString("source-type")
	source := types.ParseSourceType(sourceFlag)
	if sourceFlag != "" && string(source) != sourceFlag {
		return fmt.Errorf("unsupported source type %q: use one of %v", sourceFlag, types.SourceTypes)
	}

	payload, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	return finishRun(cmd, newOrchestrator().ConvertBase64(payload, source))
}

func init() {
	base64Cmd.Flags().String("source-type", string(types.SourceGeneric), "declared source type: pdf, docx, xlsx, csv, generic")
	base64Cmd.Flags().String("file", "", "read the payload from this file")
	addOutputFlags(base64Cmd)

	rootCmd.AddCommand(base64Cmd)
}
