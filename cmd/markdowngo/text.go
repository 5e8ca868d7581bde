// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
)

var textCmd = &cobra.Command{
	Use:   "text [text]",
	Short: "Wrap raw text in a Markdown document",
	Long: `Text takes raw text from an argument, --file, or stdin and wraps it in
a Markdown document with a conversion timestamp. Lines are trimmed; blank
lines are kept as paragraph breaks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		return finishRun(cmd, newOrchestrator().ConvertText(text))
	},
}

func init() {
	textCmd.Flags().String("file", "", "read the text from this file")
	addOutputFlags(textCmd)

	rootCmd.AddCommand(textCmd)
}
