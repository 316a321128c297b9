// Package cmd implements the CLI commands for TabPipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tabpipe",
	Short: "TabPipe — extract clean text and tables from PDF documents",
	Long: `TabPipe uploads a PDF to a document parsing service and re-derives
page-segmented plain text, a readable text-plus-tables rendering, and
normalized JSON for every detected table.

Usage:
  tabpipe extract <pdf> [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
