package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shaderx/internal/diagfmt"
	"shaderx/internal/driver"
	"shaderx/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.shader",
	Short: "Parse a shader and dump its declarations",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(cmd.Context(), args[0], g.maxDiagnostics, parser.Limits{})
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	if result.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: g.color, ShowNotes: true})
	}
	if result.Err != nil {
		return reportError(result.Err, result.FileSet, g)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatASTPretty(os.Stdout, result.Parse, result.FileSet)
	case "json":
		return diagfmt.FormatASTJSON(os.Stdout, result.Parse)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
