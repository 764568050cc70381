package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"shaderx/internal/driver"
	"shaderx/internal/gen"
	"shaderx/internal/symbols"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] file.shader",
	Short: "Compile a single shader file",
	Long: `Compile translates one shader source and prints every generated stage.
With --out the stages are written to <name>.<stage>.generated.<ext> instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().String("target", "glsl", "target language (glsl|hlsl|shdr)")
	compileCmd.Flags().String("out", "", "directory for the stage files; stdout when empty")
	compileCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	compileCmd.Flags().Bool("no-prefix", false, "keep user identifiers unprefixed")
}

func runCompile(cmd *cobra.Command, args []string) error {
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	targetName, err := cmd.Flags().GetString("target")
	if err != nil {
		return err
	}
	target, err := gen.ParseTarget(targetName)
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	noPrefix, err := cmd.Flags().GetBool("no-prefix")
	if err != nil {
		return err
	}

	opts := driver.Options{Target: target, Jobs: 1, MaxDiagnostics: g.maxDiagnostics}
	if noPrefix {
		opts.Names = &gen.NameOptions{}
	}
	br, err := driver.Build(cmd.Context(), args, opts)
	if br == nil {
		return err
	}
	entries := diagEntries(br)
	if len(entries) > 0 && (err != nil || !g.quiet) {
		if perr := printEntries(os.Stderr, entries, br.FileSet, format, g); perr != nil {
			return perr
		}
	}
	if err != nil {
		if errors.Is(err, driver.ErrBuildFailed) {
			return errReported
		}
		return err
	}

	r := br.Files[0].Result
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
	}
	for stage := range symbols.StageCount {
		if !r.HasStage(stage) {
			continue
		}
		text := r.Stages[stage].Text
		if outDir == "" {
			fmt.Fprintf(os.Stdout, "// %s %s\n%s\n", r.Name, stage, text)
			continue
		}
		path := filepath.Join(outDir, driver.StageFileName(r, stage))
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		if !g.quiet {
			fmt.Fprintf(os.Stdout, "wrote %s\n", path)
		}
	}
	return nil
}
