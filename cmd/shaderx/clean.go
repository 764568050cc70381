package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shaderx/internal/driver"
	"shaderx/internal/project"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated files and the compile cache",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().Bool("cache-only", false, "only drop the compile cache")
}

func runClean(cmd *cobra.Command, _ []string) error {
	cacheOnly, err := cmd.Flags().GetBool("cache-only")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	cache, err := driver.OpenDiskCache("shaderx")
	if err != nil {
		return err
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to drop cache: %w", err)
	}
	fmt.Fprintf(out, "dropped cache in %s\n", cache.Dir())
	if cacheOnly {
		return nil
	}

	manifest, found, err := project.Load(".")
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	outDir := manifest.OutDir()
	info, err := os.Stat(outDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(out, "output directory not found")
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", outDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", outDir)
	}
	if err := os.RemoveAll(outDir); err != nil {
		return fmt.Errorf("failed to remove %q: %w", outDir, err)
	}
	fmt.Fprintf(out, "removed %s\n", outDir)
	return nil
}
