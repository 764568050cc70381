package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"shaderx/internal/diagfmt"
	"shaderx/internal/driver"
	"shaderx/internal/gen"
	"shaderx/internal/observ"
	"shaderx/internal/parser"
	"shaderx/internal/project"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [paths...]",
	Short: "Build every shader of a project",
	Long: `Build compiles all shader sources and writes the stage files, the packed
shader blob and the C++ layout tables. Without paths the sources listed in
shaderx.toml are used.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringSlice("target", nil, "target languages (glsl|hlsl|shdr); overrides the manifest")
	buildCmd.Flags().String("out", "", "output directory; overrides the manifest")
	buildCmd.Flags().Int("jobs", 0, "parallel compile jobs (0 = GOMAXPROCS)")
	buildCmd.Flags().Bool("no-cache", false, "do not read or write the compile cache")
	buildCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	buildCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
}

// buildPlan is what a build needs after flags and manifest are merged.
type buildPlan struct {
	paths   []string
	targets []gen.Target
	outDir  string
	jobs    int
	limits  parser.Limits
	names   *gen.NameOptions
}

func runBuild(cmd *cobra.Command, args []string) error {
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}

	plan, err := planBuild(cmd, args)
	if err != nil {
		return reportError(err, nil, g)
	}

	var cache *driver.DiskCache
	if !noCache {
		cache, err = driver.OpenDiskCache("shaderx")
		if err != nil && !g.quiet {
			fmt.Fprintf(os.Stderr, "%s cache disabled: %v\n", color.YellowString("warning:"), err)
		}
	}

	for _, target := range plan.targets {
		outDir := plan.outDir
		if len(plan.targets) > 1 {
			outDir = filepath.Join(outDir, target.String())
		}
		if err := buildTarget(cmd.Context(), plan, target, outDir, cache, mode, format, g); err != nil {
			return err
		}
	}
	return nil
}

func planBuild(cmd *cobra.Command, args []string) (buildPlan, error) {
	var plan buildPlan
	manifest, found, err := project.Load(".")
	if err != nil {
		return plan, err
	}

	if len(args) > 0 {
		wd, err := os.Getwd()
		if err != nil {
			return plan, err
		}
		if plan.paths, err = project.ExpandSources(wd, args); err != nil {
			return plan, err
		}
		if len(plan.paths) == 0 {
			return plan, fmt.Errorf("no shader files match %v", args)
		}
	} else {
		if !found {
			return plan, fmt.Errorf("no %s found; pass shader paths or run 'shaderx init'", project.ManifestName)
		}
		if plan.paths, err = manifest.Sources(); err != nil {
			return plan, err
		}
	}

	plan.outDir = "generated"
	plan.targets = []gen.Target{gen.TargetGLSL}
	if found {
		plan.outDir = manifest.OutDir()
		plan.jobs = manifest.Config.Build.Jobs
		plan.limits = manifest.Limits()
		plan.names = manifest.Names()
		if plan.targets, err = manifest.Targets(); err != nil {
			return plan, err
		}
	}

	flagTargets, err := cmd.Flags().GetStringSlice("target")
	if err != nil {
		return plan, err
	}
	if len(flagTargets) > 0 {
		plan.targets = plan.targets[:0]
		for _, name := range flagTargets {
			t, err := gen.ParseTarget(name)
			if err != nil {
				return plan, err
			}
			plan.targets = append(plan.targets, t)
		}
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		plan.outDir = out
	}
	if jobs, _ := cmd.Flags().GetInt("jobs"); jobs > 0 {
		plan.jobs = jobs
	}
	return plan, nil
}

func buildTarget(ctx context.Context, plan buildPlan, target gen.Target, outDir string, cache *driver.DiskCache, mode uiMode, format string, g globalFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	timer := observ.NewTimer()
	opts := driver.Options{
		Target:         target,
		Names:          plan.names,
		Limits:         plan.limits,
		Jobs:           plan.jobs,
		MaxDiagnostics: g.maxDiagnostics,
		Cache:          cache,
		Timer:          timer,
	}

	total := timer.Begin("build")
	var (
		br  *driver.BuildResult
		err error
	)
	if shouldUseTUI(mode, g.quiet) {
		br, err = runBuildWithUI(ctx, "build "+target.String(), plan.paths, opts)
	} else {
		br, err = driver.Build(ctx, plan.paths, opts)
	}
	timer.End(total, target.String())

	if br == nil {
		return err
	}
	entries := diagEntries(br)
	if err != nil {
		if errors.Is(err, driver.ErrBuildFailed) || len(entries) > 0 {
			if perr := printEntries(os.Stderr, entries, br.FileSet, format, g); perr != nil {
				return perr
			}
			return errReported
		}
		return err
	}

	phase := timer.Begin("write")
	written, err := driver.WriteOutputs(outDir, br)
	timer.End(phase, "")
	if err != nil {
		return err
	}

	if g.timings {
		if format == "json" {
			d, terr := driver.TimingDiagnostic(timer.Report(), len(plan.paths))
			if terr != nil {
				return terr
			}
			entries = append(entries, diagfmt.Entry{Diagnostic: d})
		} else {
			fmt.Fprint(os.Stderr, timer.Summary())
		}
	}
	if len(entries) > 0 && (!g.quiet || format == "json") {
		if err := printEntries(os.Stderr, entries, br.FileSet, format, g); err != nil {
			return err
		}
	}
	if !g.quiet {
		printBuildSummary(br, written, outDir)
	}
	return nil
}

func printBuildSummary(br *driver.BuildResult, written []driver.WrittenFile, outDir string) {
	cached, changed := 0, 0
	for _, f := range br.Files {
		if f.Cached {
			cached++
		}
	}
	for _, w := range written {
		if w.Changed {
			changed++
		}
	}
	fmt.Fprintf(os.Stdout, "%s %d shader(s) for %s (%d cached), %d of %d files changed in %s\n",
		color.GreenString("built"), len(br.Files), br.Target, cached, changed, len(written), outDir)
}
