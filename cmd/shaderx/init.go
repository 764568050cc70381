package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"shaderx/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new shader project",
	Long: `Initialize a new shader project by creating a manifest (shaderx.toml) and
a sample shader in shaders/. If [path|name] is omitted, initializes the
current directory. A non-existing name creates the directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "shaders"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(project.Template(name)), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	shaderDir := filepath.Join(target, "shaders")
	if err := os.MkdirAll(shaderDir, 0o755); err != nil {
		return err
	}
	samplePath := filepath.Join(shaderDir, "sprite.shader")
	createdSample := false
	if _, err := os.Stat(samplePath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(samplePath, []byte(sampleShader), 0o600); err != nil {
			return fmt.Errorf("failed to write sample shader: %w", err)
		}
		createdSample = true
	}

	rel := target
	if r, err := filepath.Rel(wd, target); err == nil {
		rel = r
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized shader project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if createdSample {
		fmt.Fprintln(out, "  - shaders/sprite.shader")
	} else {
		fmt.Fprintln(out, "  - shaders/sprite.shader (existing)")
	}
	return nil
}

const sampleShader = `vertex_input Vertex
{
	float3 position semantic( POSITION ) format( FLOAT32 );
	float2 uv format( FLOAT32 );
	float4 color format( UNORM8 );
};

vertex_output VSOut
{
	float4 position semantic( POSITION );
	float2 uv;
	float4 color;
};

fragment_input PSIn
{
	float4 position semantic( POSITION );
	float2 uv;
	float4 color;
};

fragment_output PSOut
{
	float4 color semantic( COLOR ) target( 0 );
};

cbuffer( 0 ) Camera
{
	float4x4 viewProjection;
};

texture2D( 0 ) atlas;

void vertex_main( Vertex input, VSOut output, Camera camera )
{
	output.position = mul( camera.viewProjection, float4( input.position, 1.0 ) );
	output.uv = input.uv;
	output.color = input.color;
}

void fragment_main( PSIn input, PSOut output )
{
	output.color = sample_texture2D( atlas, input.uv ) * input.color;
}
`
