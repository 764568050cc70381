package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestBanner(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	// значения, которые подставил бы -ldflags
	Version = "1.2.3-rc1"
	GitCommit = "abc123"
	BuildDate = ""

	got := Banner()
	if got != "shaderx 1.2.3-rc1\ncommit: abc123\n" {
		t.Fatalf("banner = %q", got)
	}
}

func TestColoredKeepsOddVersions(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	origVersion := Version
	t.Cleanup(func() { Version = origVersion })

	for _, v := range []string{"dev", "1.2", "0.1.0-dev"} {
		Version = v
		if got := Colored(); got != v {
			t.Fatalf("Colored() = %q, want %q", got, v)
		}
	}
	if !strings.HasPrefix(Banner(), "shaderx ") {
		t.Fatalf("banner must name the tool")
	}
}
