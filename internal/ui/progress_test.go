package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"shaderx/internal/driver"
)

func TestTruncateKeepsFileName(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"shaders/sprite.shader", 40, "shaders/sprite.shader"},
		{"shaders/post/bloom.shader", 16, ".../bloom.shader"},
		{"abcdef", 2, "ab"},
	}
	for _, tc := range cases {
		got := truncate(tc.in, tc.width)
		if got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
		if runewidth.StringWidth(got) > tc.width {
			t.Fatalf("%q is wider than %d", got, tc.width)
		}
	}
}

func TestApplyEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("build", []string{"a.shader", "b.shader"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.shader", Status: driver.StatusWorking})
	if got := m.percent(); got != 0.25 {
		t.Fatalf("percent = %v, want 0.25", got)
	}
	m.applyEvent(driver.Event{File: "a.shader", Status: driver.StatusDone, Elapsed: 1500 * time.Microsecond})
	m.applyEvent(driver.Event{File: "b.shader", Stage: "layouts", Status: driver.StatusError, Err: errors.New("conflict")})
	m.applyEvent(driver.Event{Stage: "pack", Status: driver.StatusWorking})
	m.applyEvent(driver.Event{File: "unknown.shader", Status: driver.StatusDone})

	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v, want 1", got)
	}
	view := m.View()
	for _, want := range []string{"build (pack)", "1.5 ms", "layouts", "done", "error"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestDisplayPath(t *testing.T) {
	if got := DisplayPath("/p/shaders/a.shader", "/p"); got != "shaders/a.shader" {
		t.Fatalf("got %q", got)
	}
	if got := DisplayPath("/elsewhere/a.shader", "/p"); got != "/elsewhere/a.shader" {
		t.Fatalf("got %q", got)
	}
}
