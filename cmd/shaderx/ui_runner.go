package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"shaderx/internal/driver"
	"shaderx/internal/ui"
)

type buildOutcome struct {
	result *driver.BuildResult
	err    error
}

// runBuildWithUI runs driver.Build in the background and renders its
// events until the build finishes.
func runBuildWithUI(ctx context.Context, title string, paths []string, opts driver.Options) (*driver.BuildResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)

	go func() {
		opts.Sink = driver.SinkFunc(func(ev driver.Event) { events <- ev })
		res, err := driver.Build(ctx, paths, opts)
		outcomeCh <- buildOutcome{result: res, err: err}
		close(events)
	}()

	base, _ := os.Getwd()
	files := make([]string, len(paths))
	for i, p := range paths {
		files[i] = ui.DisplayPath(p, base)
	}
	// события приходят с исходными путями; модель сопоставляет их по DisplayPath
	view := displayEvents(events, base)
	model := ui.NewProgressModel(title, files, view)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// модель могла выйти по ctrl+c раньше конца сборки
	cancel()
	for range view {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

func displayEvents(in <-chan driver.Event, base string) <-chan driver.Event {
	out := make(chan driver.Event, cap(in))
	go func() {
		defer close(out)
		for ev := range in {
			if ev.File != "" {
				ev.File = ui.DisplayPath(ev.File, base)
			}
			out <- ev
		}
	}()
	return out
}
