// Package observ collects per-phase timings of a shader build.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase records the duration of one build phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	Done  bool
}

// Hook is called when a phase starts (done=false) and when it ends.
type Hook func(name string, done bool, elapsed time.Duration)

// Timer tracks build phases. Worker goroutines share one Timer.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	hook   Hook
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 16)} }

// SetHook installs a callback for phase boundaries.
func (t *Timer) SetHook(h Hook) {
	t.mu.Lock()
	t.hook = h
	t.mu.Unlock()
}

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	idx := len(t.phases) - 1
	hook := t.hook
	t.mu.Unlock()
	if hook != nil {
		hook(name, false, 0)
	}
	return idx
}

// End finishes a phase by its index. Ending a phase twice keeps the
// first duration.
func (t *Timer) End(idx int, note string) {
	t.mu.Lock()
	if idx < 0 || idx >= len(t.phases) || t.phases[idx].Done {
		t.mu.Unlock()
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
	p.Done = true
	name, dur, hook := p.Name, p.Dur, t.hook
	t.mu.Unlock()
	if hook != nil {
		hook(name, true, dur)
	}
}

// Summary returns a human-readable table of all tracked phases.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-24s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-24s %7.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report returns finished phases in start order. Phases of parallel
// workers overlap, so TotalMS is the wall time from the first start to
// the last end rather than a sum.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	report := Report{Phases: make([]PhaseReport, 0, len(t.phases))}
	var first, last time.Time
	for _, phase := range t.phases {
		if !phase.Done {
			continue
		}
		if first.IsZero() || phase.Start.Before(first) {
			first = phase.Start
		}
		if end := phase.Start.Add(phase.Dur); end.After(last) {
			last = end
		}
		report.Phases = append(report.Phases, PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		})
	}
	if len(report.Phases) > 0 {
		report.TotalMS = durationToMillis(last.Sub(first))
	}
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
