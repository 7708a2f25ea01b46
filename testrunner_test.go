package backdrop

import (
	"errors"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"bad json", `{"steps": [`, "parse test script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "click"}]}`, `unknown action "click"`},
		{"theme without dark", `{"steps": [{"action": "theme"}]}`, `theme needs "dark"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.script))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadTestScript(t *testing.T) {
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "pointer", "x": 10, "y": 20},
		{"action": "theme", "dark": false},
		{"action": "screenshot", "label": "light"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 3 || r.Done() {
		t.Fatalf("steps = %d done = %v", len(r.steps), r.Done())
	}
	if r.steps[0].X != 10 || r.steps[0].Y != 20 || *r.steps[1].Dark {
		t.Errorf("steps = %+v", r.steps)
	}
}

func TestTestRunnerDrivesLoop(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "pointer", "x": 800, "y": 0},
		{"action": "wait", "frames": 3},
		{"action": "theme", "dark": false},
		{"action": "resize", "width": 400, "height": 300},
		{"action": "screenshot", "label": "after resize"},
		{"action": "stop"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	l, _ := newTestLoop(t, RunConfig{TestRunner: runner})

	// Frame 1: the pointer step is injected and consumed in the same frame.
	if err := l.Update(); err != nil {
		t.Fatal(err)
	}
	assertNear(t, "TargetX", l.bg.Pointer().TargetX, 1)

	// Frames 2-4: waiting.
	for range 3 {
		if err := l.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if !l.bg.Scene().Dark {
		t.Fatal("theme switched while waiting")
	}

	// Frame 5: theme.
	if err := l.Update(); err != nil {
		t.Fatal(err)
	}
	if l.bg.Scene().Dark {
		t.Error("theme step did not reach the background")
	}

	// Frame 6: resize.
	if err := l.Update(); err != nil {
		t.Fatal(err)
	}
	if w, h := l.bg.Surface().Size(); w != 400 || h != 300 {
		t.Errorf("surface = %dx%d, want 400x300", w, h)
	}
	if w, h := l.Layout(1280, 720); w != 400 || h != 300 {
		t.Errorf("Layout = %dx%d, want the scripted size", w, h)
	}

	// Frame 7: screenshot is queued for Draw.
	if err := l.Update(); err != nil {
		t.Fatal(err)
	}
	if len(l.screenshotQueue) != 1 || l.screenshotQueue[0] != "after resize" {
		t.Errorf("screenshot queue = %v", l.screenshotQueue)
	}
	l.screenshotQueue = l.screenshotQueue[:0]

	// Frame 8: stop step; the script is finished.
	if err := l.Update(); err != nil {
		t.Fatal(err)
	}
	if !runner.Done() {
		t.Error("runner not done after the last step")
	}
	if err := l.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update = %v, want Termination", err)
	}
}

func TestTestRunnerWaitsForSweep(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "sweep", "fromX": 0, "fromY": 0, "toX": 800, "toY": 600, "frames": 4},
		{"action": "screenshot", "label": "swept"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	l, _ := newTestLoop(t, RunConfig{TestRunner: runner})
	for i := range 4 {
		if err := l.Update(); err != nil {
			t.Fatal(err)
		}
		if len(l.screenshotQueue) != 0 {
			t.Fatalf("frame %d: screenshot taken before the sweep finished", i)
		}
	}
	assertNear(t, "TargetX", l.bg.Pointer().TargetX, 1)
	if err := l.Update(); err != nil {
		t.Fatal(err)
	}
	if len(l.screenshotQueue) != 1 {
		t.Errorf("screenshot queue = %v, want one entry", l.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner not done")
	}
}
