package backdrop

import (
	"testing"
	"time"
)

func TestFrameStats(t *testing.T) {
	var s frameStats
	if s.average() != 0 {
		t.Errorf("empty average = %v, want 0", s.average())
	}
	for _, d := range []time.Duration{time.Millisecond, 3 * time.Millisecond, 2 * time.Millisecond} {
		s.record(d)
	}
	if s.average() != 2*time.Millisecond {
		t.Errorf("average = %v, want 2ms", s.average())
	}
	if s.worst != 3*time.Millisecond {
		t.Errorf("worst = %v, want 3ms", s.worst)
	}
	s.reset()
	if s.samples != 0 || s.worst != 0 || s.renderTime != 0 {
		t.Errorf("after reset = %+v", s)
	}
}

func TestFrameStatsDue(t *testing.T) {
	var s frameStats
	tests := []struct {
		n    int
		want bool
	}{
		{0, false},
		{1, false},
		{statsInterval - 1, false},
		{statsInterval, true},
		{statsInterval + 1, false},
		{statsInterval * 3, true},
	}
	for _, tt := range tests {
		if got := s.due(tt.n); got != tt.want {
			t.Errorf("due(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestLogStatsResets(t *testing.T) {
	bg, _, _ := newTestBackground(t)
	for range statsInterval {
		if err := bg.Frame(); err != nil {
			t.Fatal(err)
		}
	}
	if bg.stats.samples != 0 {
		t.Errorf("samples = %d after a stats window, want 0", bg.stats.samples)
	}
}
