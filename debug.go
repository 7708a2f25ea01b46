package backdrop

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
)

// statsInterval is how many frames pass between frame stat log lines.
const statsInterval = 600

// frameStats accumulates render timings between log lines.
type frameStats struct {
	renderTime time.Duration
	worst      time.Duration
	samples    int
}

func (s *frameStats) record(d time.Duration) {
	s.renderTime += d
	s.worst = max(s.worst, d)
	s.samples++
}

// due reports whether a stats line should be logged after frame n.
func (s *frameStats) due(n int) bool {
	return n > 0 && n%statsInterval == 0
}

func (s *frameStats) average() time.Duration {
	if s.samples == 0 {
		return 0
	}
	return s.renderTime / time.Duration(s.samples)
}

func (s *frameStats) reset() {
	*s = frameStats{}
}

// logStats writes the accumulated stats at debug level and starts a new
// window.
func (b *Background) logStats() {
	defer b.stats.reset()
	if !b.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	b.log.Debug("frame stats",
		"container", b.id,
		"frames", humanize.Comma(int64(b.frames)),
		"avgRender", b.stats.average(),
		"worstRender", b.stats.worst,
		"objects", len(b.scene.Objects),
		"particles", humanize.Comma(int64(b.scene.ParticleCount())),
		"edges", len(b.scene.Edges),
	)
}
