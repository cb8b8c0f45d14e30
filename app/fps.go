package app

import (
	"log/slog"
	"time"
)

// the frames-per-second metric is recomputed once per measurement window
const fpsInterval = 2 * time.Second

type fpsMeter struct {
	start  time.Duration
	frames int
	fps    float64
}

func (m *fpsMeter) reset(now time.Duration) {
	m.start = now
	m.frames = 0
}

// tick counts one finished frame. Once the measurement window has elapsed
// the metric is recomputed and the window restarts; between recomputations
// the reported value stays unchanged.
func (m *fpsMeter) tick(now time.Duration) {
	m.frames++

	elapsed := now - m.start
	if elapsed < fpsInterval {
		return
	}

	m.fps = float64(m.frames) / elapsed.Seconds()
	slog.Info("FPS", slog.Float64("fps", m.fps))

	m.reset(now)
}
