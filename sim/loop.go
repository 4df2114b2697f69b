package sim

import "time"

// Loop drives an Engine from a frame callback and owns the clock. Pausing
// stops stepping at the frame boundary; on resume the time baseline is
// reset, so a long pause never turns into one huge catch-up delta.
type Loop struct {
	eng    *Engine
	now    func() time.Time
	last   time.Time
	paused bool
	snap   Snapshot
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) LoopOption {
	return func(l *Loop) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLoop wraps an engine in a frame-driven loop.
func NewLoop(eng *Engine, opts ...LoopOption) *Loop {
	l := &Loop{
		eng: eng,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.snap = eng.snapshot()
	return l
}

// Engine exposes the driven engine for event draining and resets.
func (l *Loop) Engine() *Engine { return l.eng }

// Paused reports whether stepping is suspended.
func (l *Loop) Paused() bool { return l.paused }

// Pause suspends stepping at the frame boundary. The current step, if any,
// has already run to completion by the time the caller gets here.
func (l *Loop) Pause() { l.paused = true }

// Resume restarts stepping with a fresh clock baseline.
func (l *Loop) Resume() {
	l.paused = false
	l.last = time.Time{}
}

// Restart resets the engine for a new session and zeroes the clock baseline.
func (l *Loop) Restart() {
	l.eng.Reset()
	l.last = time.Time{}
	l.snap = l.eng.snapshot()
}

// Tick runs one frame: it measures the real delta since the previous tick,
// clamps it and steps the engine. While paused it returns the last snapshot
// unchanged. The first tick after start or resume steps with a zero delta
// to establish the baseline.
func (l *Loop) Tick(in Input) Snapshot {
	if l.paused {
		return l.snap
	}
	now := l.now()
	dt := 0.0
	if !l.last.IsZero() {
		dt = now.Sub(l.last).Seconds()
	}
	l.last = now
	l.snap = l.eng.Step(dt, in)
	return l.snap
}

// Latest returns the most recent snapshot without stepping.
func (l *Loop) Latest() Snapshot { return l.snap }
