// Package clock tracks frame timing.
package clock

import "time"

// Clock measures time since start and the delta between updates, in
// seconds. Both are float64 so frame deltas stay exact over long sessions;
// callers narrow them to float32 at the point of use.
type Clock struct {
	Time  float64
	Delta float64

	elapsed time.Duration
	start   time.Time
	now     func() time.Time
}

// New starts a clock at the current time.
func New() *Clock {
	return newClock(time.Now)
}

func newClock(now func() time.Time) *Clock {
	return &Clock{start: now(), now: now}
}

// Update samples the current time.
func (c *Clock) Update() {
	elapsed := c.now().Sub(c.start)
	c.Delta = (elapsed - c.elapsed).Seconds()
	c.elapsed = elapsed
	c.Time = elapsed.Seconds()
}

// Limiter caps the frame rate by telling the loop when a frame is due.
type Limiter struct {
	interval float64
	last     float64
	started  bool
}

// NewLimiter returns a limiter for maxFPS frames per second. A non-positive
// maxFPS disables limiting.
func NewLimiter(maxFPS int) *Limiter {
	l := &Limiter{}
	if maxFPS > 0 {
		l.interval = 1 / float64(maxFPS)
	}
	return l
}

// Ready reports whether a new frame should run at time now, and records it
// as the last frame when it does.
func (l *Limiter) Ready(now float64) bool {
	if l.started && now-l.last < l.interval {
		return false
	}
	l.started = true
	l.last = now
	return true
}

// FPSCounter counts frames over one-second windows.
type FPSCounter struct {
	FPS    int
	frames int
	window float32
}

// Tick records one frame of length dt and reports whether FPS was refreshed.
func (f *FPSCounter) Tick(dt float32) bool {
	f.frames++
	f.window += dt
	if f.window < 1 {
		return false
	}
	f.FPS = f.frames
	f.frames = 0
	f.window = 0
	return true
}
