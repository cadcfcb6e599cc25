package app

import "time"

// fpsCounter averages frame rate over fixed windows.
type fpsCounter struct {
	window time.Duration
	start  time.Time
	frames int
	last   float64
}

func newFPSCounter(window time.Duration, now time.Time) *fpsCounter {
	return &fpsCounter{window: window, start: now}
}

// frame records one presented frame. It reports true, with the rate over
// the elapsed window, each time a window completes.
func (f *fpsCounter) frame(now time.Time) (float64, bool) {
	f.frames++
	elapsed := now.Sub(f.start)
	if elapsed < f.window {
		return f.last, false
	}
	f.last = float64(f.frames) / elapsed.Seconds()
	f.frames = 0
	f.start = now
	return f.last, true
}
