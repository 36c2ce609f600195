package core

import "time"

// FrameClock gates ticks so that at least Delay elapses between two of them.
// A zero delay lets every poll through.
type FrameClock struct {
	delay time.Duration
	last  time.Time
	now   func() time.Time
}

// NewFrameClock constructs a FrameClock with the given inter-tick delay.
func NewFrameClock(delay time.Duration) *FrameClock {
	fc := &FrameClock{now: time.Now}
	fc.SetDelay(delay)
	return fc
}

// SetDelay changes the inter-tick delay. Negative values are treated as zero.
func (f *FrameClock) SetDelay(delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	f.delay = delay
}

// Delay reports the configured inter-tick delay.
func (f *FrameClock) Delay() time.Duration { return f.delay }

// Due reports whether a tick may run now and, if so, records it.
func (f *FrameClock) Due() bool {
	now := f.now()
	if !f.last.IsZero() && now.Sub(f.last) < f.delay {
		return false
	}
	f.last = now
	return true
}

// Reset forgets the last tick so the next poll is due immediately.
func (f *FrameClock) Reset() { f.last = time.Time{} }
