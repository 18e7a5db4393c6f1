package logic

import "time"

// NewClock returns a millisecond clock that starts at offset when called
// and then follows the monotonic reading of now. The result wraps at 2^32
// like a microcontroller millis() counter.
func NewClock(now func() time.Time, offset Millis) func() Millis {
	start := now()
	return func() Millis {
		ms := now().Sub(start).Milliseconds()
		return offset + Millis(uint32(ms))
	}
}

// Heartbeat decides when a periodic diagnostic is due.
type Heartbeat struct {
	interval Millis
	last     Millis
}

// NewHeartbeat creates a heartbeat that first fires interval after start.
// An interval of 0 disables it.
func NewHeartbeat(interval, start Millis) *Heartbeat {
	return &Heartbeat{interval: interval, last: start}
}

// Due reports whether the interval has elapsed since the last firing and,
// if so, restarts the interval at now.
func (h *Heartbeat) Due(now Millis) bool {
	if h.interval == 0 {
		return false
	}
	if Elapsed(now, h.last) < h.interval {
		return false
	}
	h.last = now
	return true
}
