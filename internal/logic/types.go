// Package logic contains the pure button debounce logic.
// This package has NO external dependencies (no GPIO, display, MQTT, or time.Sleep).
// Time is always injectable via Millis parameters.
package logic

// Millis is a free-running millisecond timestamp. It wraps at 2^32
// (about 49.7 days), so durations must be taken with Elapsed.
type Millis uint32

// Elapsed returns the time from since to now. The subtraction is done in
// uint32 arithmetic, so the result is correct across a single wrap.
func Elapsed(now, since Millis) Millis {
	return now - since
}

// Level is a raw electrical input level.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// Buttons are wired active-low against a pull-up: idle reads High.
const (
	Released = High
	Pressed  = Low
)

func (l Level) String() string {
	if l == High {
		return "HIGH"
	}
	return "LOW"
}

// Channel tracks debounce state for a single button.
type Channel struct {
	// Hardware line the button is wired to
	Pin int
	// Last raw sample
	RawPrevious Level
	// Current stable (debounced) level
	Stable Level
	// Time of the most recent raw change
	LastChange Millis
	// Set on a confirmed press, cleared by the consumer
	Pending bool
}

// newChannel returns a channel in the STABLE_RELEASED state, matching the
// pull-up idle level.
func newChannel(pin int) Channel {
	return Channel{
		Pin:         pin,
		RawPrevious: Released,
		Stable:      Released,
	}
}
