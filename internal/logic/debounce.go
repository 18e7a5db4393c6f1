package logic

// DefaultDebounce is the debounce interval in milliseconds.
const DefaultDebounce Millis = 250

// InputManager owns the debounce state for a fixed set of buttons and turns
// noisy raw samples into edge-triggered press events.
type InputManager struct {
	interval Millis
	channels []Channel
	presses  []int
	commits  uint64
}

// NewInputManager creates one channel per pin, in index order.
func NewInputManager(interval Millis, pins []int) *InputManager {
	m := &InputManager{
		interval: interval,
		channels: make([]Channel, len(pins)),
		presses:  make([]int, len(pins)),
	}
	for i, pin := range pins {
		m.channels[i] = newChannel(pin)
	}
	return m
}

// Poll feeds one raw sample for channel i taken at now.
//
// Every raw change restarts the debounce window, even mid-window. The new
// level is committed only once the raw level has been unchanged for longer
// than the interval. Committing a Pressed level sets the pending event.
func (m *InputManager) Poll(i int, raw Level, now Millis) {
	ch := &m.channels[i]

	if raw != ch.RawPrevious {
		ch.LastChange = now
		ch.RawPrevious = raw
	}

	if Elapsed(now, ch.LastChange) > m.interval && raw != ch.Stable {
		ch.Stable = raw
		m.commits++
		if raw == Pressed {
			ch.Pending = true
			m.presses[i]++
		}
	}
}

// ConsumePendingEvent reports whether channel i has an unhandled press and
// clears it. There is exactly one consumer, so read-then-clear is enough.
func (m *InputManager) ConsumePendingEvent(i int) bool {
	ch := &m.channels[i]
	pending := ch.Pending
	ch.Pending = false
	return pending
}

// Len returns the number of channels.
func (m *InputManager) Len() int {
	return len(m.channels)
}

// Interval returns the debounce interval.
func (m *InputManager) Interval() Millis {
	return m.interval
}

// Channel returns a copy of channel i's state.
func (m *InputManager) Channel(i int) Channel {
	return m.channels[i]
}

// Pins returns the pin of every channel in index order.
func (m *InputManager) Pins() []int {
	pins := make([]int, len(m.channels))
	for i, ch := range m.channels {
		pins[i] = ch.Pin
	}
	return pins
}

// Commits counts stable level changes across all channels. Callers compare
// it between polls to learn whether anything changed.
func (m *InputManager) Commits() uint64 {
	return m.commits
}

// Pressed reports whether channel i is stably pressed.
func (m *InputManager) Pressed(i int) bool {
	return m.channels[i].Stable == Pressed
}

// PressedAll returns the stable pressed state of every channel.
func (m *InputManager) PressedAll() []bool {
	out := make([]bool, len(m.channels))
	for i := range m.channels {
		out[i] = m.Pressed(i)
	}
	return out
}

// PressCounts returns a copy of the confirmed press count per channel.
func (m *InputManager) PressCounts() []int {
	out := make([]int, len(m.presses))
	copy(out, m.presses)
	return out
}
