// Package status provides a thread-safe status tracker for the oled-buttons daemon.
// The poll loop writes to it; HTTP handlers and MQTT heartbeats read from it.
package status

import (
	"sync"
	"time"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	DebounceMs  int64
	HeartbeatMs int64
	Broker      string
	HTTPAddr    string
	Display     string // "ssd1306" or "png"
	GPIO        string // "cdev" or "periph"
	Pins        []int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type with its own slices, safe to use after the lock is released.
type Snapshot struct {
	Screen        string   // screen currently on the panel
	Screens       []string // screen bound to each channel
	Pressed       []bool   // debounced pressed state per channel
	Counts        []int    // confirmed presses per channel
	LastPressed   int      // channel of the last press, -1 before any press
	LastPressAt   time.Time
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker for the given channel-to-screen binding.
func NewTracker(startTime time.Time, cfg Config, screens []string) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Screens:     append([]string(nil), screens...),
			Pressed:     make([]bool, len(screens)),
			Counts:      make([]int, len(screens)),
			LastPressed: -1,
			StartTime:   startTime,
			Config:      cfg,
		},
	}
}

// Update copies the debounced state and press counts of every channel.
// Called from the poll loop on every tick.
func (t *Tracker) Update(pressed []bool, counts []int) {
	t.mu.Lock()
	copy(t.snap.Pressed, pressed)
	copy(t.snap.Counts, counts)
	t.mu.Unlock()
}

// RecordPress notes that channel was pressed at the given time and that its
// screen is now on the panel.
func (t *Tracker) RecordPress(channel int, at time.Time) {
	t.mu.Lock()
	t.snap.LastPressed = channel
	t.snap.LastPressAt = at
	if channel >= 0 && channel < len(t.snap.Screens) {
		t.snap.Screen = t.snap.Screens[channel]
	}
	t.mu.Unlock()
}

// SetScreen records the screen on the panel without a press (startup).
func (t *Tracker) SetScreen(name string) {
	t.mu.Lock()
	t.snap.Screen = name
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	s.Screens = append([]string(nil), t.snap.Screens...)
	s.Pressed = append([]bool(nil), t.snap.Pressed...)
	s.Counts = append([]int(nil), t.snap.Counts...)
	s.Config.Pins = append([]int(nil), t.snap.Config.Pins...)
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
