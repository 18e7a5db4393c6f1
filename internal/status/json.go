package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Screen        string       `json:"screen"`
	Buttons       []ButtonJSON `json:"buttons"`
	LastPressed   *int         `json:"last_pressed,omitempty"`
	LastPressAt   string       `json:"last_press_at,omitempty"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Config        ConfigJSON   `json:"config"`
}

// ButtonJSON describes one channel.
type ButtonJSON struct {
	Channel int    `json:"channel"`
	Pin     int    `json:"pin"`
	Screen  string `json:"screen"`
	Pressed bool   `json:"pressed"`
	Presses int    `json:"presses"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker"`
	HTTPAddr    string `json:"http_addr"`
	Display     string `json:"display"`
	GPIO        string `json:"gpio"`
	Pins        []int  `json:"pins"`
}

// Buttons returns one entry per channel.
func (s Snapshot) Buttons() []ButtonJSON {
	buttons := make([]ButtonJSON, len(s.Screens))
	for i, name := range s.Screens {
		b := ButtonJSON{Channel: i, Screen: name}
		if i < len(s.Config.Pins) {
			b.Pin = s.Config.Pins[i]
		}
		if i < len(s.Pressed) {
			b.Pressed = s.Pressed[i]
		}
		if i < len(s.Counts) {
			b.Presses = s.Counts[i]
		}
		buttons[i] = b
	}
	return buttons
}

func buildInner(snap Snapshot) StatusInner {
	screen := snap.Screen
	if screen == "" {
		screen = "NONE"
	}

	inner := StatusInner{
		Screen:        screen,
		Buttons:       snap.Buttons(),
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			DebounceMs:  snap.Config.DebounceMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
			Display:     snap.Config.Display,
			GPIO:        snap.Config.GPIO,
			Pins:        snap.Config.Pins,
		},
	}
	if snap.LastPressed >= 0 {
		last := snap.LastPressed
		inner.LastPressed = &last
		inner.LastPressAt = snap.LastPressAt.UTC().Format(time.RFC3339)
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
