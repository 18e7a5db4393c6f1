// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"
)

// Topic is the MQTT topic for button press events.
const Topic = "oled-buttons/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "oled-buttons/system"

// ClientID identifies the daemon to the broker.
const ClientID = "oled-buttons"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a press event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event PressEvent) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// PressEvent is a confirmed button press.
type PressEvent struct {
	Timestamp time.Time
	Channel   int
	Pin       int
	Screen    string
}

// SystemEvent represents a system lifecycle event (e.g., startup, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "HEARTBEAT", "OFFLINE"
	Reason     string
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Button ButtonPayload `json:"button"`
}

// ButtonPayload contains the press details.
type ButtonPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Channel   int    `json:"channel"`
	Pin       int    `json:"pin"`
	Screen    string `json:"screen"`
}

// FormatPayload creates the JSON payload for a press event.
func FormatPayload(event PressEvent) ([]byte, error) {
	payload := Payload{
		Button: ButtonPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     "PRESSED",
			Channel:   event.Channel,
			Pin:       event.Pin,
			Screen:    event.Screen,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (the OFFLINE will) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp,omitempty"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	inner := SystemPayloadInner{
		Event:  event.Event,
		Reason: event.Reason,
	}
	if !event.Timestamp.IsZero() {
		inner.Timestamp = event.Timestamp.UTC().Format(time.RFC3339)
	}
	return json.Marshal(SystemPayload{System: inner})
}
