package internal

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sweeney/oled-buttons/internal/dispatch"
	"github.com/sweeney/oled-buttons/internal/display"
	"github.com/sweeney/oled-buttons/internal/gpio"
	"github.com/sweeney/oled-buttons/internal/logic"
	"github.com/sweeney/oled-buttons/internal/mqtt"
	"github.com/sweeney/oled-buttons/internal/screen"
	"github.com/sweeney/oled-buttons/internal/status"
)

type rig struct {
	sink      *display.FakeSink
	publisher *mqtt.FakePublisher
	tracker   *status.Tracker
	reader    *gpio.FakeReader
	loop      *dispatch.Loop
	shown     []string
}

var startTime = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// newRig wires the real loop, canvas and screens to fakes the same way the
// daemon wires them to hardware.
func newRig(t *testing.T, samples [][]bool) *rig {
	t.Helper()
	r := &rig{
		sink:      display.NewFakeSink(),
		publisher: mqtt.NewFakePublisher(),
		tracker:   status.NewTracker(startTime, status.Config{Pins: gpio.DefaultPins}, screen.Names(screen.Default)),
		reader:    gpio.NewFakeReader(samples),
	}
	canvas := display.NewCanvas(display.Width, display.Height, r.sink)
	inputs := logic.NewInputManager(logic.DefaultDebounce, gpio.DefaultPins)

	handlers := make([]dispatch.Handler, len(screen.Default))
	for i, scr := range screen.Default {
		handlers[i] = func() {
			r.shown = append(r.shown, scr.Name)
			if err := screen.Render(canvas, scr); err != nil {
				t.Errorf("render %s: %v", scr.Name, err)
			}
		}
	}

	loop, err := dispatch.New(inputs, r.reader, handlers)
	if err != nil {
		t.Fatalf("dispatch.New: %v", err)
	}
	loop.OnPress = func(ch int) {
		r.tracker.RecordPress(ch, startTime)
		r.publisher.Publish(mqtt.PressEvent{
			Timestamp: startTime,
			Channel:   ch,
			Pin:       inputs.Channel(ch).Pin,
			Screen:    screen.Default[ch].Name,
		})
	}
	r.loop = loop
	return r
}

// simulate runs one iteration per sample, the clock advancing by step from start.
func (r *rig) simulate(n int, start, step logic.Millis) {
	now := start
	for i := 0; i < n; i++ {
		r.loop.RunIteration(now)
		now += step
	}
}

func repeat(sample []bool, n int) [][]bool {
	out := make([][]bool, n)
	for i := range out {
		out[i] = sample
	}
	return out
}

func concat(parts ...[][]bool) [][]bool {
	var out [][]bool
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func frameOf(t *testing.T, scr screen.Screen) []byte {
	t.Helper()
	c := display.NewCanvas(display.Width, display.Height, display.NewFakeSink())
	if err := screen.Render(c, scr); err != nil {
		t.Fatalf("render %s: %v", scr.Name, err)
	}
	return c.Image().Pix
}

// TestIntegrationFullFlow tests the complete flow from GPIO to panel and MQTT using fakes.
func TestIntegrationFullFlow(t *testing.T) {
	// ship pressed and released, then dinosaur pressed and held
	samples := concat(
		repeat(gpio.Idle(6), 3),
		repeat(gpio.Pressing(6, 1), 4),
		repeat(gpio.Idle(6), 4),
		repeat(gpio.Pressing(6, 3), 8),
	)
	r := newRig(t, samples)
	r.simulate(len(samples), 0, 100)

	if diff := cmp.Diff([]string{"ship", "dinosaur"}, r.shown); diff != "" {
		t.Errorf("screens shown mismatch (-want +got):\n%s", diff)
	}
	if len(r.sink.Frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(r.sink.Frames))
	}
	if !bytes.Equal(frameOf(t, screen.Ship), r.sink.Frames[0].Pix) {
		t.Error("frame 0 is not the ship")
	}
	if !bytes.Equal(frameOf(t, screen.Dinosaur), r.sink.Frames[1].Pix) {
		t.Error("frame 1 is not the dinosaur")
	}

	if len(r.publisher.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(r.publisher.Events))
	}
	if r.publisher.Events[1].Pin != 12 {
		t.Errorf("event 1: expected pin 12, got %d", r.publisher.Events[1].Pin)
	}
	if got := r.tracker.Snapshot().Screen; got != "dinosaur" {
		t.Errorf("tracker screen: got %q, want dinosaur", got)
	}
}

func TestIntegrationNoEventsAtStartup(t *testing.T) {
	samples := repeat(gpio.Idle(6), 20)
	r := newRig(t, samples)
	r.simulate(len(samples), 0, 100)

	if len(r.sink.Frames) != 0 {
		t.Errorf("expected no frames, got %d", len(r.sink.Frames))
	}
	if len(r.publisher.Events) != 0 {
		t.Errorf("expected no events, got %d", len(r.publisher.Events))
	}
}

func TestIntegrationBounceRejection(t *testing.T) {
	// Contact bounce on button 5 every 50ms, never stable past the window
	var samples [][]bool
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			samples = append(samples, gpio.Pressing(6, 4))
		} else {
			samples = append(samples, gpio.Idle(6))
		}
	}
	samples = append(samples, repeat(gpio.Idle(6), 10)...)

	r := newRig(t, samples)
	r.simulate(len(samples), 0, 50)

	if len(r.shown) != 0 {
		t.Errorf("bounce must not dispatch, got %v", r.shown)
	}
}

func TestIntegrationBouncyPressFiresOnce(t *testing.T) {
	samples := concat(
		[][]bool{gpio.Pressing(6, 0), gpio.Idle(6), gpio.Pressing(6, 0), gpio.Idle(6)},
		repeat(gpio.Pressing(6, 0), 40),
	)
	r := newRig(t, samples)
	r.simulate(len(samples), 0, 10)

	if diff := cmp.Diff([]string{"hello"}, r.shown); diff != "" {
		t.Errorf("screens shown mismatch (-want +got):\n%s", diff)
	}
}

func TestIntegrationSimultaneousPresses(t *testing.T) {
	// Buttons 4 and 2 go down on the same sample and commit on the same tick
	samples := repeat(gpio.Pressing(6, 3, 1), 5)
	r := newRig(t, samples)
	r.simulate(len(samples), 0, 100)

	if diff := cmp.Diff([]string{"ship", "dinosaur"}, r.shown); diff != "" {
		t.Errorf("dispatch order mismatch (-want +got):\n%s", diff)
	}
	if !bytes.Equal(frameOf(t, screen.Dinosaur), r.sink.Last().Pix) {
		t.Error("the higher channel must win the panel")
	}
}

func TestIntegrationHeldButtonFiresOnce(t *testing.T) {
	samples := repeat(gpio.Pressing(6, 5), 100)
	r := newRig(t, samples)
	r.simulate(len(samples), 0, 100)

	if diff := cmp.Diff([]string{"artemka"}, r.shown); diff != "" {
		t.Errorf("screens shown mismatch (-want +got):\n%s", diff)
	}
}

func TestIntegrationAcrossClockWrap(t *testing.T) {
	samples := concat(repeat(gpio.Idle(6), 2), repeat(gpio.Pressing(6, 2), 4))
	r := newRig(t, samples)
	// Press starts 56ms before the millisecond counter wraps
	r.simulate(len(samples), 0xFFFFFF00, 100)

	if diff := cmp.Diff([]string{"lol"}, r.shown); diff != "" {
		t.Errorf("screens shown mismatch (-want +got):\n%s", diff)
	}
}

func TestIntegrationReadErrorSkipsIteration(t *testing.T) {
	samples := repeat(gpio.Pressing(6, 0), 10)
	r := newRig(t, samples)

	r.loop.RunIteration(0)

	r.reader.ReadError = errors.New("EIO")
	r.loop.RunIteration(300)
	r.loop.RunIteration(400)
	if len(r.shown) != 0 {
		t.Fatalf("failed reads must not dispatch, got %v", r.shown)
	}

	r.reader.ReadError = nil
	r.loop.RunIteration(500)
	if diff := cmp.Diff([]string{"hello"}, r.shown); diff != "" {
		t.Errorf("screens shown mismatch (-want +got):\n%s", diff)
	}
}

func TestIntegrationPublishFailureDoesNotCrash(t *testing.T) {
	samples := concat(
		repeat(gpio.Pressing(6, 0), 4),
		repeat(gpio.Idle(6), 4),
		repeat(gpio.Pressing(6, 1), 4),
	)
	r := newRig(t, samples)
	r.publisher.PublishError = errors.New("broker down")
	r.simulate(len(samples), 0, 100)

	if diff := cmp.Diff([]string{"hello", "ship"}, r.shown); diff != "" {
		t.Errorf("screens shown mismatch (-want +got):\n%s", diff)
	}
}

func TestIntegrationPayloadFormat(t *testing.T) {
	samples := repeat(gpio.Pressing(6, 4), 4)
	r := newRig(t, samples)
	r.simulate(len(samples), 0, 100)

	if len(r.publisher.Payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(r.publisher.Payloads))
	}
	want := `{"button":{"timestamp":"2026-01-01T12:00:00Z","event":"PRESSED","channel":4,"pin":16,"screen":"maksimka"}}`
	if got := string(r.publisher.Payloads[0]); got != want {
		t.Errorf("payload mismatch\ngot:  %s\nwant: %s", got, want)
	}
}
