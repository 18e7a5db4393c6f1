// Command oled-buttons shows one of six fixed pictures on an SSD1306 OLED,
// chosen by whichever push button was pressed last.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sweeney/oled-buttons/internal/dispatch"
	"github.com/sweeney/oled-buttons/internal/display"
	"github.com/sweeney/oled-buttons/internal/gpio"
	"github.com/sweeney/oled-buttons/internal/logic"
	"github.com/sweeney/oled-buttons/internal/mqtt"
	"github.com/sweeney/oled-buttons/internal/screen"
	"github.com/sweeney/oled-buttons/internal/status"
	"github.com/sweeney/oled-buttons/internal/web"
)

type options struct {
	pins       []int
	chip       string
	gpio       string
	display    string
	i2cBus     string
	previewDir string
	logLevel   string
	broker     string
	heartbeat  time.Duration
	httpAddr   string
	printState bool
	debounce   time.Duration
	poll       time.Duration
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	if err := setupLogging(opts.logLevel); err != nil {
		log.Fatalf("fatal: %v", err)
	}
	if err := run(opts); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("oled-buttons", flag.ContinueOnError)

	pins := fs.String("pins", joinInts(gpio.DefaultPins), "Comma-separated BCM pins of buttons 1 to 6")
	fs.StringVar(&o.chip, "chip", gpio.DefaultChip, "GPIO character device (cdev backend)")
	fs.StringVar(&o.gpio, "gpio", "cdev", `GPIO backend: "cdev" or "periph"`)
	fs.StringVar(&o.display, "display", "ssd1306", `Display sink: "ssd1306" or "png"`)
	fs.StringVar(&o.i2cBus, "i2c-bus", "", "I2C bus name (empty for the first bus)")
	fs.StringVar(&o.previewDir, "preview-dir", "preview", "Directory for PNG frames (png display)")
	fs.StringVar(&o.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.StringVar(&o.broker, "broker", "", "MQTT broker address (empty to disable)")
	fs.DurationVar(&o.heartbeat, "heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	fs.StringVar(&o.httpAddr, "http", "", "HTTP status address (empty to disable)")
	fs.BoolVar(&o.printState, "print-state", false, "Print raw button levels and exit")
	fs.DurationVar(&o.debounce, "debounce", time.Duration(logic.DefaultDebounce)*time.Millisecond, "Debounce interval")
	fs.DurationVar(&o.poll, "poll", time.Millisecond, "GPIO polling interval")

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	var err error
	if o.pins, err = parsePins(*pins); err != nil {
		return o, err
	}
	if len(o.pins) != len(screen.Default) {
		return o, fmt.Errorf("--pins: need %d pins, got %d", len(screen.Default), len(o.pins))
	}
	if o.gpio != "cdev" && o.gpio != "periph" {
		return o, fmt.Errorf("--gpio: unknown backend %q", o.gpio)
	}
	if o.display != "ssd1306" && o.display != "png" {
		return o, fmt.Errorf("--display: unknown sink %q", o.display)
	}
	if o.poll <= 0 {
		return o, errors.New("--poll must be positive")
	}
	if o.debounce < 0 || o.heartbeat < 0 {
		return o, errors.New("--debounce and --heartbeat must not be negative")
	}
	return o, nil
}

func parsePins(s string) ([]int, error) {
	var pins []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		pin, err := strconv.Atoi(f)
		if err != nil || pin < 0 {
			return nil, fmt.Errorf("--pins: bad pin %q", f)
		}
		pins = append(pins, pin)
	}
	return pins, nil
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func setupLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	return nil
}

// halt blocks forever. The device sits with a dark panel until it is reset.
var halt = func() {
	for {
		time.Sleep(time.Hour)
	}
}

var openDisplay = func(o options) (display.Sink, io.Closer, error) {
	if o.display == "png" {
		if err := os.MkdirAll(o.previewDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create preview dir: %w", err)
		}
		return display.NewPNGSink(o.previewDir, 4), nil, nil
	}
	oled, err := display.OpenSSD1306(o.i2cBus, display.Width, display.Height)
	if err != nil {
		return nil, nil, err
	}
	return oled, oled, nil
}

var openReader = func(o options) (gpio.Reader, error) {
	if o.gpio == "periph" {
		names := make([]string, len(o.pins))
		for i, pin := range o.pins {
			names[i] = "GPIO" + strconv.Itoa(pin)
		}
		r, err := gpio.NewPeriphReader(names)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	r, err := gpio.NewCdevReader(o.chip, o.pins)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func run(o options) error {
	if o.printState {
		return printState(o, os.Stdout)
	}

	sink, closer, err := openDisplay(o)
	if err != nil {
		log.WithError(err).Error("SSD1306 allocation failed")
		halt()
		return fmt.Errorf("init display: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}
	log.Info("OLED initialized successfully")

	reader, err := openReader(o)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer reader.Close()

	clock := logic.NewClock(time.Now, 0)
	inputs := logic.NewInputManager(logic.Millis(o.debounce.Milliseconds()), o.pins)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:      o.poll.Milliseconds(),
		DebounceMs:  o.debounce.Milliseconds(),
		HeartbeatMs: o.heartbeat.Milliseconds(),
		Broker:      o.broker,
		HTTPAddr:    o.httpAddr,
		Display:     o.display,
		GPIO:        o.gpio,
		Pins:        o.pins,
	}, screen.Names(screen.Default))

	canvas := display.NewCanvas(display.Width, display.Height, sink)
	a := newApp(canvas, screen.Default, inputs, tracker,
		logic.NewHeartbeat(logic.Millis(o.heartbeat.Milliseconds()), clock()))

	loop, err := a.loop(reader)
	if err != nil {
		return err
	}

	a.showFirst()

	if o.broker != "" {
		publisher := mqtt.NewRealPublisher(o.broker)
		defer publisher.Close()
		a.publisher = publisher
		a.mqttStatus = publisher
		a.announce("STARTUP")
	}

	if o.httpAddr != "" {
		srv := web.New(o.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Warnf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Infof("http status server listening on %s", o.httpAddr)
	}

	log.Infof("started: pins=%v poll=%v debounce=%v heartbeat=%v", o.pins, o.poll, o.debounce, o.heartbeat)

	ticker := time.NewTicker(o.poll)
	defer ticker.Stop()

	loop.Run(clock, ticker.C)
	return nil
}

// printState reads every button once and prints its raw level.
func printState(o options, w io.Writer) error {
	reader, err := openReader(o)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer reader.Close()

	levels, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read gpio: %w", err)
	}
	for i, high := range levels {
		state := "released"
		if logic.Level(high) == logic.Pressed {
			state = "pressed"
		}
		fmt.Fprintf(w, "button %d (GPIO%d): %s %s\n", i+1, o.pins[i], logic.Level(high), state)
	}
	return nil
}

// app holds what the press handlers and the per-tick hook share.
type app struct {
	canvas    *display.Canvas
	screens   []screen.Screen
	inputs    *logic.InputManager
	tracker   *status.Tracker
	heartbeat *logic.Heartbeat
	now       func() time.Time

	// nil when MQTT is disabled
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus

	// last values pushed to the tracker
	commits   uint64
	connected bool
}

func newApp(canvas *display.Canvas, screens []screen.Screen, inputs *logic.InputManager, tracker *status.Tracker, heartbeat *logic.Heartbeat) *app {
	return &app{
		canvas:    canvas,
		screens:   screens,
		inputs:    inputs,
		tracker:   tracker,
		heartbeat: heartbeat,
		now:       time.Now,
	}
}

// loop binds screen i to channel i.
func (a *app) loop(reader gpio.Reader) (*dispatch.Loop, error) {
	handlers := make([]dispatch.Handler, len(a.screens))
	for i, scr := range a.screens {
		handlers[i] = func() { a.show(scr) }
	}
	l, err := dispatch.New(a.inputs, reader, handlers)
	if err != nil {
		return nil, err
	}
	l.OnPress = a.onPress
	l.AfterIteration = a.afterIteration
	return l, nil
}

func (a *app) show(scr screen.Screen) {
	if err := screen.Render(a.canvas, scr); err != nil {
		log.Warnf("render: %v", err)
	}
}

func (a *app) showFirst() {
	a.show(a.screens[0])
	a.tracker.SetScreen(a.screens[0].Name)
}

func (a *app) onPress(ch int) {
	name := a.screens[ch].Name
	log.Infof("button %d pressed: %s", ch+1, name)

	at := a.now()
	a.tracker.RecordPress(ch, at)
	if a.publisher == nil {
		return
	}
	event := mqtt.PressEvent{
		Timestamp: at,
		Channel:   ch,
		Pin:       a.inputs.Channel(ch).Pin,
		Screen:    name,
	}
	if err := a.publisher.Publish(event); err != nil {
		log.Warnf("publish error: %v", err)
	}
}

// afterIteration refreshes the tracker only when a stable level changed or
// the broker connection flipped, so an idle tick does not allocate.
func (a *app) afterIteration(now logic.Millis) {
	if c := a.inputs.Commits(); c != a.commits {
		a.commits = c
		a.tracker.Update(a.inputs.PressedAll(), a.inputs.PressCounts())
	}
	a.syncMQTT()

	if a.heartbeat == nil || !a.heartbeat.Due(now) {
		return
	}
	snap := a.tracker.Snapshot()
	log.Infof("heartbeat: uptime=%v screen=%s presses=%v", snap.Uptime().Truncate(time.Second), snap.Screen, snap.Counts)
	a.announce("HEARTBEAT")
}

func (a *app) syncMQTT() {
	if a.mqttStatus == nil {
		return
	}
	if up := a.mqttStatus.IsConnected(); up != a.connected {
		a.connected = up
		a.tracker.SetMQTTConnected(up)
	}
}

// announce publishes a system event carrying the full status snapshot.
// STARTUP is retained so late subscribers see the last boot.
func (a *app) announce(event string) {
	if a.publisher == nil {
		return
	}
	a.syncMQTT()
	snap := a.tracker.Snapshot()
	err := a.publisher.PublishSystem(mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      event,
		Retained:   event == "STARTUP",
		RawPayload: status.FormatStatusEvent(snap, event, ""),
	})
	if err != nil {
		log.Warnf("failed to publish %s event: %v", strings.ToLower(event), err)
		return
	}
	log.Debugf("published %s event", strings.ToLower(event))
}
