// Package dispatch drives the poll cycle: sample every button, debounce,
// then run the handler of each newly pressed button.
package dispatch

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sweeney/oled-buttons/internal/gpio"
	"github.com/sweeney/oled-buttons/internal/logic"
)

// Handler reacts to a press. It runs synchronously inside the loop.
type Handler func()

// Loop owns the debounce state and the channel-to-handler binding.
// It is not safe for concurrent use.
type Loop struct {
	inputs   *logic.InputManager
	reader   gpio.Reader
	handlers []Handler

	// OnPress, if set, is called with the channel index just before that
	// channel's handler runs.
	OnPress func(channel int)

	// AfterIteration, if set, is called by Run once per tick after
	// dispatching.
	AfterIteration func(now logic.Millis)
}

// New binds handlers[i] to channel i. The reader, the input manager and the
// handler list must all cover the same number of channels.
func New(inputs *logic.InputManager, reader gpio.Reader, handlers []Handler) (*Loop, error) {
	if len(handlers) != inputs.Len() {
		return nil, fmt.Errorf("dispatch: %d handlers for %d channels", len(handlers), inputs.Len())
	}
	if reader.Len() != inputs.Len() {
		return nil, fmt.Errorf("dispatch: reader has %d lines for %d channels", reader.Len(), inputs.Len())
	}
	for i, h := range handlers {
		if h == nil {
			return nil, fmt.Errorf("dispatch: nil handler for channel %d", i)
		}
	}
	return &Loop{
		inputs:   inputs,
		reader:   reader,
		handlers: handlers,
	}, nil
}

// Inputs returns the debounce state owned by the loop.
func (l *Loop) Inputs() *logic.InputManager {
	return l.inputs
}

// RunIteration samples and debounces every channel, then dispatches the
// pending presses in channel order. It returns the dispatched channels.
//
// A failed GPIO read skips the whole iteration and leaves all channel
// state untouched.
func (l *Loop) RunIteration(now logic.Millis) []int {
	levels, err := l.reader.Read()
	if err != nil {
		log.Warnf("gpio read error: %v", err)
		return nil
	}
	if len(levels) != l.inputs.Len() {
		log.Warnf("gpio read returned %d levels for %d channels", len(levels), l.inputs.Len())
		return nil
	}

	for i, high := range levels {
		l.inputs.Poll(i, logic.Level(high), now)
	}

	var fired []int
	for i, h := range l.handlers {
		if !l.inputs.ConsumePendingEvent(i) {
			continue
		}
		if l.OnPress != nil {
			l.OnPress(i)
		}
		h()
		fired = append(fired, i)
	}
	return fired
}

// Run calls RunIteration with the clock reading for every tick. It never
// returns while tick stays open.
func (l *Loop) Run(clock func() logic.Millis, tick <-chan time.Time) {
	for range tick {
		now := clock()
		l.RunIteration(now)
		if l.AfterIteration != nil {
			l.AfterIteration(now)
		}
	}
}
