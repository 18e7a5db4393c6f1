package gpio

import (
	"fmt"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// PeriphReader reads buttons through periph.io's pin registry. It works on
// any host periph supports, including boards without a GPIO character device.
type PeriphReader struct {
	pins []pgpio.PinIn
}

// NewPeriphReader initializes the periph host drivers, looks each pin up by
// name ("GPIO26", "26", ...) and configures it as a pull-up input.
func NewPeriphReader(names []string) (*PeriphReader, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	pins := make([]pgpio.PinIn, len(names))
	for i, name := range names {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("pin %q not found", name)
		}
		pins[i] = p
	}
	return newPeriphReader(pins)
}

func newPeriphReader(pins []pgpio.PinIn) (*PeriphReader, error) {
	for _, p := range pins {
		if err := p.In(pgpio.PullUp, pgpio.NoEdge); err != nil {
			return nil, fmt.Errorf("configure %s: %w", p, err)
		}
	}
	return &PeriphReader{pins: pins}, nil
}

// Read returns the raw level of every pin.
func (r *PeriphReader) Read() ([]bool, error) {
	levels := make([]bool, len(r.pins))
	for i, p := range r.pins {
		levels[i] = p.Read() == pgpio.High
	}
	return levels, nil
}

// Len returns the number of pins.
func (r *PeriphReader) Len() int {
	return len(r.pins)
}

// Close is a no-op: periph pins stay configured until the process exits.
func (r *PeriphReader) Close() error {
	return nil
}
