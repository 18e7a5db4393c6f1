//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// CdevReader reads buttons through the Linux GPIO character device.
type CdevReader struct {
	chip  *gpiocdev.Chip
	lines *gpiocdev.Lines
	vals  []int
}

// NewCdevReader requests all pins on the named chip as inputs with pull-up
// in a single request, so every Read samples them together.
func NewCdevReader(chip string, pins []int) (*CdevReader, error) {
	c, err := gpiocdev.NewChip(chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chip, err)
	}

	lines, err := c.RequestLines(pins,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithConsumer("oled-buttons"),
	)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("request pins %v: %w", pins, err)
	}

	return &CdevReader{
		chip:  c,
		lines: lines,
		vals:  make([]int, len(pins)),
	}, nil
}

// Read returns the raw level of every line. 1 = high.
func (r *CdevReader) Read() ([]bool, error) {
	if err := r.lines.Values(r.vals); err != nil {
		return nil, fmt.Errorf("read pins: %w", err)
	}
	levels := make([]bool, len(r.vals))
	for i, v := range r.vals {
		levels[i] = v != 0
	}
	return levels, nil
}

// Len returns the number of requested lines.
func (r *CdevReader) Len() int {
	return len(r.vals)
}

// Close releases the lines and the chip.
func (r *CdevReader) Close() error {
	var errs []error

	if r.lines != nil {
		if err := r.lines.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close lines: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
