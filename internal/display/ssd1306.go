package display

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

// OLED is an SSD1306 panel on an I²C bus.
type OLED struct {
	*ssd1306.Dev
	bus i2c.BusCloser
}

// OpenSSD1306 initializes the periph host drivers, opens the named I²C bus
// ("" picks the first one) and brings up a w×h panel. The driver talks to
// the panel at I2CAddr.
func OpenSSD1306(bus string, w, h int) (*OLED, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	b, err := i2creg.Open(bus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", bus, err)
	}

	opts := ssd1306.DefaultOpts
	opts.W = w
	opts.H = h
	if h == 32 {
		opts.Sequential = true
	}

	dev, err := ssd1306.NewI2C(b, &opts)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("init ssd1306 at %#x: %w", I2CAddr, err)
	}

	return &OLED{Dev: dev, bus: b}, nil
}

// Close turns the panel off and releases the bus.
func (o *OLED) Close() error {
	var errs []error
	if err := o.Dev.Halt(); err != nil {
		errs = append(errs, fmt.Errorf("halt display: %w", err))
	}
	if err := o.bus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close i2c bus: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
