// Package gpio provides button input reading with hardware abstraction.
// The real implementations use the Linux GPIO character device or periph.io.
// The fake implementation allows testing without hardware.
package gpio

// Reader samples the raw levels of a fixed set of input lines.
type Reader interface {
	// Read returns the raw level of every line in channel order.
	// true = electrically high. Buttons are active-low, so a pressed
	// button reads false.
	Read() ([]bool, error)

	// Len returns the number of lines.
	Len() int

	// Close releases GPIO resources.
	Close() error
}

// DefaultChip is the GPIO character device used by the cdev backend.
const DefaultChip = "gpiochip0"

// DefaultPins are the BCM line offsets of buttons 1 to 6.
var DefaultPins = []int{26, 25, 24, 12, 16, 27}
