//go:build !linux

package gpio

import "errors"

// CdevReader is not available on non-Linux platforms.
type CdevReader struct{}

// NewCdevReader returns an error on non-Linux platforms.
func NewCdevReader(chip string, pins []int) (*CdevReader, error) {
	return nil, errors.New("gpio: character device not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (r *CdevReader) Read() ([]bool, error) {
	return nil, errors.New("gpio: not supported")
}

// Len is not implemented on non-Linux platforms.
func (r *CdevReader) Len() int {
	return 0
}

// Close is not implemented on non-Linux platforms.
func (r *CdevReader) Close() error {
	return nil
}
