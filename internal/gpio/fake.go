package gpio

import "errors"

// FakeReader is a test double that returns scripted GPIO levels.
type FakeReader struct {
	// Samples contains scripted raw levels to return, one slice per Read.
	// Each call to Read() consumes the next sample.
	Samples [][]bool

	// index tracks current position in Samples
	index int

	// Lines is the value returned by Len.
	Lines int

	// Reads counts calls to Read.
	Reads int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeReader creates a FakeReader with the given samples. Len reports
// the width of the first sample.
func NewFakeReader(samples [][]bool) *FakeReader {
	f := &FakeReader{Samples: samples}
	if len(samples) > 0 {
		f.Lines = len(samples[0])
	}
	return f
}

// Idle returns a sample with all n lines high (no button pressed).
func Idle(n int) []bool {
	s := make([]bool, n)
	for i := range s {
		s[i] = true
	}
	return s
}

// Pressing returns an idle sample with the given lines pulled low.
func Pressing(n int, lines ...int) []bool {
	s := Idle(n)
	for _, l := range lines {
		s[l] = false
	}
	return s
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeReader) Read() ([]bool, error) {
	f.Reads++

	if f.ReadError != nil {
		return nil, f.ReadError
	}

	if len(f.Samples) == 0 {
		return nil, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	out := make([]bool, len(sample))
	copy(out, sample)
	return out, nil
}

// Len returns the configured line count.
func (f *FakeReader) Len() int {
	return f.Lines
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Reads = 0
	f.Closed = false
}
