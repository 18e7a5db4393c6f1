package mqtt

import log "github.com/sirupsen/logrus"

// bufferedMsg is a serialized message waiting for the broker.
type bufferedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// ring is a bounded FIFO. When full, push evicts the oldest entry so the
// newest presses survive a long outage. Not safe for concurrent use.
type ring[T any] struct {
	items   []T
	start   int // index of the oldest entry
	n       int
	dropped int // evictions since the last drain
}

func newRing[T any](capacity int) *ring[T] {
	return &ring[T]{items: make([]T, capacity)}
}

// push appends v and reports whether an older entry had to be evicted.
func (r *ring[T]) push(v T) bool {
	if len(r.items) == 0 {
		r.dropped++
		return true
	}
	if r.n < len(r.items) {
		r.items[(r.start+r.n)%len(r.items)] = v
		r.n++
		return false
	}
	if r.dropped == 0 {
		log.Warnf("mqtt: buffer full (%d messages), dropping oldest", len(r.items))
	}
	r.items[r.start] = v
	r.start = (r.start + 1) % len(r.items)
	r.dropped++
	return true
}

// drain returns the entries oldest first and empties the ring.
func (r *ring[T]) drain() []T {
	if r.n == 0 {
		r.dropped = 0
		return nil
	}
	out := make([]T, 0, r.n)
	for i := 0; i < r.n; i++ {
		out = append(out, r.items[(r.start+i)%len(r.items)])
	}
	var zero T
	for i := range r.items {
		r.items[i] = zero
	}
	r.start, r.n, r.dropped = 0, 0, 0
	return out
}

func (r *ring[T]) len() int {
	return r.n
}
