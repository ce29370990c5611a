package sink

import "sync"

// Ring is a fixed-capacity FIFO of interleaved samples shared between a
// producer (the poll loop) and a playback callback.
type Ring struct {
	mu    sync.Mutex
	data  []int16
	read  int
	count int
}

// NewRing creates a ring holding up to frames stereo frames.
func NewRing(frames int) *Ring {
	if frames <= 0 {
		panic("ring capacity must be positive")
	}
	return &Ring{data: make([]int16, frames*2)}
}

// Frames returns the number of buffered frames.
func (r *Ring) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count / 2
}

// Write appends as many samples as fit and returns how many were taken.
func (r *Ring) Write(samples []int16) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := min(len(samples), len(r.data)-r.count)
	n -= n % 2
	for i := range n {
		r.data[(r.read+r.count+i)%len(r.data)] = samples[i]
	}
	r.count += n
	return n
}

// Read fills dst, padding with silence when the ring runs dry, and returns
// how many samples came from the ring.
func (r *Ring) Read(dst []int16) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := min(len(dst), r.count)
	for i := range n {
		dst[i] = r.data[(r.read+i)%len(r.data)]
	}
	clear(dst[n:])
	r.read = (r.read + n) % len(r.data)
	r.count -= n
	return n
}
