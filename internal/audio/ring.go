// SPDX-License-Identifier: MIT
package audio

import "sync"

// RingBuffer is a fixed-capacity circular store of mono float32 samples.
// The capture goroutine pushes into it while the analysis loop reads the
// most recent window out of it; a single mutex spans every write and every
// read, so a reader never observes a half-written block.
type RingBuffer struct {
	mu       sync.Mutex
	buf      []float32
	size     int
	writeIdx int  // Next write position, wraps modulo size
	filled   bool // True once the buffer has wrapped at least once
}

// NewRingBuffer creates a RingBuffer with the given capacity in samples.
// A non-positive capacity is raised to 1.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer{
		buf:  make([]float32, capacity),
		size: capacity,
	}
}

// Capacity returns the fixed buffer capacity in samples.
func (rb *RingBuffer) Capacity() int {
	return rb.size
}

// Push appends a block of samples, wrapping around the buffer end and
// overwriting the oldest data. A block longer than the capacity keeps only
// its most recent samples. Empty blocks are a no-op. Safe to call
// concurrently with ReadLast.
func (rb *RingBuffer) Push(samples []float32) {
	n := len(samples)
	if n == 0 {
		return
	}

	rb.mu.Lock()
	defer rb.mu.Unlock()

	if n >= rb.size {
		copy(rb.buf, samples[n-rb.size:])
		rb.writeIdx = 0
		rb.filled = true
		return
	}

	end := rb.writeIdx + n
	if end <= rb.size {
		copy(rb.buf[rb.writeIdx:end], samples)
	} else {
		first := rb.size - rb.writeIdx
		copy(rb.buf[rb.writeIdx:], samples[:first])
		copy(rb.buf, samples[first:])
	}

	if end >= rb.size {
		rb.filled = true
	}
	rb.writeIdx = end % rb.size
}

// ReadLast returns a copy of the most recent n samples, oldest first.
// n is clamped to the capacity. Before the buffer has filled once, only the
// samples written so far are returned (possibly fewer than n, never
// padded). Never blocks the writer beyond the copy and never fails.
func (rb *RingBuffer) ReadLast(n int) []float32 {
	if n < 0 {
		n = 0
	}
	if n > rb.size {
		n = rb.size
	}

	rb.mu.Lock()
	defer rb.mu.Unlock()

	if !rb.filled && rb.writeIdx < n {
		out := make([]float32, rb.writeIdx)
		copy(out, rb.buf[:rb.writeIdx])
		return out
	}

	out := make([]float32, n)
	start := (rb.writeIdx - n + rb.size) % rb.size
	if start < rb.writeIdx || n == 0 {
		copy(out, rb.buf[start:rb.writeIdx])
	} else {
		tail := copy(out, rb.buf[start:])
		copy(out[tail:], rb.buf[:rb.writeIdx])
	}
	return out
}
