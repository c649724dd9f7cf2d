// Package pool provides reuse of same-sized pixel buffers for layers.
package pool

import "sync"

// Pool is a thread-safe pool of byte buffers grouped by length.
//
// Layers of one engine all share the base image's dimensions, so in practice
// a pool holds a single bucket. Buffers handed out by Get are always zeroed.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]byte
	maxSize int // max buffers per bucket
}

// New creates a pool retaining at most maxPerBucket buffers of each length.
// A maxPerBucket of 0 means unlimited (use with caution); a negative value
// disables retention entirely.
func New(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed buffer of exactly size bytes.
func (p *Pool) Get(size int) []byte {
	p.mu.Lock()
	bucket := p.buckets[size]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		bucket[len(bucket)-1] = nil
		p.buckets[size] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		clear(buf)
		return buf
	}
	p.mu.Unlock()

	return make([]byte, size)
}

// Put returns buf to the pool. The caller must not use buf afterwards.
// Nil or empty buffers and buffers beyond the bucket capacity are dropped.
func (p *Pool) Put(buf []byte) {
	if len(buf) == 0 || p.maxSize < 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[len(buf)]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[len(buf)] = append(bucket, buf[:len(buf):len(buf)])
}

// Len reports how many buffers of the given size are currently retained.
func (p *Pool) Len(size int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[size])
}
