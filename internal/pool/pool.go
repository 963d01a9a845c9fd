// Package pool provides typed wrappers around sync.Pool for the datagram
// buffers the sinkhole reuses on every query.
package pool

import "sync"

// Pool is a typed sync.Pool.
type Pool[T any] struct {
	internal sync.Pool
}

// New creates a Pool that calls newFn when empty.
func New[T any](newFn func() T) *Pool[T] {
	return &Pool[T]{
		internal: sync.Pool{
			New: func() any {
				return newFn()
			},
		},
	}
}

func (p *Pool[T]) Get() T {
	return p.internal.Get().(T)
}

func (p *Pool[T]) Put(item T) {
	p.internal.Put(item)
}

// Buffers hands out byte slices of a fixed capacity.
//
// Get returns a zero-length slice. Put discards slices whose capacity no
// longer matches, so a buffer that grew past the datagram limit is not kept.
type Buffers struct {
	size int
	p    *Pool[*[]byte]
}

// NewBuffers creates a buffer pool with capacity size per buffer.
func NewBuffers(size int) *Buffers {
	return &Buffers{
		size: size,
		p: New(func() *[]byte {
			b := make([]byte, 0, size)
			return &b
		}),
	}
}

// Size is the capacity of buffers handed out by Get.
func (b *Buffers) Size() int {
	return b.size
}

func (b *Buffers) Get() *[]byte {
	bp := b.p.Get()
	*bp = (*bp)[:0]
	return bp
}

func (b *Buffers) Put(bp *[]byte) {
	if bp == nil || cap(*bp) != b.size {
		return
	}
	b.p.Put(bp)
}
