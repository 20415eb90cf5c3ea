// Package bufpool provides a tiered pool of encode buffers.
//
// Packet sizes cluster into three classes, and the pool keeps one
// sync.Pool per class:
//   - Small buffers (default 64B): header-only and END packets, START packets
//     with short paths
//   - Medium buffers (default 1KB): any START packet and small DATA packets
//   - Large buffers (default 64KB + DATA overhead): the largest DATA packet
//
// Requests above the large tier are allocated directly and never pooled.
//
// # Usage
//
//	buf := bufpool.Get(p.EncodedSize())
//	defer bufpool.Put(buf)
//	n, err := filepacket.MarshalTo(buf, p)
package bufpool

import (
	"sync"
)

// Default buffer size classes.
const (
	// DefaultSmallSize fits CANCEL, END and most START packets.
	DefaultSmallSize = 64

	// DefaultMediumSize fits every START packet (two 255-byte paths).
	DefaultMediumSize = 1 << 10

	// DefaultLargeSize fits a DATA packet carrying a full 65535-byte chunk.
	DefaultLargeSize = 64<<10 + 16
)

// Pool manages byte slices organized by size class.
type Pool struct {
	small      sync.Pool
	medium     sync.Pool
	large      sync.Pool
	smallSize  int
	mediumSize int
	largeSize  int
}

// Config holds the size classes of a custom pool. Zero fields take the
// package defaults.
type Config struct {
	SmallSize  int
	MediumSize int
	LargeSize  int
}

// DefaultConfig returns the default pool configuration.
func DefaultConfig() Config {
	return Config{
		SmallSize:  DefaultSmallSize,
		MediumSize: DefaultMediumSize,
		LargeSize:  DefaultLargeSize,
	}
}

// NewPool creates a new buffer pool. If cfg is nil, default values are used.
func NewPool(cfg *Config) *Pool {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.SmallSize > 0 {
			c.SmallSize = cfg.SmallSize
		}
		if cfg.MediumSize > 0 {
			c.MediumSize = cfg.MediumSize
		}
		if cfg.LargeSize > 0 {
			c.LargeSize = cfg.LargeSize
		}
	}

	p := &Pool{
		smallSize:  c.SmallSize,
		mediumSize: c.MediumSize,
		largeSize:  c.LargeSize,
	}
	p.small.New = newBuffer(p.smallSize)
	p.medium.New = newBuffer(p.mediumSize)
	p.large.New = newBuffer(p.largeSize)
	return p
}

func newBuffer(size int) func() any {
	return func() any {
		buf := make([]byte, size)
		return &buf
	}
}

// Get returns a slice of length size, backed by a pooled buffer whenever
// size fits a class. The caller must Put it back when done.
func (p *Pool) Get(size int) []byte {
	var bufPtr *[]byte

	switch {
	case size <= p.smallSize:
		bufPtr = p.small.Get().(*[]byte)
	case size <= p.mediumSize:
		bufPtr = p.medium.Get().(*[]byte)
	case size <= p.largeSize:
		bufPtr = p.large.Get().(*[]byte)
	default:
		return make([]byte, size)
	}

	return (*bufPtr)[:size]
}

// Put returns a buffer obtained from Get. Buffers whose capacity matches no
// class are left to the garbage collector.
func (p *Pool) Put(buf []byte) {
	if buf == nil {
		return
	}

	full := buf[:cap(buf)]
	switch cap(buf) {
	case p.smallSize:
		p.small.Put(&full)
	case p.mediumSize:
		p.medium.Put(&full)
	case p.largeSize:
		p.large.Put(&full)
	}
}

// =============================================================================
// Global Pool
// =============================================================================

var globalPool = NewPool(nil)

// Get returns a buffer of the requested length from the global pool.
func Get(size int) []byte {
	return globalPool.Get(size)
}

// Put returns a buffer to the global pool.
func Put(buf []byte) {
	globalPool.Put(buf)
}
