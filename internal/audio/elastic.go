// ABOUTME: Bounded FIFO byte buffer between network ingress and audio egress
// ABOUTME: Blocking writes apply back-pressure, reads wait a bounded interval
package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/smallnest/ringbuffer"
)

// DefaultCapacity matches the stream buffer sizing of the embedded bridge.
const DefaultCapacity = 16 * 1024

// ElasticBuffer is a bounded byte FIFO with single-producer/single-consumer
// discipline. The writer blocks indefinitely while the buffer is full; the
// reader waits at most a caller-supplied bound for data to arrive. Bytes
// come out in the exact order they went in.
type ElasticBuffer struct {
	mu       sync.Mutex
	rb       *ringbuffer.RingBuffer
	notEmpty chan struct{}
	notFull  chan struct{}

	bytesIn  atomic.Int64
	bytesOut atomic.Int64
}

// NewElasticBuffer creates a buffer with the given byte capacity.
func NewElasticBuffer(capacity int) *ElasticBuffer {
	return &ElasticBuffer{
		rb:       ringbuffer.New(capacity),
		notEmpty: make(chan struct{}, 1),
		notFull:  make(chan struct{}, 1),
	}
}

// Write copies all of p into the buffer, blocking without a time bound
// whenever the buffer is full. Returns len(p).
func (b *ElasticBuffer) Write(p []byte) int {
	total := 0
	for len(p) > 0 {
		b.mu.Lock()
		n := b.rb.Free()
		if n > len(p) {
			n = len(p)
		}
		if n > 0 {
			written, err := b.rb.Write(p[:n])
			b.mu.Unlock()
			if err != nil {
				// Free space was checked under the lock; treat any
				// short write as written and retry the remainder.
				n = written
			}
			p = p[n:]
			total += n
			b.bytesIn.Add(int64(n))
			wake(b.notEmpty)
			continue
		}
		b.mu.Unlock()
		<-b.notFull
	}
	return total
}

// ReadWait drains up to len(p) bytes, waiting at most wait for the first
// byte to arrive. Returns the number of bytes read; zero when nothing
// arrived within the bound.
func (b *ElasticBuffer) ReadWait(p []byte, wait time.Duration) int {
	if len(p) == 0 {
		return 0
	}
	deadline := time.Now().Add(wait)
	for {
		b.mu.Lock()
		if b.rb.Length() > 0 {
			n, _ := b.rb.Read(p)
			b.mu.Unlock()
			b.bytesOut.Add(int64(n))
			wake(b.notFull)
			return n
		}
		b.mu.Unlock()

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0
		}
		timer := time.NewTimer(remaining)
		select {
		case <-b.notEmpty:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// Len returns the number of bytes currently buffered.
func (b *ElasticBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rb.Length()
}

// Cap returns the buffer capacity.
func (b *ElasticBuffer) Cap() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rb.Capacity()
}

// BytesIn returns the total bytes accepted from the producer.
func (b *ElasticBuffer) BytesIn() int64 { return b.bytesIn.Load() }

// BytesOut returns the total bytes handed to the consumer.
func (b *ElasticBuffer) BytesOut() int64 { return b.bytesOut.Load() }

// wake delivers a coalesced signal without blocking.
func wake(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
