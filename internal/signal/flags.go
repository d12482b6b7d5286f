// ABOUTME: Waitable binary flags for cross-goroutine notification
// ABOUTME: Models set/clear/wait semantics used by the setup orchestrator
package signal

import "sync"

// Bit identifies a single flag on the bus.
type Bit uint32

// Flags used by the bridge setup sequence.
const (
	BtDiscoveryDone Bit = 1 << iota
	WifiScanDone
	BtConnected
	WifiConnected
)

// Flags is a set of independently settable binary flags. Waiters block
// until their flag is set; there is no timeout at this layer.
type Flags struct {
	mu      sync.Mutex
	bits    Bit
	changed chan struct{}
}

// NewFlags creates an empty flag set.
func NewFlags() *Flags {
	return &Flags{changed: make(chan struct{})}
}

// Set raises the given bits and wakes all waiters.
func (f *Flags) Set(b Bit) {
	f.mu.Lock()
	f.bits |= b
	close(f.changed)
	f.changed = make(chan struct{})
	f.mu.Unlock()
}

// Clear lowers the given bits. Waiters are not woken; a cleared flag
// simply has to be set again before a waiter proceeds.
func (f *Flags) Clear(b Bit) {
	f.mu.Lock()
	f.bits &^= b
	f.mu.Unlock()
}

// IsSet reports whether all given bits are currently raised.
func (f *Flags) IsSet(b Bit) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bits&b == b
}

// Wait blocks until the given bit is set. With autoClear the bit is
// lowered again before returning, consuming the event; without it the
// bit stays raised for later waits. Blocks indefinitely by design.
func (f *Flags) Wait(b Bit, autoClear bool) {
	f.mu.Lock()
	for f.bits&b == 0 {
		ch := f.changed
		f.mu.Unlock()
		<-ch
		f.mu.Lock()
	}
	if autoClear {
		f.bits &^= b
	}
	f.mu.Unlock()
}
