// ABOUTME: Capacity-bounded stores for transient discovery results
// ABOUTME: Deduplicates bluetooth peers by address and networks by SSID
package store

import "sync"

// MaxDiscovered is the default capacity of both stores, matching the
// bounded record tables of the embedded bridge.
const MaxDiscovered = 20

// Addr is a bluetooth device address.
type Addr [6]byte

// Peer is one discovered bluetooth device. A missing name is a normal
// result, not an error; Props carries the raw property list from the
// discovery event.
type Peer struct {
	Addr  Addr
	Name  string
	Props map[string]string
}

// Network is one discovered wireless network.
type Network struct {
	SSID   string
	Signal int
}

// PeerStore holds at most capacity peers for one scan cycle.
type PeerStore struct {
	mu    sync.Mutex
	cap   int
	peers []Peer
}

// NewPeerStore creates a peer store with the given capacity.
func NewPeerStore(capacity int) *PeerStore {
	return &PeerStore{cap: capacity}
}

// Add appends a peer unless its address is already present or the store
// is full. Excess discoveries are dropped silently.
func (s *PeerStore) Add(p Peer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, have := range s.peers {
		if have.Addr == p.Addr {
			return
		}
	}
	if len(s.peers) >= s.cap {
		return
	}
	s.peers = append(s.peers, p)
}

// List returns a snapshot of the stored peers in discovery order.
func (s *PeerStore) List() []Peer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Peer, len(s.peers))
	copy(out, s.peers)
	return out
}

// Len returns the number of stored peers.
func (s *PeerStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.peers)
}

// Reset clears the store for a new scan cycle.
func (s *PeerStore) Reset() {
	s.mu.Lock()
	s.peers = s.peers[:0]
	s.mu.Unlock()
}

// NetworkStore holds at most capacity networks for one scan cycle.
type NetworkStore struct {
	mu   sync.Mutex
	cap  int
	nets []Network
}

// NewNetworkStore creates a network store with the given capacity.
func NewNetworkStore(capacity int) *NetworkStore {
	return &NetworkStore{cap: capacity}
}

// Add appends a network unless its SSID is already present or the store
// is full.
func (s *NetworkStore) Add(n Network) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, have := range s.nets {
		if have.SSID == n.SSID {
			return
		}
	}
	if len(s.nets) >= s.cap {
		return
	}
	s.nets = append(s.nets, n)
}

// List returns a snapshot of the stored networks in discovery order.
func (s *NetworkStore) List() []Network {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Network, len(s.nets))
	copy(out, s.nets)
	return out
}

// Len returns the number of stored networks.
func (s *NetworkStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nets)
}

// Reset clears the store for a new scan cycle.
func (s *NetworkStore) Reset() {
	s.mu.Lock()
	s.nets = s.nets[:0]
	s.mu.Unlock()
}
