// ABOUTME: Tests for the local audio sink
// ABOUTME: Covers discovery events and the pseudo-address derivation
package sink

import (
	"testing"
	"time"

	"github.com/Bridgecast/bridgecast-go/internal/radio"
	"github.com/Bridgecast/bridgecast-go/internal/store"
)

func TestDiscoveryReportsHostOutput(t *testing.T) {
	s := NewLocalSink(nil, DefaultFormat)

	peers := make(chan store.Peer, 1)
	stopped := make(chan struct{}, 1)
	s.RegisterEvents(radio.Events{
		Discovery: func(p store.Peer) { peers <- p },
		DiscoveryState: func(st radio.DiscoveryState) {
			if st == radio.DiscoveryStopped {
				stopped <- struct{}{}
			}
		},
	})

	if err := s.StartDiscovery(radio.GeneralInquiry, 10*time.Millisecond, 0); err != nil {
		t.Fatalf("discovery failed: %v", err)
	}

	select {
	case p := <-peers:
		if p.Name == "" {
			t.Error("expected host output peer to carry a name")
		}
	case <-time.After(time.Second):
		t.Fatal("no peer reported")
	}

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("scan never stopped")
	}
}

func TestHostOutputPeerIsStable(t *testing.T) {
	a := hostOutputPeer()
	b := hostOutputPeer()
	if a.Addr != b.Addr {
		t.Error("expected a stable pseudo-address across calls")
	}
}

func TestMediaStartRequiresConnection(t *testing.T) {
	s := NewLocalSink(nil, DefaultFormat)
	if err := s.MediaStart(); err == nil {
		t.Error("expected media start to fail before connect")
	}
}
