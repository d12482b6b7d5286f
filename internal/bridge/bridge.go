// ABOUTME: Shared bridge context and collaborator event wiring
// ABOUTME: Owns the stores, signal bus and audio buffer for process lifetime
package bridge

import (
	"log"

	"github.com/Bridgecast/bridgecast-go/internal/audio"
	"github.com/Bridgecast/bridgecast-go/internal/radio"
	"github.com/Bridgecast/bridgecast-go/internal/signal"
	"github.com/Bridgecast/bridgecast-go/internal/store"
	"github.com/Bridgecast/bridgecast-go/internal/wireless"
)

// Bridge is the single shared context of the process: discovery stores,
// the signal bus, the elastic buffer and its pull source. It is created
// once at startup, before any goroutine that reads it, and passed by
// reference to every component that needs it.
type Bridge struct {
	Peers    *store.PeerStore
	Networks *store.NetworkStore
	Flags    *signal.Flags
	Buffer   *audio.ElasticBuffer
	Source   *audio.PullSource
}

// New creates the bridge context with the given buffer capacity.
func New(bufferCap int) *Bridge {
	buf := audio.NewElasticBuffer(bufferCap)
	return &Bridge{
		Peers:    store.NewPeerStore(store.MaxDiscovered),
		Networks: store.NewNetworkStore(store.MaxDiscovered),
		Flags:    signal.NewFlags(),
		Buffer:   buf,
		Source:   audio.NewPullSource(buf, audio.DefaultPullWait),
	}
}

// BindRadio registers the bridge's handlers on the radio stack. The
// handlers run on the radio's own execution context and only touch
// containers that carry their own synchronization.
func (b *Bridge) BindRadio(r radio.Controller) {
	r.RegisterEvents(radio.Events{
		Discovery: func(p store.Peer) {
			b.Peers.Add(p)
		},
		DiscoveryState: func(st radio.DiscoveryState) {
			switch st {
			case radio.DiscoveryStarted:
				log.Printf("Bluetooth scan started.")
			case radio.DiscoveryStopped:
				log.Printf("Bluetooth scan stopped.")
				b.Flags.Set(signal.BtDiscoveryDone)
			}
		},
		Connection: func(st radio.ConnState) {
			switch st {
			case radio.Connected:
				log.Printf("Audio link connected.")
				b.Flags.Set(signal.BtConnected)
				if err := r.MediaStart(); err != nil {
					log.Printf("Media start failed: %v", err)
				}
			case radio.Disconnected:
				log.Printf("Audio link disconnected. Restart the bridge to reconnect.")
				b.Flags.Clear(signal.BtConnected)
			}
		},
		Audio: func(st radio.AudioState) {
			if st == radio.AudioStarted {
				log.Printf("Audio streaming started.")
			}
		},
	})
}

// BindWireless registers the bridge's handlers on the wireless stack. A
// disconnect triggers exactly one reconnect attempt per event, with no
// backoff; an unreachable network loops through these two events until
// it comes back.
func (b *Bridge) BindWireless(w wireless.Controller) {
	w.RegisterEvents(wireless.Events{
		ScanDone: func() {
			b.Flags.Set(signal.WifiScanDone)
		},
		Connected: func(addr string) {
			log.Printf("Got network address: %s", addr)
			b.Flags.Set(signal.WifiConnected)
		},
		Disconnected: func() {
			log.Printf("Network disconnected. Retrying...")
			b.Flags.Clear(signal.WifiConnected)
			if err := w.Connect(); err != nil {
				log.Printf("Reconnect failed: %v", err)
			}
		},
	})
}
