// ABOUTME: Boundary to the short-range radio stack (discovery and audio link)
// ABOUTME: Defines the event callbacks and control calls the bridge relies on
package radio

import (
	"fmt"
	"time"

	"github.com/Bridgecast/bridgecast-go/internal/store"
)

// DiscoveryState reports scan lifecycle changes.
type DiscoveryState int

const (
	DiscoveryStarted DiscoveryState = iota
	DiscoveryStopped
)

// ConnState reports audio link lifecycle changes.
type ConnState int

const (
	Connected ConnState = iota
	Disconnected
)

// AudioState reports media stream lifecycle changes.
type AudioState int

// AudioStarted is emitted when the sink begins pulling media.
const AudioStarted AudioState = iota

// InquiryMode selects the discovery mode for StartDiscovery.
type InquiryMode int

// GeneralInquiry is the only mode the bridge uses.
const GeneralInquiry InquiryMode = iota

// Events are the callbacks a radio implementation invokes from its own
// execution context. Discovery fires once per found peer; DiscoveryState
// fires on scan start/stop; Connection and Audio report the link.
type Events struct {
	Discovery      func(store.Peer)
	DiscoveryState func(DiscoveryState)
	Connection     func(ConnState)
	Audio          func(AudioState)
}

// Controller is the control surface of the radio stack. Callbacks must be
// registered before any control call is issued.
type Controller interface {
	RegisterEvents(Events)
	StartDiscovery(mode InquiryMode, duration time.Duration, limit int) error
	Connect(addr store.Addr) error
	MediaStart() error
}

// FormatAddr renders an address in the conventional colon notation.
func FormatAddr(a store.Addr) string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		a[0], a[1], a[2], a[3], a[4], a[5])
}
