// ABOUTME: Host-backed wireless controller for desktop builds
// ABOUTME: Reports active interfaces as scan records, association is immediate
package wireless

import (
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/Bridgecast/bridgecast-go/internal/store"
)

// HostNetwork implements Controller on hosts where the operating system
// owns wireless association. A scan reports the host's active interfaces
// as records and Join completes immediately; the event contract (scan
// done, connected, disconnected triggering a reconnect) is the same one
// an embedded wireless stack provides.
type HostNetwork struct {
	mu      sync.Mutex
	events  Events
	records []store.Network
	cred    Credential
	joined  bool
}

// NewHostNetwork creates a host-backed wireless controller.
func NewHostNetwork() *HostNetwork {
	return &HostNetwork{}
}

// RegisterEvents installs the event callbacks.
func (h *HostNetwork) RegisterEvents(ev Events) {
	h.mu.Lock()
	h.events = ev
	h.mu.Unlock()
}

// StartScan enumerates the host's usable interfaces asynchronously and
// fires ScanDone when the records are ready.
func (h *HostNetwork) StartScan() error {
	go func() {
		ifaces, err := net.Interfaces()
		if err != nil {
			log.Printf("Interface enumeration failed: %v", err)
			ifaces = nil
		}

		var records []store.Network
		for _, iface := range ifaces {
			if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
				continue
			}
			// No radio measurement is available from the host; rank
			// interfaces in enumeration order instead.
			records = append(records, store.Network{
				SSID:   iface.Name,
				Signal: -40 - 2*len(records),
			})
		}

		h.mu.Lock()
		h.records = records
		done := h.events.ScanDone
		h.mu.Unlock()

		if done != nil {
			done()
		}
	}()
	return nil
}

// Records returns up to max records from the last scan.
func (h *HostNetwork) Records(max int) []store.Network {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.records)
	if n > max {
		n = max
	}
	out := make([]store.Network, n)
	copy(out, h.records[:n])
	return out
}

// Join stores the credential and begins association.
func (h *HostNetwork) Join(cred Credential) error {
	h.mu.Lock()
	h.cred = cred
	h.joined = true
	h.mu.Unlock()
	return h.Connect()
}

// Connect (re)associates using the last submitted credential. The host
// is already associated, so the connected event fires as soon as an
// address for the chosen interface is known.
func (h *HostNetwork) Connect() error {
	h.mu.Lock()
	if !h.joined {
		h.mu.Unlock()
		return fmt.Errorf("no credential submitted")
	}
	name := h.cred.SSID
	connected := h.events.Connected
	h.mu.Unlock()

	go func() {
		addr := interfaceAddr(name)
		if connected != nil {
			connected(addr)
		}
	}()
	return nil
}

// interfaceAddr returns the first IPv4 address of the named interface,
// or an empty string when none is assigned.
func interfaceAddr(name string) string {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return ""
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && ipnet.IP.To4() != nil {
			return ipnet.IP.String()
		}
	}
	return ""
}
