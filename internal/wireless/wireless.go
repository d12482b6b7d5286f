// ABOUTME: Boundary to the wireless association stack
// ABOUTME: Scan, record retrieval, credential submission and reconnect calls
package wireless

import "github.com/Bridgecast/bridgecast-go/internal/store"

// Credential carries the operator's network selection. It is built once
// during setup, handed to Join by value, and not retained afterwards.
type Credential struct {
	SSID   string
	Secret string
}

// Events are the callbacks a wireless implementation invokes from its own
// execution context. ScanDone fires when a scan's records are ready;
// Connected fires once association and address acquisition complete;
// Disconnected fires when the association drops.
type Events struct {
	ScanDone     func()
	Connected    func(addr string)
	Disconnected func()
}

// Controller is the control surface of the wireless stack. Callbacks must
// be registered before any control call is issued.
type Controller interface {
	RegisterEvents(Events)
	StartScan() error
	// Records returns up to max scan records gathered by the last scan.
	Records(max int) []store.Network
	// Join submits the credential and begins association.
	Join(cred Credential) error
	// Connect retries association with the last submitted credential.
	Connect() error
}
