// ABOUTME: Setup state machine states
// ABOUTME: One state active at a time, handlers return the next state
package bridge

// State identifies a step of the interactive setup sequence.
type State int

// Setup states in transition order. Running is terminal.
const (
	StateInit State = iota
	StateBtDiscovery
	StateBtSelection
	StateBtConnecting
	StateWifiScanning
	StateWifiSelection
	StateWifiPasswordInput
	StateWifiConnecting
	StateRunning
)

// String returns a short human-readable state name.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateBtDiscovery:
		return "bt-discovery"
	case StateBtSelection:
		return "bt-selection"
	case StateBtConnecting:
		return "bt-connecting"
	case StateWifiScanning:
		return "wifi-scanning"
	case StateWifiSelection:
		return "wifi-selection"
	case StateWifiPasswordInput:
		return "wifi-password"
	case StateWifiConnecting:
		return "wifi-connecting"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}
