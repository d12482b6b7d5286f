// ABOUTME: Interactive setup orchestrator sequencing pairing and association
// ABOUTME: Blocks on signal bus waits and operator input, then starts ingress
package bridge

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/Bridgecast/bridgecast-go/internal/operator"
	"github.com/Bridgecast/bridgecast-go/internal/radio"
	"github.com/Bridgecast/bridgecast-go/internal/signal"
	"github.com/Bridgecast/bridgecast-go/internal/store"
	"github.com/Bridgecast/bridgecast-go/internal/wireless"
)

// DefaultScanDuration bounds the bluetooth discovery scan, matching the
// embedded bridge's 15 second inquiry.
const DefaultScanDuration = 15 * time.Second

// Orchestrator drives the one-time setup sequence: bluetooth discovery
// and pairing, then wireless scan and association, then ingress launch.
// It is single-threaded cooperative sequencing; every wait on the signal
// bus or the operator blocks indefinitely, so a pairing or association
// that never completes parks the sequence in that state for good.
type Orchestrator struct {
	bridge       *Bridge
	radio        radio.Controller
	wifi         wireless.Controller
	console      *operator.Console
	startIngress func()
	scanDuration time.Duration

	cred wireless.Credential

	mu         sync.Mutex
	state      State
	selPeer    string
	selNetwork string
}

// NewOrchestrator creates the setup orchestrator. startIngress is called
// exactly once, after association completes.
func NewOrchestrator(b *Bridge, r radio.Controller, w wireless.Controller,
	console *operator.Console, startIngress func()) *Orchestrator {
	return &Orchestrator{
		bridge:       b,
		radio:        r,
		wifi:         w,
		console:      console,
		startIngress: startIngress,
		scanDuration: DefaultScanDuration,
		state:        StateInit,
	}
}

// SetScanDuration overrides the bluetooth discovery duration.
func (o *Orchestrator) SetScanDuration(d time.Duration) {
	o.scanDuration = d
}

// SelectedPeer returns the display name of the chosen sink, if any.
func (o *Orchestrator) SelectedPeer() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.selPeer
}

// SelectedNetwork returns the SSID of the chosen network, if any.
func (o *Orchestrator) SelectedNetwork() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.selNetwork
}

// State returns the currently active setup state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Run executes the state machine until Running is reached, then returns.
func (o *Orchestrator) Run() {
	s := o.State()
	for s != StateRunning {
		s = o.Step(s)
		o.setState(s)
	}
}

// Step executes one state's handler and returns the next state. An
// out-of-range selection keeps the machine in the same state.
func (o *Orchestrator) Step(s State) State {
	switch s {
	case StateInit:
		return o.stepInit()
	case StateBtDiscovery:
		return o.stepBtDiscovery()
	case StateBtSelection:
		return o.stepBtSelection()
	case StateBtConnecting:
		return o.stepBtConnecting()
	case StateWifiScanning:
		return o.stepWifiScanning()
	case StateWifiSelection:
		return o.stepWifiSelection()
	case StateWifiPasswordInput:
		return o.stepWifiPasswordInput()
	case StateWifiConnecting:
		return o.stepWifiConnecting()
	default:
		return StateRunning
	}
}

func (o *Orchestrator) stepInit() State {
	o.console.Prompt("\n\n--- Step 1: Bluetooth Setup ---\n")
	o.bridge.Peers.Reset()
	if err := o.radio.StartDiscovery(radio.GeneralInquiry, o.scanDuration, 0); err != nil {
		log.Printf("Discovery start failed: %v", err)
	}
	return StateBtDiscovery
}

func (o *Orchestrator) stepBtDiscovery() State {
	o.console.Prompt("Scanning for Bluetooth devices...\n")
	o.bridge.Flags.Wait(signal.BtDiscoveryDone, true)

	peers := o.bridge.Peers.List()
	o.console.Prompt("Scan complete. Found %d devices:\n", len(peers))
	for i, p := range peers {
		name := p.Name
		if name == "" {
			name = "[No Name]"
		}
		o.console.Prompt("  %d: %s\n", i+1, name)
	}
	return StateBtSelection
}

func (o *Orchestrator) stepBtSelection() State {
	o.console.Prompt("Enter the number of the device to connect to: ")
	choice, err := strconv.Atoi(o.console.ReadLine())
	peers := o.bridge.Peers.List()
	if err != nil || choice < 1 || choice > len(peers) {
		o.console.Prompt("Invalid choice. Please try again.\n")
		return StateBtSelection
	}

	picked := peers[choice-1]
	o.mu.Lock()
	o.selPeer = picked.Name
	if o.selPeer == "" {
		o.selPeer = radio.FormatAddr(picked.Addr)
	}
	o.mu.Unlock()

	if err := o.radio.Connect(picked.Addr); err != nil {
		log.Printf("Connect request failed: %v", err)
	}
	return StateBtConnecting
}

func (o *Orchestrator) stepBtConnecting() State {
	o.console.Prompt("Connecting to Bluetooth device...\n")
	o.bridge.Flags.Wait(signal.BtConnected, false)

	o.console.Prompt("\n--- Step 2: Wi-Fi Setup ---\n")
	if err := o.wifi.StartScan(); err != nil {
		log.Printf("Network scan start failed: %v", err)
	}
	return StateWifiScanning
}

func (o *Orchestrator) stepWifiScanning() State {
	o.console.Prompt("Scanning for Wi-Fi networks...\n")
	o.bridge.Flags.Wait(signal.WifiScanDone, true)

	o.bridge.Networks.Reset()
	for _, n := range o.wifi.Records(store.MaxDiscovered) {
		o.bridge.Networks.Add(n)
	}

	nets := o.bridge.Networks.List()
	o.console.Prompt("Scan complete. Found %d networks:\n", len(nets))
	for i, n := range nets {
		o.console.Prompt("  %d: %s (%d)\n", i+1, n.SSID, n.Signal)
	}
	return StateWifiSelection
}

func (o *Orchestrator) stepWifiSelection() State {
	o.console.Prompt("Enter the number of the Wi-Fi network: ")
	choice, err := strconv.Atoi(o.console.ReadLine())
	nets := o.bridge.Networks.List()
	if err != nil || choice < 1 || choice > len(nets) {
		o.console.Prompt("Invalid choice. Please try again.\n")
		return StateWifiSelection
	}

	o.cred = wireless.Credential{SSID: nets[choice-1].SSID}
	o.mu.Lock()
	o.selNetwork = o.cred.SSID
	o.mu.Unlock()
	return StateWifiPasswordInput
}

func (o *Orchestrator) stepWifiPasswordInput() State {
	o.console.Prompt("Enter password for %s: ", o.cred.SSID)
	o.cred.Secret = o.console.ReadLine()

	if err := o.wifi.Join(o.cred); err != nil {
		log.Printf("Association request failed: %v", err)
	}
	return StateWifiConnecting
}

func (o *Orchestrator) stepWifiConnecting() State {
	o.console.Prompt("Connecting to Wi-Fi...\n")
	o.bridge.Flags.Wait(signal.WifiConnected, false)

	// The credential is not retained once association succeeds.
	o.cred = wireless.Credential{}

	o.console.Prompt("\n--- Setup Complete! ---\n")
	o.console.Prompt("Audio bridge is now active. Point your sender at the ingress port.\n")

	o.startIngress()
	return StateRunning
}
