// ABOUTME: Tests for collaborator event wiring
// ABOUTME: Covers signal setting, media start and reconnect behavior
package bridge

import (
	"testing"

	"github.com/Bridgecast/bridgecast-go/internal/radio"
	"github.com/Bridgecast/bridgecast-go/internal/signal"
	"github.com/Bridgecast/bridgecast-go/internal/store"
)

func TestDiscoveryEventsFillPeerStore(t *testing.T) {
	b := New(64)
	fr := &fakeRadio{}
	b.BindRadio(fr)

	fr.ev.Discovery(store.Peer{Addr: store.Addr{1}})
	fr.ev.Discovery(store.Peer{Addr: store.Addr{1}})
	fr.ev.Discovery(store.Peer{Addr: store.Addr{2}})

	if b.Peers.Len() != 2 {
		t.Errorf("expected 2 deduplicated peers, got %d", b.Peers.Len())
	}
	if b.Flags.IsSet(signal.BtDiscoveryDone) {
		t.Error("expected no completion signal before scan stops")
	}

	fr.ev.DiscoveryState(radio.DiscoveryStopped)
	if !b.Flags.IsSet(signal.BtDiscoveryDone) {
		t.Error("expected completion signal after scan stops")
	}
}

func TestLinkConnectedStartsMedia(t *testing.T) {
	b := New(64)
	fr := &fakeRadio{}
	b.BindRadio(fr)

	fr.ev.Connection(radio.Connected)

	if !b.Flags.IsSet(signal.BtConnected) {
		t.Error("expected connected flag set")
	}
	if fr.mediaCalls != 1 {
		t.Errorf("expected media start on connect, got %d calls", fr.mediaCalls)
	}
}

func TestLinkDisconnectClearsFlag(t *testing.T) {
	b := New(64)
	fr := &fakeRadio{}
	b.BindRadio(fr)

	fr.ev.Connection(radio.Connected)
	fr.ev.Connection(radio.Disconnected)

	if b.Flags.IsSet(signal.BtConnected) {
		t.Error("expected connected flag cleared on disconnect")
	}
}

func TestWirelessDisconnectReconnectsOncePerEvent(t *testing.T) {
	b := New(64)
	fw := &fakeWireless{}
	b.BindWireless(fw)

	fw.ev.Disconnected()
	if fw.reconnects != 1 {
		t.Fatalf("expected exactly one reconnect, got %d", fw.reconnects)
	}

	fw.ev.Disconnected()
	if fw.reconnects != 2 {
		t.Fatalf("expected one reconnect per event, got %d", fw.reconnects)
	}
}

func TestWirelessDisconnectLeavesTerminalOrchestratorAlone(t *testing.T) {
	h := newHarness("1\n1\npw\n", twoPeers(),
		[]store.Network{{SSID: "home", Signal: -42}})
	h.orch.Run()

	h.wifi.ev.Disconnected()

	if h.orch.State() != StateRunning {
		t.Errorf("expected orchestrator to stay terminal, got %s", h.orch.State())
	}
	if h.wifi.reconnects != 1 {
		t.Errorf("expected one reconnect attempt, got %d", h.wifi.reconnects)
	}
}

func TestWirelessConnectedSetsFlag(t *testing.T) {
	b := New(64)
	fw := &fakeWireless{}
	b.BindWireless(fw)

	fw.ev.ScanDone()
	if !b.Flags.IsSet(signal.WifiScanDone) {
		t.Error("expected scan-done flag set")
	}

	fw.ev.Connected("10.0.0.9")
	if !b.Flags.IsSet(signal.WifiConnected) {
		t.Error("expected association flag set")
	}
}
