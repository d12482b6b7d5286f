// ABOUTME: Tests for the host-backed wireless controller
// ABOUTME: Covers scan completion, record clipping and the join/reconnect path
package wireless

import (
	"testing"
	"time"
)

func TestStartScanFiresScanDone(t *testing.T) {
	h := NewHostNetwork()

	done := make(chan struct{}, 1)
	h.RegisterEvents(Events{ScanDone: func() { done <- struct{}{} }})

	if err := h.StartScan(); err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scan-done event never fired")
	}
}

func TestRecordsClippedToMax(t *testing.T) {
	h := NewHostNetwork()
	done := make(chan struct{}, 1)
	h.RegisterEvents(Events{ScanDone: func() { done <- struct{}{} }})
	h.StartScan()
	<-done

	if got := h.Records(1); len(got) > 1 {
		t.Errorf("expected at most 1 record, got %d", len(got))
	}
	if got := h.Records(0); len(got) != 0 {
		t.Errorf("expected no records for max 0, got %d", len(got))
	}
}

func TestJoinFiresConnected(t *testing.T) {
	h := NewHostNetwork()

	connected := make(chan string, 1)
	h.RegisterEvents(Events{Connected: func(addr string) { connected <- addr }})

	if err := h.Join(Credential{SSID: "lo", Secret: "x"}); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("connected event never fired")
	}
}

func TestConnectWithoutCredentialFails(t *testing.T) {
	h := NewHostNetwork()
	if err := h.Connect(); err == nil {
		t.Error("expected error without a submitted credential")
	}
}

func TestConnectRetriesLastCredential(t *testing.T) {
	h := NewHostNetwork()

	connected := make(chan string, 2)
	h.RegisterEvents(Events{Connected: func(addr string) { connected <- addr }})

	h.Join(Credential{SSID: "lo"})
	<-connected

	if err := h.Connect(); err != nil {
		t.Fatalf("reconnect failed: %v", err)
	}
	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("reconnect never fired connected")
	}
}
