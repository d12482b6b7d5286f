// ABOUTME: Tests for mDNS discovery
// ABOUTME: Tests manager construction and channel wiring
package discovery

import (
	"testing"
)

func TestNewManager(t *testing.T) {
	config := Config{
		ServiceName: "test-bridge",
		Port:        8080,
	}

	mgr := NewManager(config)
	if mgr == nil {
		t.Fatal("expected manager to be created")
	}
	if mgr.Bridges() == nil {
		t.Error("expected bridges channel to be initialized")
	}
	mgr.Stop()
}
