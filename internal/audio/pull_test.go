// ABOUTME: Tests for the pull source
// ABOUTME: Covers silence fill, full-length reporting and no-op edge cases
package audio

import (
	"bytes"
	"testing"
	"time"
)

func newPull(capacity int) (*ElasticBuffer, *PullSource) {
	b := NewElasticBuffer(capacity)
	return b, NewPullSource(b, 20*time.Millisecond)
}

func TestFillZeroLengthIsNoOp(t *testing.T) {
	b, p := newPull(64)
	b.Write([]byte{1, 2, 3})

	if n := p.Fill(nil); n != 0 {
		t.Errorf("expected 0 for nil buffer, got %d", n)
	}
	if n := p.Fill([]byte{}); n != 0 {
		t.Errorf("expected 0 for empty buffer, got %d", n)
	}
	if b.Len() != 3 {
		t.Errorf("expected buffer untouched, got %d bytes", b.Len())
	}
}

func TestFillUnderrunYieldsSilence(t *testing.T) {
	_, p := newPull(64)

	dst := make([]byte, 256)
	for i := range dst {
		dst[i] = 0xAA
	}

	n := p.Fill(dst)
	if n != 256 {
		t.Fatalf("expected full length 256 reported, got %d", n)
	}
	if !bytes.Equal(dst, make([]byte, 256)) {
		t.Error("expected all-zero silence on empty buffer")
	}
	if p.Underruns() != 1 {
		t.Errorf("expected 1 underrun, got %d", p.Underruns())
	}
}

func TestFillPartialDataSilenceTail(t *testing.T) {
	b, p := newPull(64)
	b.Write([]byte{1, 2, 3, 4})

	dst := make([]byte, 8)
	for i := range dst {
		dst[i] = 0xFF
	}

	n := p.Fill(dst)
	if n != 8 {
		t.Fatalf("expected full length 8 reported, got %d", n)
	}
	want := []byte{1, 2, 3, 4, 0, 0, 0, 0}
	if !bytes.Equal(dst, want) {
		t.Errorf("expected %v, got %v", want, dst)
	}
}

func TestFillSatisfiedWithoutUnderrun(t *testing.T) {
	b, p := newPull(64)
	b.Write([]byte{5, 6, 7, 8})

	dst := make([]byte, 4)
	if n := p.Fill(dst); n != 4 {
		t.Fatalf("expected 4, got %d", n)
	}
	if p.Underruns() != 0 {
		t.Errorf("expected no underrun, got %d", p.Underruns())
	}
	if p.Pulls() != 1 {
		t.Errorf("expected 1 pull, got %d", p.Pulls())
	}
}

func TestReadNeverShortNeverErrors(t *testing.T) {
	_, p := newPull(64)

	dst := make([]byte, 32)
	n, err := p.Read(dst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 32 {
		t.Errorf("expected full read of 32, got %d", n)
	}
}
