// ABOUTME: Local audio sink implementing the radio boundary with oto
// ABOUTME: The oto player pulls from the bridge source on its own clock
package sink

import (
	"fmt"
	"hash/fnv"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/Bridgecast/bridgecast-go/internal/radio"
	"github.com/Bridgecast/bridgecast-go/internal/store"
	"github.com/ebitengine/oto/v3"
)

// Format describes the PCM stream the sink consumes.
type Format struct {
	SampleRate int
	Channels   int
}

// DefaultFormat matches the raw stream the ingress accepts: 16-bit
// little-endian stereo at 44.1 kHz.
var DefaultFormat = Format{SampleRate: 44100, Channels: 2}

// LocalSink implements radio.Controller against the host's audio output.
// Discovery reports the output device as a single peer, Connect opens
// the oto context, and MediaStart hands the pull source to an oto player
// whose own clock drives the periodic data requests.
type LocalSink struct {
	mu     sync.Mutex
	src    io.Reader
	format Format
	events radio.Events
	otoCtx *oto.Context
	player *oto.Player
}

// NewLocalSink creates a sink that will pull audio from src.
func NewLocalSink(src io.Reader, format Format) *LocalSink {
	return &LocalSink{src: src, format: format}
}

// RegisterEvents installs the event callbacks.
func (s *LocalSink) RegisterEvents(ev radio.Events) {
	s.mu.Lock()
	s.events = ev
	s.mu.Unlock()
}

// StartDiscovery reports the host output device after the requested scan
// duration and then signals that the scan stopped.
func (s *LocalSink) StartDiscovery(mode radio.InquiryMode, duration time.Duration, limit int) error {
	s.mu.Lock()
	ev := s.events
	s.mu.Unlock()

	go func() {
		if ev.DiscoveryState != nil {
			ev.DiscoveryState(radio.DiscoveryStarted)
		}
		if ev.Discovery != nil {
			ev.Discovery(hostOutputPeer())
		}
		time.Sleep(duration)
		if ev.DiscoveryState != nil {
			ev.DiscoveryState(radio.DiscoveryStopped)
		}
	}()
	return nil
}

// Connect opens the audio output and reports the link as connected.
func (s *LocalSink) Connect(addr store.Addr) error {
	op := &oto.NewContextOptions{
		SampleRate:   s.format.SampleRate,
		ChannelCount: s.format.Channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	go func() {
		<-readyChan

		s.mu.Lock()
		s.otoCtx = ctx
		ev := s.events
		s.mu.Unlock()

		log.Printf("Audio sink ready: %dHz, %d channels (%s)",
			s.format.SampleRate, s.format.Channels, radio.FormatAddr(addr))

		if ev.Connection != nil {
			ev.Connection(radio.Connected)
		}
	}()
	return nil
}

// MediaStart begins playback. From here on the player requests data on
// its own schedule through the source's Read.
func (s *LocalSink) MediaStart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.otoCtx == nil {
		return fmt.Errorf("sink not connected")
	}
	if s.player != nil {
		return nil
	}

	s.player = s.otoCtx.NewPlayer(s.src)
	s.player.Play()

	if s.events.Audio != nil {
		s.events.Audio(radio.AudioStarted)
	}
	return nil
}

// Close stops playback.
func (s *LocalSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player != nil {
		err := s.player.Close()
		s.player = nil
		return err
	}
	return nil
}

// hostOutputPeer derives a stable pseudo-address for the host's audio
// output from the hostname.
func hostOutputPeer() store.Peer {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	h := fnv.New64a()
	h.Write([]byte(hostname))
	sum := h.Sum(nil)

	var addr store.Addr
	copy(addr[:], sum[:6])

	return store.Peer{
		Addr: addr,
		Name: fmt.Sprintf("%s audio output", hostname),
		Props: map[string]string{
			"kind": "host-output",
		},
	}
}
