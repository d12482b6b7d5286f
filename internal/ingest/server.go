// ABOUTME: TCP ingress accepting one audio-producing connection at a time
// ABOUTME: Pushes received bytes into the elastic buffer with back-pressure
package ingest

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync/atomic"

	"github.com/Bridgecast/bridgecast-go/internal/audio"
	"github.com/google/uuid"
)

// DefaultPort is the bridge's audio ingress port.
const DefaultPort = 8080

// scratchSize is the per-read receive buffer.
const scratchSize = 1024

// Server feeds the elastic buffer from a single TCP connection. Writes
// into a full buffer block until the pull side drains space, applying
// back-pressure to the sender instead of dropping bytes; a dropped span
// would corrupt the sample stream, while slowing the socket only delays
// it. When a peer disconnects the server returns to listening.
type Server struct {
	buf      *audio.ElasticBuffer
	port     int
	listener net.Listener

	conns atomic.Int64
}

// NewServer creates an ingress server draining into buf.
func NewServer(buf *audio.ElasticBuffer, port int) *Server {
	return &Server{buf: buf, port: port}
}

// Listen binds the ingress port. Separate from Run so callers learn
// about a bind failure synchronously.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("ingress listen failed: %w", err)
	}
	s.listener = ln
	return nil
}

// Run accepts connections serially until ctx is cancelled. This loop is
// the system's steady state; it never returns to setup.
func (s *Server) Run(ctx context.Context) {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			log.Printf("%v", err)
			return
		}
	}

	go func() {
		<-ctx.Done()
		s.listener.Close()
	}()

	for {
		log.Printf("Ingress listening on port %d", s.port)

		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			log.Printf("Unable to accept connection: %v", err)
			return
		}

		s.serve(conn)
	}
}

// serve pumps one connection into the elastic buffer until the peer
// closes or errors out.
func (s *Server) serve(conn net.Conn) {
	defer conn.Close()

	id := uuid.New().String()[:8]
	s.conns.Add(1)
	log.Printf("Accepted connection %s from %s", id, conn.RemoteAddr())

	scratch := make([]byte, scratchSize)
	for {
		n, err := conn.Read(scratch)
		if n > 0 {
			s.buf.Write(scratch[:n])
		}
		if err != nil {
			break
		}
	}

	log.Printf("Connection %s closed", id)
}

// Connections returns the number of connections accepted so far.
func (s *Server) Connections() int64 { return s.conns.Load() }

// Addr returns the bound listener address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Port returns the bound ingress port.
func (s *Server) Port() int { return s.port }
