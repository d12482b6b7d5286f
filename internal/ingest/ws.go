// ABOUTME: WebSocket ingress variant for senders behind browser transports
// ABOUTME: Binary messages share the elastic buffer discipline of the TCP path
package ingest

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/Bridgecast/bridgecast-go/internal/audio"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WSServer accepts one streaming WebSocket client at a time on /stream
// and pushes every binary message into the elastic buffer, blocking when
// the buffer is full exactly like the TCP path.
type WSServer struct {
	buf  *audio.ElasticBuffer
	port int

	mu     sync.Mutex
	busy   bool
	server *http.Server

	conns atomic.Int64

	upgrader websocket.Upgrader
}

// NewWSServer creates a WebSocket ingress draining into buf.
func NewWSServer(buf *audio.ElasticBuffer, port int) *WSServer {
	return &WSServer{
		buf:  buf,
		port: port,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  scratchSize,
			WriteBufferSize: scratchSize,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Run serves until ctx is cancelled.
func (s *WSServer) Run(ctx context.Context) {
	mux := http.NewServeMux()
	mux.HandleFunc("/stream", s.handleStream)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		s.server.Close()
	}()

	log.Printf("WebSocket ingress listening on port %d", s.port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("WebSocket ingress stopped: %v", err)
	}
}

// handleStream upgrades the connection and pumps binary frames into the
// buffer. A second concurrent client is refused.
func (s *WSServer) handleStream(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		http.Error(w, "stream busy", http.StatusConflict)
		return
	}
	s.busy = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	id := uuid.New().String()[:8]
	s.conns.Add(1)
	log.Printf("Accepted WebSocket stream %s from %s", id, conn.RemoteAddr())

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if msgType != websocket.BinaryMessage || len(data) == 0 {
			continue
		}
		s.buf.Write(data)
	}

	log.Printf("WebSocket stream %s closed", id)
}

// Connections returns the number of streams accepted so far.
func (s *WSServer) Connections() int64 { return s.conns.Load() }
