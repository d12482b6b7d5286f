// ABOUTME: Entry point for the Bridgecast audio bridge
// ABOUTME: Parses CLI flags, runs interactive setup, then the streaming phase
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/Bridgecast/bridgecast-go/internal/bridge"
	"github.com/Bridgecast/bridgecast-go/internal/discovery"
	"github.com/Bridgecast/bridgecast-go/internal/ingest"
	"github.com/Bridgecast/bridgecast-go/internal/operator"
	"github.com/Bridgecast/bridgecast-go/internal/sink"
	"github.com/Bridgecast/bridgecast-go/internal/ui"
	"github.com/Bridgecast/bridgecast-go/internal/version"
	"github.com/Bridgecast/bridgecast-go/internal/wireless"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	port        = flag.Int("port", ingest.DefaultPort, "TCP ingress port for audio senders")
	wsPort      = flag.Int("ws-port", 0, "WebSocket ingress port (0 disables)")
	bufferKB    = flag.Int("buffer-kb", 16, "Elastic audio buffer capacity in KiB")
	scanSeconds = flag.Int("scan-seconds", 15, "Bluetooth discovery scan duration")
	name        = flag.String("name", "", "Bridge name for mDNS (default: hostname-bridgecast)")
	logFile     = flag.String("log-file", "bridgecast.log", "Log file path")
	noTUI       = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	streamLogs  = flag.Bool("stream-logs", false, "Alias for -no-tui")
)

func main() {
	flag.Parse()

	// Determine if we should use TUI or streaming logs
	useTUI := !(*noTUI || *streamLogs)

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Streaming logs mode: log to both stdout and file
		multiWriter := io.MultiWriter(os.Stdout, f)
		log.SetOutput(multiWriter)
	}

	if *bufferKB <= 0 {
		log.Fatalf("invalid buffer capacity: %d KiB", *bufferKB)
	}

	bridgeName := *name
	if bridgeName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		bridgeName = fmt.Sprintf("%s-bridgecast", hostname)
	}

	log.Printf("Starting %s v%s: %s", version.Product, version.Version, bridgeName)

	// Shared context object, created before any goroutine that reads it.
	br := bridge.New(*bufferKB * 1024)

	// Collaborators: host wireless stack and the local audio sink. Event
	// handlers must be bound before any control call is issued.
	wifi := wireless.NewHostNetwork()
	br.BindWireless(wifi)

	audioSink := sink.NewLocalSink(br.Source, sink.DefaultFormat)
	br.BindRadio(audioSink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ingress := ingest.NewServer(br.Buffer, *port)
	startIngress := func() {
		if err := ingress.Listen(); err != nil {
			log.Fatalf("%v", err)
		}
		// The ingress loop gets its own OS thread.
		go func() {
			runtime.LockOSThread()
			ingress.Run(ctx)
		}()
	}

	// Interactive setup: runs to completion before the streaming phase.
	console := operator.NewConsole(os.Stdin, os.Stdout)
	orch := bridge.NewOrchestrator(br, audioSink, wifi, console, startIngress)
	orch.SetScanDuration(time.Duration(*scanSeconds) * time.Second)
	orch.Run()

	// Streaming phase: advertise the ingress endpoint, optionally serve
	// the WebSocket variant, and show status until shutdown.
	disc := discovery.NewManager(discovery.Config{
		ServiceName: bridgeName,
		Port:        *port,
	})
	if err := disc.Advertise(); err != nil {
		log.Printf("mDNS advertisement failed: %v", err)
	}
	defer disc.Stop()

	if *wsPort > 0 {
		wsIngress := ingest.NewWSServer(br.Buffer, *wsPort)
		go wsIngress.Run(ctx)
	}

	var tuiProg *tea.Program
	var ctrl *ui.Control

	if useTUI {
		ctrl = ui.NewControl()
		tuiProg, err = ui.Run(ctrl)
		if err != nil {
			log.Printf("Failed to start TUI: %v", err)
		} else {
			go tuiProg.Run()
			go statsUpdateLoop(ctx, br, orch, ingress, tuiProg)
		}
	}

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if ctrl != nil {
		select {
		case <-ctrl.Quit:
			log.Printf("Received quit signal from TUI")
		case <-sigChan:
			log.Printf("Shutdown signal received")
		}
	} else {
		<-sigChan
		log.Printf("Shutdown signal received")
	}

	cancel()
	if err := audioSink.Close(); err != nil {
		log.Printf("Error closing sink: %v", err)
	}
	if tuiProg != nil {
		tuiProg.Quit()
	}

	log.Printf("Bridge stopped")
}

// statsUpdateLoop periodically updates the TUI with pipeline statistics.
func statsUpdateLoop(ctx context.Context, br *bridge.Bridge, orch *bridge.Orchestrator,
	ingress *ingest.Server, prog *tea.Program) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			prog.Send(ui.StatusMsg{
				Phase:       orch.State().String(),
				SinkName:    orch.SelectedPeer(),
				Network:     orch.SelectedNetwork(),
				BufferLen:   br.Buffer.Len(),
				BufferCap:   br.Buffer.Cap(),
				BytesIn:     br.Buffer.BytesIn(),
				BytesOut:    br.Buffer.BytesOut(),
				Connections: ingress.Connections(),
				IngressPort: ingress.Port(),
				Pulls:       br.Source.Pulls(),
				Underruns:   br.Source.Underruns(),
			})

		case <-ctx.Done():
			return
		}
	}
}
