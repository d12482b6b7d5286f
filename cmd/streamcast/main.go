// ABOUTME: Sender tool that streams audio to a bridge's TCP ingress
// ABOUTME: Decodes MP3 to raw PCM or forwards a raw file at playback rate
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"time"

	"github.com/Bridgecast/bridgecast-go/internal/discovery"
	"github.com/hajimehoshi/go-mp3"
)

var (
	addr     = flag.String("addr", "", "Bridge address host:port (default: mDNS discovery)")
	mp3Path  = flag.String("mp3", "", "MP3 file to decode and stream")
	rawPath  = flag.String("raw", "", "Raw PCM file (16-bit LE stereo) to stream")
	rawRate  = flag.Int("rate", 44100, "Sample rate of the raw file")
	channels = 2
)

// chunkSize is the number of PCM bytes sent per pacing tick.
const chunkSize = 4096

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)

	if (*mp3Path == "") == (*rawPath == "") {
		log.Fatalf("specify exactly one of -mp3 or -raw")
	}

	target := *addr
	if target == "" {
		bridge, err := findBridge()
		if err != nil {
			log.Fatalf("%v", err)
		}
		target = fmt.Sprintf("%s:%d", bridge.Host, bridge.Port)
	}

	conn, err := net.Dial("tcp", target)
	if err != nil {
		log.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	log.Printf("Streaming to %s", target)

	var src io.Reader
	sampleRate := *rawRate

	switch {
	case *mp3Path != "":
		f, err := os.Open(*mp3Path)
		if err != nil {
			log.Fatalf("open failed: %v", err)
		}
		defer f.Close()

		decoder, err := mp3.NewDecoder(f)
		if err != nil {
			log.Fatalf("failed to create mp3 decoder: %v", err)
		}
		// go-mp3 always emits 16-bit LE stereo at the stream's rate.
		src = decoder
		sampleRate = decoder.SampleRate()
		log.Printf("Decoding %s at %dHz", *mp3Path, sampleRate)

	case *rawPath != "":
		f, err := os.Open(*rawPath)
		if err != nil {
			log.Fatalf("open failed: %v", err)
		}
		defer f.Close()
		src = f
		log.Printf("Streaming %s as raw PCM at %dHz", *rawPath, sampleRate)
	}

	if err := pump(conn, src, sampleRate); err != nil {
		log.Fatalf("stream failed: %v", err)
	}
	log.Printf("Done")
}

// pump copies src to conn paced at the stream's real-time byte rate, so
// the bridge's buffer absorbs jitter instead of the whole file.
func pump(conn net.Conn, src io.Reader, sampleRate int) error {
	byteRate := sampleRate * channels * 2
	interval := time.Duration(chunkSize) * time.Second / time.Duration(byteRate)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	buf := make([]byte, chunkSize)
	for range ticker.C {
		n, err := io.ReadFull(src, buf)
		if n > 0 {
			if _, werr := conn.Write(buf[:n]); werr != nil {
				return fmt.Errorf("write failed: %w", werr)
			}
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read failed: %w", err)
		}
	}
	return nil
}

// findBridge browses mDNS for a running bridge.
func findBridge() (*discovery.BridgeInfo, error) {
	log.Printf("Browsing for a bridge...")
	disc := discovery.NewManager(discovery.Config{})
	disc.Browse()
	defer disc.Stop()

	select {
	case bridge := <-disc.Bridges():
		return bridge, nil
	case <-time.After(10 * time.Second):
		return nil, fmt.Errorf("no bridge found after 10 seconds")
	}
}
