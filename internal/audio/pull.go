// ABOUTME: Pull-side drain of the elastic buffer for the audio sink clock
// ABOUTME: Fills shortfalls with silence and always reports a full buffer
package audio

import (
	"sync/atomic"
	"time"
)

// DefaultPullWait bounds how long a single pull may wait for data. The
// pull runs on the sink's timing-critical path and must never stall
// audio output indefinitely.
const DefaultPullWait = 20 * time.Millisecond

// PullSource services the audio sink's periodic data requests from an
// elastic buffer. A request that cannot be fully satisfied within the
// wait bound is topped up with silence; the sink is always told its
// buffer was filled completely, as its contract requires.
type PullSource struct {
	buf  *ElasticBuffer
	wait time.Duration

	pulls     atomic.Int64
	underruns atomic.Int64
}

// NewPullSource creates a pull source over buf with the given wait bound.
func NewPullSource(buf *ElasticBuffer, wait time.Duration) *PullSource {
	return &PullSource{buf: buf, wait: wait}
}

// Fill drains up to len(dst) bytes into dst, zero-filling whatever the
// buffer could not supply in time, and reports len(dst) as consumed.
// A nil or empty dst is a no-op reporting 0.
func (s *PullSource) Fill(dst []byte) int {
	if len(dst) == 0 {
		return 0
	}
	s.pulls.Add(1)

	n := s.buf.ReadWait(dst, s.wait)
	if n < len(dst) {
		s.underruns.Add(1)
		for i := n; i < len(dst); i++ {
			dst[i] = 0
		}
	}
	return len(dst)
}

// Read implements io.Reader for pull-clock consumers. It never returns
// an error and never a short count; silence stands in for missing data.
func (s *PullSource) Read(p []byte) (int, error) {
	return s.Fill(p), nil
}

// Pulls returns the number of pull requests serviced.
func (s *PullSource) Pulls() int64 { return s.pulls.Load() }

// Underruns returns the number of pulls that needed silence fill.
func (s *PullSource) Underruns() int64 { return s.underruns.Load() }
