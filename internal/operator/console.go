// ABOUTME: Line-buffered operator input for the setup sequence
// ABOUTME: Reads until CR/LF or buffer exhaustion, 63 usable characters
package operator

import (
	"bufio"
	"fmt"
	"io"
)

// maxInput bounds a single line of operator input, terminator excluded.
const maxInput = 63

// Console prompts the operator and reads line input during setup. No
// validation happens here beyond the length bound; selection range
// checks belong to the orchestrator.
type Console struct {
	r *bufio.Reader
	w io.Writer
}

// NewConsole creates a console over the given reader and writer.
func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{r: bufio.NewReader(r), w: w}
}

// Prompt writes a formatted message to the operator.
func (c *Console) Prompt(format string, args ...interface{}) {
	fmt.Fprintf(c.w, format, args...)
}

// ReadLine reads one line of input, stopping at CR, LF or after maxInput
// characters. Returns an empty string once the input source is drained.
func (c *Console) ReadLine() string {
	buf := make([]byte, 0, maxInput)
	for len(buf) < maxInput {
		b, err := c.r.ReadByte()
		if err != nil {
			break
		}
		if b == '\n' || b == '\r' {
			break
		}
		buf = append(buf, b)
	}
	return string(buf)
}
