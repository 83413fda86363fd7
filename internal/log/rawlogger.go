package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger records raw bus transactions.
type RawLogger interface {
	// Log records one transfer with the device at addr. read is true for
	// bytes received from the device.
	Log(addr uint8, read bool, data []byte)
}

type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw returns a RawLogger writing one line per transfer to w. A nil w
// discards everything.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

func (r *rawLogger) Log(addr uint8, read bool, data []byte) {
	if r.w == nil || len(data) == 0 {
		return
	}

	dir := "W"
	if read {
		dir = "R"
	}

	var hexbuf bytes.Buffer
	const hexdigits = "0123456789abcdef"
	for i, b := range data {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(hexdigits[b>>4])
		hexbuf.WriteByte(hexdigits[b&0x0f])
	}

	line := fmt.Sprintf("%s 0x%02x %s %d bytes, hex: %s\n",
		time.Now().Format("2006/01/02 15:04:05.000"),
		addr,
		dir,
		len(data),
		hexbuf.String())

	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}
