package logging

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger records raw binary traffic as hex-dumped lines, for diagnosing
// HID report exchanges or the OpenRGB wire without re-running under a
// packet capture tool.
type RawLogger interface {
	Log(toDevice bool, data []byte)
}

type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw returns a RawLogger writing to w. A nil w yields a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

func (r *rawLogger) Log(toDevice bool, data []byte) {
	if r.w == nil || len(data) == 0 {
		return
	}

	dir := "device->host"
	if toDevice {
		dir = "host->device"
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

	line := fmt.Sprintf("%s %s %d bytes: %s\n",
		time.Now().Format("2006/01/02 15:04:05"), dir, len(data), hexbuf.String())

	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}
