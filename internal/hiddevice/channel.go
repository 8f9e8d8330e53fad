// Package hiddevice turns the half-duplex HID read/write pipe exposed by
// github.com/karalabe/hid into a request/response channel: a single reader
// goroutine multiplexes concurrent RequestReport callers onto the one input
// stream, matching replies to callers by response prefix.
package hiddevice

import (
	"context"
	"fmt"
	"sync"

	"github.com/karalabe/hid"

	"github.com/Azarattum/ColorHoster/internal/logging"
	"github.com/Azarattum/ColorHoster/internal/report"
)

// UsagePage and UsageID identify the QMK raw-HID interface a keyboard
// exposes its custom protocol on.
const (
	UsagePage = 0xFF60
	UsageID   = 0x61
)

// Info describes a HID device candidate before it is opened, enough to
// match it against a known (VID,PID) configuration.
type Info struct {
	Path      string
	VendorID  uint16
	ProductID uint16
}

// Enumerate lists connected devices that expose the QMK raw-HID usage page
// and usage id.
func Enumerate() ([]Info, error) {
	devices, err := hid.Enumerate(0, 0)
	if err != nil {
		return nil, fmt.Errorf("hiddevice: enumerate: %w", err)
	}

	out := make([]Info, 0, len(devices))
	for _, d := range devices {
		if d.UsagePage != UsagePage || d.Usage != UsageID {
			continue
		}
		out = append(out, Info{Path: d.Path, VendorID: d.VendorID, ProductID: d.ProductID})
	}
	return out, nil
}

type pendingRequest struct {
	prefix []byte
	result chan report.Report
}

// Channel owns one opened HID device and multiplexes concurrent
// RequestReport callers onto its single input stream.
type Channel struct {
	path string
	dev  hid.Device

	writeMu sync.Mutex

	register chan registration
	cancel   context.CancelFunc
	done     chan struct{}

	raw logging.RawLogger
}

// SetRawLogger attaches a raw-traffic logger; passing nil (the default)
// disables raw logging.
func (c *Channel) SetRawLogger(raw logging.RawLogger) {
	c.raw = raw
}

type registration struct {
	req *pendingRequest
	ack chan struct{}
}

// Open opens the HID device described by info and starts its reader
// goroutine. The returned Channel must be closed with Close when the
// keyboard it belongs to is destroyed.
func Open(info Info) (*Channel, error) {
	devices, err := hid.Enumerate(info.VendorID, info.ProductID)
	if err != nil {
		return nil, fmt.Errorf("hiddevice: enumerate %04x:%04x: %w", info.VendorID, info.ProductID, err)
	}

	var chosen *hid.DeviceInfo
	for i := range devices {
		if devices[i].Path == info.Path {
			chosen = &devices[i]
			break
		}
	}
	if chosen == nil {
		for i := range devices {
			if devices[i].UsagePage == UsagePage && devices[i].Usage == UsageID {
				chosen = &devices[i]
				break
			}
		}
	}
	if chosen == nil {
		return nil, fmt.Errorf("hiddevice: device %s (%04x:%04x) not found", info.Path, info.VendorID, info.ProductID)
	}

	dev, err := chosen.Open()
	if err != nil {
		return nil, fmt.Errorf("hiddevice: open %s: %w", info.Path, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Channel{
		path:     info.Path,
		dev:      dev,
		register: make(chan registration, 32),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go c.readLoop(ctx)
	return c, nil
}

// Close cancels the reader goroutine and closes the underlying HID handle.
// The channel is dead once closed; pending and later RequestReport calls
// return an error.
func (c *Channel) Close() error {
	c.cancel()
	<-c.done
	return c.dev.Close()
}

// SendReport writes r to the device. It is safe to call concurrently; writes
// are serialised by an internal lock.
func (c *Channel) SendReport(ctx context.Context, r report.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	raw := r.Raw()
	if c.raw != nil {
		c.raw.Log(true, raw[:])
	}
	if _, err := c.dev.Write(raw[:]); err != nil {
		return fmt.Errorf("hiddevice: write: %w", err)
	}
	return nil
}

// RequestReport installs a listener for the first inbound report whose
// leading prefixLen payload bytes equal r's, then writes r, then waits for
// that reply. The registration-acknowledgement round trip closes a race
// where the device could reply before the listener is installed.
func (c *Channel) RequestReport(ctx context.Context, r report.Report, prefixLen int) (report.Report, error) {
	prefix := append([]byte(nil), r.Payload(0, prefixLen)...)

	pending := &pendingRequest{prefix: prefix, result: make(chan report.Report, 1)}
	ack := make(chan struct{})

	select {
	case c.register <- registration{req: pending, ack: ack}:
	case <-ctx.Done():
		return report.Report{}, ctx.Err()
	case <-c.done:
		return report.Report{}, fmt.Errorf("hiddevice: channel %s closed", c.path)
	}

	select {
	case <-ack:
	case <-ctx.Done():
		return report.Report{}, ctx.Err()
	case <-c.done:
		return report.Report{}, fmt.Errorf("hiddevice: channel %s closed", c.path)
	}

	if err := c.SendReport(ctx, r); err != nil {
		return report.Report{}, err
	}

	select {
	case resp := <-pending.result:
		return resp, nil
	case <-ctx.Done():
		return report.Report{}, ctx.Err()
	case <-c.done:
		return report.Report{}, fmt.Errorf("hiddevice: channel %s closed", c.path)
	}
}

func (c *Channel) readLoop(ctx context.Context) {
	defer close(c.done)

	type readResult struct {
		raw [report.Size]byte
		n   int
		err error
	}
	reads := make(chan readResult, 1)
	startRead := func() {
		go func() {
			// karalabe/hid's Read returns unnumbered report data starting at
			// byte 0 (no report-ID byte), so it lands at buf[1:] to keep the
			// buffer's payload indexing aligned with what Report.Payload and
			// RequestReport's prefix already use.
			var buf [report.Size]byte
			n, err := c.dev.Read(buf[1:])
			reads <- readResult{raw: buf, n: n, err: err}
		}()
	}
	startRead()

	var pending []*pendingRequest

	for {
		select {
		case <-ctx.Done():
			return

		case reg := <-c.register:
			pending = append(pending, reg.req)
			close(reg.ack)

		case res := <-reads:
			if res.err != nil {
				return
			}
			payload := res.raw[1:]
			if c.raw != nil {
				c.raw.Log(false, res.raw[1:1+res.n])
			}
			remaining := pending[:0]
			for _, p := range pending {
				if len(payload) >= len(p.prefix) && bytesHasPrefix(payload, p.prefix) {
					p.result <- report.FromRaw(res.raw)
					continue
				}
				remaining = append(remaining, p)
			}
			pending = remaining
			startRead()
		}
	}
}

func bytesHasPrefix(data, prefix []byte) bool {
	if len(prefix) > len(data) {
		return false
	}
	for i, b := range prefix {
		if data[i] != b {
			return false
		}
	}
	return true
}
