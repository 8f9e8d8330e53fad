// Package keyboard implements the controller that owns a single physical
// keyboard's RGB state (C5) and the actor that serialises mutations to it
// through a coalescing action queue (C6).
package keyboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Azarattum/ColorHoster/internal/chunk"
	"github.com/Azarattum/ColorHoster/internal/hiddevice"
	"github.com/Azarattum/ColorHoster/internal/report"
	"github.com/Azarattum/ColorHoster/internal/via"
)

// payloadLen is the number of addressable payload bytes in one report,
// matching report.Report's shifted indexing.
var payloadLen = func() int {
	var r report.Report
	return r.Len()
}()

// Controller owns one physical keyboard: its static Config, keymap, HID
// channel, and mutable State. It has no internal locking of its own beyond
// the state mutex guarding reads against concurrent writes; serialising
// writes is the actor's (C6) job.
type Controller struct {
	id      string
	cfg     *via.Config
	keymap  []uint16
	channel *hiddevice.Channel

	mu    sync.RWMutex
	state State
}

// NewController opens the device's keymap and RGB state by issuing six
// concurrent readbacks. Failure of any aborts construction. id is the
// device's stable identifier (its HID path), used for display and as the
// OpenRGB serial/location strings.
func NewController(ctx context.Context, id string, cfg *via.Config, channel *hiddevice.Channel) (*Controller, error) {
	count := cfg.CountLEDs()
	state := newState(count)

	g, gctx := errgroup.WithContext(ctx)

	var keymap []uint16
	g.Go(func() error {
		km, err := loadKeymap(gctx, channel, int(cfg.Matrix.Cols*cfg.Matrix.Rows))
		if err != nil {
			return fmt.Errorf("load keymap: %w", err)
		}
		keymap = km
		return nil
	})
	g.Go(func() error {
		chromaVals, valueVals, err := loadColors(gctx, channel, count)
		if err != nil {
			return fmt.Errorf("load colors: %w", err)
		}
		state.Chroma = chromaVals
		state.Value = valueVals
		return nil
	})
	g.Go(func() error {
		h, s, err := loadColor(gctx, channel)
		if err != nil {
			return fmt.Errorf("load color: %w", err)
		}
		state.ColorHue, state.ColorSat = h, s
		return nil
	})
	g.Go(func() error {
		v, err := loadRGBMatrixValue(gctx, channel, qmkCommandEffect)
		if err != nil {
			return fmt.Errorf("load effect: %w", err)
		}
		state.Effect = v
		return nil
	})
	g.Go(func() error {
		v, err := loadRGBMatrixValue(gctx, channel, qmkCommandSpeed)
		if err != nil {
			return fmt.Errorf("load speed: %w", err)
		}
		state.Speed = v
		return nil
	})
	g.Go(func() error {
		v, err := loadRGBMatrixValue(gctx, channel, qmkCommandBrightness)
		if err != nil {
			return fmt.Errorf("load brightness: %w", err)
		}
		state.Brightness = v
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Controller{id: id, cfg: cfg, keymap: keymap, channel: channel, state: state}, nil
}

// ID returns the device's stable identifier.
func (c *Controller) ID() string {
	return c.id
}

// Config returns the controller's static device description.
func (c *Controller) Config() *via.Config {
	return c.cfg
}

// Keymap returns the device's current scancode assignment, one entry per
// matrix position (rows*cols).
func (c *Controller) Keymap() []uint16 {
	return c.keymap
}

// Colors returns a snapshot of the per-LED RGB colors reconstructed from
// the chroma/value split.
func (c *Controller) Colors() []RGB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.colors()
}

// Color returns the mode-global colour.
func (c *Controller) Color() RGB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.color()
}

// Effect returns the currently active effect id.
func (c *Controller) Effect() uint8 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Effect
}

// Speed returns the currently active effect speed.
func (c *Controller) Speed() uint8 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Speed
}

// Brightness returns the currently active brightness.
func (c *Controller) Brightness() uint8 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Brightness
}

// UpdateColors pushes a new frame of per-LED colors starting at offset,
// sending only the minimal set of differential reports needed to bring the
// device's chroma (and, if withBrightness, value) state in line with it.
func (c *Controller) UpdateColors(ctx context.Context, colors []RGB, offset int, withBrightness bool) error {
	c.mu.Lock()
	if offset+len(colors) > len(c.state.Chroma) {
		c.mu.Unlock()
		return fmt.Errorf("keyboard: update_colors: offset %d + %d exceeds %d LEDs", offset, len(colors), len(c.state.Chroma))
	}

	newChroma := make([]chromaEntry, len(colors))
	newValue := make([]uint8, len(colors))
	for i, rgb := range colors {
		ch, v := rgbToHSV(rgb)
		newChroma[i] = chromaEntry{H: ch.H, S: ch.S}
		newValue[i] = v
	}

	chromaChunkSize := (payloadLen - 5) / 2
	chromaChanges := chunk.Diff(newChroma, c.state.Chroma[offset:], chromaChunkSize)

	var brightnessChanges []chunk.Changed[uint8]
	if withBrightness {
		brightnessChunkSize := payloadLen - 5
		brightnessChanges = chunk.Diff(newValue, c.state.Value[offset:], brightnessChunkSize)
	}

	copy(c.state.Chroma[offset:offset+len(newChroma)], newChroma)
	if withBrightness {
		copy(c.state.Value[offset:offset+len(newValue)], newValue)
	}
	c.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for _, ch := range chromaChanges {
		ch := ch
		g.Go(func() error {
			r := newHeaderReport(qmkCustomSetCommand, qmkCustomChannel, qmkCommandMatrixChroma,
				byte(ch.Offset+offset), byte(len(ch.Data)))
			for i, pair := range ch.Data {
				r.Set(5+i*2, pair.H)
				r.Set(5+i*2+1, pair.S)
			}
			return c.channel.SendReport(gctx, r)
		})
	}
	for _, ch := range brightnessChanges {
		ch := ch
		g.Go(func() error {
			r := newHeaderReport(qmkCustomSetCommand, qmkCustomChannel, qmkCommandMatrixBrightness,
				byte(ch.Offset+offset), byte(len(ch.Data)))
			r.SetBytes(5, ch.Data)
			return c.channel.SendReport(gctx, r)
		})
	}
	return g.Wait()
}

// UpdateColor sets the mode-global colour, skipping the write if it is
// already current.
func (c *Controller) UpdateColor(ctx context.Context, color RGB) error {
	ch, _ := rgbToHSV(color)

	c.mu.Lock()
	if ch.H == c.state.ColorHue && ch.S == c.state.ColorSat {
		c.mu.Unlock()
		return nil
	}
	c.state.ColorHue, c.state.ColorSat = ch.H, ch.S
	c.mu.Unlock()

	r := newHeaderReport(qmkCustomSetCommand, qmkRGBMatrixChannel, qmkCommandColor, ch.H, ch.S)
	return c.channel.SendReport(ctx, r)
}

// UpdateEffect sets the active effect, skipping the write if unchanged.
func (c *Controller) UpdateEffect(ctx context.Context, effect uint8) error {
	return c.updateRGBMatrixValue(ctx, qmkCommandEffect, effect, &c.state.Effect)
}

// UpdateSpeed sets the active effect speed, skipping the write if
// unchanged.
func (c *Controller) UpdateSpeed(ctx context.Context, speed uint8) error {
	return c.updateRGBMatrixValue(ctx, qmkCommandSpeed, speed, &c.state.Speed)
}

// UpdateBrightness sets the global brightness, skipping the write if
// unchanged.
func (c *Controller) UpdateBrightness(ctx context.Context, brightness uint8) error {
	return c.updateRGBMatrixValue(ctx, qmkCommandBrightness, brightness, &c.state.Brightness)
}

func (c *Controller) updateRGBMatrixValue(ctx context.Context, subcmd uint8, value uint8, field *uint8) error {
	c.mu.Lock()
	if *field == value {
		c.mu.Unlock()
		return nil
	}
	*field = value
	c.mu.Unlock()

	r := newHeaderReport(qmkCustomSetCommand, qmkRGBMatrixChannel, subcmd, value)
	return c.channel.SendReport(ctx, r)
}

// ResetBrightness pushes an all-0xFF value frame against the current state,
// best effort: failures are ignored since this only runs opportunistically
// at startup.
func (c *Controller) ResetBrightness(ctx context.Context) {
	c.mu.Lock()
	full := make([]uint8, len(c.state.Value))
	for i := range full {
		full[i] = 255
	}
	changes := chunk.Diff(full, c.state.Value, payloadLen-5)
	copy(c.state.Value, full)
	c.mu.Unlock()

	for _, ch := range changes {
		r := newHeaderReport(qmkCustomSetCommand, qmkCustomChannel, qmkCommandMatrixBrightness,
			byte(ch.Offset), byte(len(ch.Data)))
		r.SetBytes(5, ch.Data)
		_ = c.channel.SendReport(ctx, r)
	}
}

// PersistState tells the device to save its RGB matrix configuration to
// non-volatile storage.
func (c *Controller) PersistState(ctx context.Context) error {
	r := newHeaderReport(qmkSaveCommand, qmkRGBMatrixChannel)
	return c.channel.SendReport(ctx, r)
}

// SaveState serialises the current state as human-readable JSON.
func (c *Controller) SaveState() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, err := json.MarshalIndent(c.state, "", "  ")
	if err != nil {
		return "", fmt.Errorf("keyboard: save_state: %w", err)
	}
	return string(data), nil
}

// LoadState deserialises text and applies it to the device via the same
// update paths a live client would use, in the order colours, colour,
// effect, speed, brightness.
func (c *Controller) LoadState(ctx context.Context, text string, withBrightness bool) error {
	var s State
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return fmt.Errorf("keyboard: load_state: %w", err)
	}

	colors := s.colors()
	if err := c.UpdateColors(ctx, colors, 0, withBrightness); err != nil {
		return err
	}
	if err := c.UpdateColor(ctx, s.color()); err != nil {
		return err
	}
	if err := c.UpdateEffect(ctx, s.Effect); err != nil {
		return err
	}
	if err := c.UpdateSpeed(ctx, s.Speed); err != nil {
		return err
	}
	if err := c.UpdateBrightness(ctx, s.Brightness); err != nil {
		return err
	}
	return nil
}

func newHeaderReport(header ...byte) report.Report {
	var r report.Report
	for i, b := range header {
		r.Set(i, b)
	}
	return r
}
