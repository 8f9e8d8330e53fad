package keyboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Azarattum/ColorHoster/internal/hiddevice"
	"github.com/Azarattum/ColorHoster/internal/report"
)

// loadColors reads back the device's full per-LED chroma and value arrays
// using the MATRIX_CHROMA and MATRIX_BRIGHTNESS get subcommands, issuing
// one request per chunk the device's report size can carry.
func loadColors(ctx context.Context, ch *hiddevice.Channel, count int) ([]chromaEntry, []uint8, error) {
	chromaOut := make([]chromaEntry, count)
	valueOut := make([]uint8, count)
	if count == 0 {
		return chromaOut, valueOut, nil
	}

	chromaChunkSize := (payloadLen - 5) / 2
	brightnessChunkSize := payloadLen - 5

	g, gctx := errgroup.WithContext(ctx)

	for off := 0; off < count; off += chromaChunkSize {
		off := off
		n := min(chromaChunkSize, count-off)
		g.Go(func() error {
			req := newHeaderReport(qmkCustomGetCommand, qmkCustomChannel, qmkCommandMatrixChroma, byte(off), byte(n))
			resp, err := ch.RequestReport(gctx, req, 5)
			if err != nil {
				return fmt.Errorf("request chroma: %w", err)
			}
			for i := 0; i < n; i++ {
				chromaOut[off+i] = chromaEntry{H: resp.Get(5 + i*2), S: resp.Get(5 + i*2 + 1)}
			}
			return nil
		})
	}

	for off := 0; off < count; off += brightnessChunkSize {
		off := off
		n := min(brightnessChunkSize, count-off)
		g.Go(func() error {
			req := newHeaderReport(qmkCustomGetCommand, qmkCustomChannel, qmkCommandMatrixBrightness, byte(off), byte(n))
			resp, err := ch.RequestReport(gctx, req, 5)
			if err != nil {
				return fmt.Errorf("request brightness: %w", err)
			}
			copy(valueOut[off:off+n], resp.Payload(5, 5+n))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return chromaOut, valueOut, nil
}

func loadColor(ctx context.Context, ch *hiddevice.Channel) (hue, sat uint8, err error) {
	req := newHeaderReport(qmkCustomGetCommand, qmkRGBMatrixChannel, qmkCommandColor)
	resp, err := ch.RequestReport(ctx, req, 3)
	if err != nil {
		return 0, 0, fmt.Errorf("request color: %w", err)
	}
	return resp.Get(3), resp.Get(4), nil
}

func loadRGBMatrixValue(ctx context.Context, ch *hiddevice.Channel, subcmd uint8) (uint8, error) {
	req := newHeaderReport(qmkCustomGetCommand, qmkRGBMatrixChannel, subcmd)
	resp, err := ch.RequestReport(ctx, req, 3)
	if err != nil {
		return 0, fmt.Errorf("request rgb matrix value: %w", err)
	}
	return resp.Get(3), nil
}

// loadKeymap reads back the device's full keymap (rows*cols scancodes)
// using the KEYMAP_GET command, whose offset and count are counted in
// bytes (two bytes per scancode).
func loadKeymap(ctx context.Context, ch *hiddevice.Channel, keyCount int) ([]uint16, error) {
	keymap := make([]uint16, keyCount)
	if keyCount == 0 {
		return keymap, nil
	}

	var zero report.Report
	chunkSize := zero.Len() - 4
	totalBytes := keyCount * 2

	g, gctx := errgroup.WithContext(ctx)

	for off := 0; off < totalBytes; off += chunkSize {
		off := off
		n := min(chunkSize, totalBytes-off)
		g.Go(func() error {
			var req report.Report
			req.Set(0, qmkKeymapGetCommand)
			req.SetBytes(1, []byte{byte(off >> 8), byte(off)})
			req.Set(3, byte(n))

			resp, err := ch.RequestReport(gctx, req, 4)
			if err != nil {
				return fmt.Errorf("request keymap: %w", err)
			}

			scancodeOffset := off / 2
			scancodeCount := n / 2
			for i := 0; i < scancodeCount; i++ {
				hi := resp.Get(4 + i*2)
				lo := resp.Get(4 + i*2 + 1)
				keymap[scancodeOffset+i] = uint16(hi)<<8 | uint16(lo)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return keymap, nil
}
