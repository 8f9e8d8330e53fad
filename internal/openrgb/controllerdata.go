package openrgb

import (
	"fmt"

	"github.com/Azarattum/ColorHoster/internal/keyboard"
	"github.com/Azarattum/ColorHoster/internal/via"
)

// buildControllerData assembles the bit-exact GetControllerData response
// body for one keyboard. serverVersion is the ProtocolVersion
// constant reported back to the client regardless of what it sent.
func buildControllerData(kb *keyboard.Keyboard, serverVersion uint32) []byte {
	cfg := kb.Config()
	colors := kb.Colors()
	keymap := kb.Keymap()
	idHex := deviceIDHex(kb.ID())

	b := NewBuffer(1024)
	b.AppendU32(0) // data_len placeholder, patched below

	b.AppendI32(DeviceTypeKeyboard)
	b.AppendStr(cfg.Name)
	b.AppendStr("Unknown")
	b.AppendStr(fmt.Sprintf("%s via ColorHoster", cfg.Name))
	b.AppendStr(fmt.Sprintf("%d", serverVersion))
	b.AppendStr(idHex)
	b.AppendStr(fmt.Sprintf("HID: %s", idHex))

	appendEffects(b, cfg, int32(kb.Effect()), kb.Speed(), kb.Brightness(), kb.Color())
	appendZone(b, cfg, keymap, colors)

	b.PatchU32(0, uint32(b.Len()))
	return b.Bytes()
}

func appendEffects(b *Buffer, cfg *via.Config, currentEffect int32, speed, brightness uint8, modeColor keyboard.RGB) {
	b.AppendU16(uint16(len(cfg.Effects)))
	b.AppendI32(currentEffect)

	for _, eff := range cfg.Effects {
		b.AppendStr(eff.Name)
		b.AppendI32(eff.ID)
		b.AppendU32(eff.Flags)

		b.AppendU32(cfg.Speed.Min)
		b.AppendU32(cfg.Speed.Max)
		b.AppendU32(cfg.Brightness.Min)
		b.AppendU32(cfg.Brightness.Max)

		b.AppendU32(1) // mode_colors
		b.AppendU32(1) // mode_colors
		b.AppendU32(uint32(speed))
		b.AppendU32(uint32(brightness))
		b.AppendU32(0) // direction

		b.AppendU32(colorMode(eff.Flags))
		b.AppendU16(1)
		b.AppendColor(modeColor.R, modeColor.G, modeColor.B)
	}
}

func colorMode(flags uint32) uint32 {
	switch {
	case flags&via.FlagHasPerLEDColor != 0:
		return 1
	case flags&via.FlagHasModeSpecificColor != 0:
		return 2
	case flags&via.FlagHasRandomColor != 0:
		return 3
	default:
		return 0
	}
}

func appendZone(b *Buffer, cfg *via.Config, keymap []uint16, colors []keyboard.RGB) {
	count := uint32(cfg.CountLEDs())
	cols, rows := cfg.Matrix.Cols, cfg.Matrix.Rows

	b.AppendU16(1) // zone_count
	b.AppendStr("Keyboard")
	b.AppendI32(ZoneTypeMatrix)
	b.AppendU32(count)
	b.AppendU32(count)
	b.AppendU32(count)

	b.AppendU16(uint16(cols*rows*4 + 8))
	b.AppendU32(rows)
	b.AppendU32(cols)

	grid := make([]uint32, rows*cols)
	for i := range grid {
		grid[i] = 0xFFFFFFFF
	}
	for _, led := range cfg.LEDs {
		idx := uint32(led.Row)*cols + uint32(led.Col)
		if idx < uint32(len(grid)) {
			grid[idx] = uint32(led.Index)
		}
	}
	for _, v := range grid {
		b.AppendU32(v)
	}

	b.AppendU16(uint16(count))
	for _, led := range cfg.LEDs {
		keycode := keycodeAt(led, cfg.Matrix, keymap)
		b.AppendStr(fmt.Sprintf("Key: %s", KeycodeName(keycode)))
		b.AppendU32(uint32(led.Index))
	}

	b.AppendU16(uint16(len(colors)))
	for _, c := range colors {
		b.AppendColor(c.R, c.G, c.B)
	}
}

func keycodeAt(led via.LED, matrix via.Matrix, keymap []uint16) uint16 {
	idx := int(led.Row)*int(matrix.Cols) + int(led.Col)
	if idx < 0 || idx >= len(keymap) {
		return 0
	}
	return keymap[idx]
}
