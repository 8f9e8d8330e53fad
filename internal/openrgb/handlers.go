package openrgb

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/Azarattum/ColorHoster/internal/keyboard"
	"github.com/Azarattum/ColorHoster/internal/profiles"
	"github.com/Azarattum/ColorHoster/internal/via"
)

// connState holds the per-connection mutable bits a handler may need:
// currently just the name the client announced itself under.
type connState struct {
	clientName string
}

// dispatch routes one decoded frame to its handler. A non-nil error
// terminates the connection per the framing invariant; handlers that only
// log and continue return nil even when the underlying operation failed.
func (s *Server) dispatch(f *frame, conn *responder, state *connState, logger *slog.Logger) error {
	switch f.RequestID {
	case RequestGetProtocolVersion:
		return s.handleGetProtocolVersion(f, conn)
	case RequestGetControllerCount:
		return s.handleGetControllerCount(f, conn)
	case RequestSetClientName:
		state.clientName = string(f.Payload)
		logger.Info("client identified", "name", state.clientName)
		return nil
	}

	kb, ok := s.registry.At(int(f.DeviceIndex))
	if !ok {
		return fmt.Errorf("openrgb: device index %d out of range", f.DeviceIndex)
	}

	switch f.RequestID {
	case RequestGetControllerData:
		return s.handleGetControllerData(f, conn, kb)
	case RequestUpdateSingleLed:
		return handleUpdateSingleLed(f, kb)
	case RequestUpdateLeds:
		return handleUpdateLeds(f, kb, false)
	case RequestUpdateZoneLeds:
		return handleUpdateLeds(f, kb, true)
	case RequestUpdateMode:
		return handleUpdateMode(f, kb, false)
	case RequestSaveMode:
		return handleUpdateMode(f, kb, true)
	case RequestSetCustomMode:
		return handleSetCustomMode(kb)
	case RequestResizeZone:
		return nil // keyboards do not support resizing; parameters are discarded.
	case RequestGetProfileList:
		return s.handleGetProfileList(f, conn)
	case RequestSaveProfile:
		return s.handleSaveProfile(f, kb)
	case RequestLoadProfile:
		return s.handleLoadProfile(f, kb)
	case RequestDeleteProfile:
		return s.handleDeleteProfile(f, logger)
	}

	return fmt.Errorf("openrgb: unknown request id %d", f.RequestID)
}

func (s *Server) handleGetProtocolVersion(f *frame, conn *responder) error {
	b := NewBuffer(4)
	b.AppendU32(ProtocolVersion)
	return conn.reply(f.RequestID, b.Bytes())
}

func (s *Server) handleGetControllerCount(f *frame, conn *responder) error {
	b := NewBuffer(4)
	b.AppendU32(uint32(s.registry.Count()))
	return conn.reply(f.RequestID, b.Bytes())
}

func (s *Server) handleGetControllerData(f *frame, conn *responder, kb *keyboard.Keyboard) error {
	data := buildControllerData(kb, ProtocolVersion)
	return conn.reply(f.RequestID, data)
}

func handleUpdateSingleLed(f *frame, kb *keyboard.Keyboard) error {
	if len(f.Payload) < 8 {
		return fmt.Errorf("openrgb: update_single_led: short payload")
	}
	ledIndex := binary.LittleEndian.Uint32(f.Payload[0:4])
	c := keyboard.RGB{R: f.Payload[4], G: f.Payload[5], B: f.Payload[6]}
	kb.UpdateColors([]*keyboard.RGB{&c}, int(ledIndex), false)
	return nil
}

func handleUpdateLeds(f *frame, kb *keyboard.Keyboard, hasZone bool) error {
	payload := f.Payload
	off := 4 // data_len
	if hasZone {
		off += 4 // zone id, unused: keyboards have exactly one zone
	}
	if len(payload) < off+2 {
		return fmt.Errorf("openrgb: update_leds: short payload")
	}
	count := binary.LittleEndian.Uint16(payload[off : off+2])
	off += 2

	colors := make([]*keyboard.RGB, count)
	for i := 0; i < int(count); i++ {
		if off+4 > len(payload) {
			return fmt.Errorf("openrgb: update_leds: truncated color list")
		}
		c := keyboard.RGB{R: payload[off], G: payload[off+1], B: payload[off+2]}
		colors[i] = &c
		off += 4
	}
	kb.UpdateColors(colors, 0, false)
	return nil
}

func handleUpdateMode(f *frame, kb *keyboard.Keyboard, persist bool) error {
	payload := f.Payload
	if len(payload) < 10 {
		return fmt.Errorf("openrgb: update_mode: short payload")
	}
	effect := int32(binary.LittleEndian.Uint32(payload[4:8]))
	nameLen := int(binary.LittleEndian.Uint16(payload[8:10]))
	rest := payload[10:]

	if len(rest) < nameLen+54 {
		return fmt.Errorf("openrgb: update_mode: short mode body")
	}
	speed := binary.LittleEndian.Uint32(rest[nameLen+32 : nameLen+36])
	brightness := binary.LittleEndian.Uint32(rest[nameLen+36 : nameLen+40])
	colorCount := binary.LittleEndian.Uint16(rest[nameLen+48 : nameLen+50])

	kb.UpdateEffect(uint8(effect))
	kb.UpdateSpeed(uint8(speed))
	kb.UpdateBrightness(uint8(brightness))
	if colorCount > 0 {
		c := keyboard.RGB{R: rest[nameLen+50], G: rest[nameLen+51], B: rest[nameLen+52]}
		kb.UpdateColor(c)
	}
	if persist {
		kb.PersistState()
	}
	return nil
}

func handleSetCustomMode(kb *keyboard.Keyboard) error {
	for _, eff := range kb.Config().Effects {
		if eff.Flags&via.FlagHasPerLEDColor != 0 {
			kb.UpdateEffect(uint8(eff.ID))
			return nil
		}
	}
	return nil
}

func (s *Server) handleGetProfileList(f *frame, conn *responder) error {
	names, err := profiles.List(s.profilesDir)
	if err != nil {
		return fmt.Errorf("openrgb: get_profile_list: %w", err)
	}
	b := NewBuffer(64)
	b.AppendU32(0) // data_len placeholder, patched below
	b.AppendU16(uint16(len(names)))
	for _, n := range names {
		b.AppendStr(n)
	}
	b.PatchU32(0, uint32(b.Len()))
	return conn.reply(f.RequestID, b.Bytes())
}

func (s *Server) handleSaveProfile(f *frame, kb *keyboard.Keyboard) error {
	name := profileName(f.Payload)
	text, err := kb.SaveState()
	if err != nil {
		return fmt.Errorf("openrgb: save_profile: %w", err)
	}
	return profiles.Save(s.profilesDir, name, text)
}

func (s *Server) handleLoadProfile(f *frame, kb *keyboard.Keyboard) error {
	name := profileName(f.Payload)
	text, err := profiles.Load(s.profilesDir, name)
	if err != nil {
		return fmt.Errorf("openrgb: load_profile: %w", err)
	}
	kb.LoadState(text, true)
	return nil
}

func (s *Server) handleDeleteProfile(f *frame, logger *slog.Logger) error {
	name := profileName(f.Payload)
	if err := profiles.Delete(s.profilesDir, name); err != nil {
		logger.Warn("delete profile failed", "name", name, "error", err)
	}
	return nil
}

func profileName(payload []byte) string {
	for i, b := range payload {
		if b == 0 {
			return string(payload[:i])
		}
	}
	return string(payload)
}
