package keyboard

// State is a keyboard's mutable, persistable runtime state: per-LED colour
// split into chroma and value so that brightness-only updates can leave
// hue/saturation untouched, plus the mode-global color, brightness, effect
// and speed.
type State struct {
	Chroma []chromaEntry `json:"chroma"`
	Value  []uint8       `json:"value"`

	ColorHue uint8 `json:"colorHue"`
	ColorSat uint8 `json:"colorSat"`

	Brightness uint8 `json:"brightness"`
	Effect     uint8 `json:"effect"`
	Speed      uint8 `json:"speed"`
}

// chromaEntry is one (hue, saturation) pair, named for JSON persistence.
type chromaEntry struct {
	H uint8 `json:"h"`
	S uint8 `json:"s"`
}

func newState(count int) State {
	value := make([]uint8, count)
	for i := range value {
		value[i] = 255
	}
	return State{
		Chroma: make([]chromaEntry, count),
		Value:  value,
	}
}

// colors reconstructs the RGB view of the per-LED chroma/value split.
func (s *State) colors() []RGB {
	out := make([]RGB, len(s.Chroma))
	for i, ch := range s.Chroma {
		out[i] = hsvToRGB(chroma{H: ch.H, S: ch.S}, s.Value[i])
	}
	return out
}

// color reconstructs the mode-global color at full value, matching the
// device's own convention of not storing a separate brightness for it.
func (s *State) color() RGB {
	return hsvToRGB(chroma{H: s.ColorHue, S: s.ColorSat}, 255)
}
