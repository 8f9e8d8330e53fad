package via

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Parse turns raw VIA JSON bytes into a Config. JSON decoding errors are
// returned wrapped with a "via: parse" prefix; callers are expected to skip the offending file and continue,
// per the config-parse error-handling policy.
func Parse(data []byte) (*Config, error) {
	var doc keyboardJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("via: parse: %w", err)
	}

	cfg := &Config{
		Name:      doc.Name,
		VendorID:  parseHex16(doc.VendorID),
		ProductID: parseHex16(doc.ProductID),
		Matrix:    Matrix{Cols: doc.Matrix.Cols, Rows: doc.Matrix.Rows},
	}

	cfg.LEDs = extractLEDs(doc.Layouts.Keymap)

	options := flattenMenus(doc.Menus)

	cfg.Speed = findRange(options, "id_qmk_rgb_matrix_effect_speed")
	cfg.Brightness = findRange(options, "id_qmk_rgb_matrix_brightness")

	controls := collectControls(options)

	effects := findEffects(options)
	cfg.Effects = make([]Effect, 0, len(effects))
	for _, e := range effects {
		flags := computeFlags(controls, e.ID)
		cfg.Effects = append(cfg.Effects, Effect{Name: e.Name, ID: e.ID, Flags: flags})
	}

	return cfg, nil
}

func parseHex16(s string) uint16 {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 16)
	if err != nil {
		return 0
	}
	return uint16(v)
}

// extractLEDs flattens layouts.keymap and decodes each string entry,
// dropping malformed entries and group (array) entries, then sorts by LED
// index.
func extractLEDs(keymap [][]json.RawMessage) []LED {
	var leds []LED
	for _, row := range keymap {
		for _, raw := range row {
			var key string
			if err := json.Unmarshal(raw, &key); err != nil {
				continue // group entry, not a key string
			}
			led, ok := extractLED(key)
			if !ok {
				continue
			}
			leds = append(leds, led)
		}
	}
	for i := 1; i < len(leds); i++ {
		for j := i; j > 0 && leds[j-1].Index > leds[j].Index; j-- {
			leds[j-1], leds[j] = leds[j], leds[j-1]
		}
	}
	return leds
}

// extractLED decodes one VIA keymap key string: line 0 is "row,col", line
// 1 is "l<N>" (the LED index), and line 8, if present and starting with
// "e", marks the key as an encoder position to be skipped.
func extractLED(key string) (LED, bool) {
	lines := strings.Split(key, "\n")
	if len(lines) < 2 {
		return LED{}, false
	}

	pos := strings.Split(lines[0], ",")
	if len(pos) < 2 {
		return LED{}, false
	}
	row, err := strconv.ParseUint(strings.TrimSpace(pos[0]), 10, 8)
	if err != nil {
		return LED{}, false
	}
	col, err := strconv.ParseUint(strings.TrimSpace(pos[1]), 10, 8)
	if err != nil {
		return LED{}, false
	}

	ledLine := strings.TrimPrefix(lines[1], "l")
	if ledLine == lines[1] {
		return LED{}, false
	}
	index, err := strconv.ParseUint(ledLine, 10, 8)
	if err != nil {
		return LED{}, false
	}

	if len(lines) > 8 && strings.HasPrefix(lines[8], "e") {
		return LED{}, false
	}

	return LED{Index: byte(index), Row: byte(row), Col: byte(col)}, true
}

func flattenMenus(menus []menu) []menuOption {
	var out []menuOption
	for _, m := range menus {
		for _, c := range m.Content {
			out = append(out, c.Content...)
		}
	}
	return out
}

func contentFirstString(content []json.RawMessage) (string, bool) {
	if len(content) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(content[0], &s); err != nil {
		return "", false
	}
	return s, true
}

func findRange(options []menuOption, name string) Range {
	for _, o := range options {
		if o.Type != "range" {
			continue
		}
		if s, ok := contentFirstString(o.Content); !ok || s != name {
			continue
		}
		var bounds [2]uint32
		if err := json.Unmarshal(o.Options, &bounds); err != nil {
			continue
		}
		return Range{Min: bounds[0], Max: bounds[1]}
	}
	return Range{}
}

type effectOption struct {
	Name string
	ID   int32
}

func findEffects(options []menuOption) []effectOption {
	for _, o := range options {
		if o.Type != "dropdown" {
			continue
		}
		if s, ok := contentFirstString(o.Content); !ok || s != "id_qmk_rgb_matrix_effect" {
			continue
		}
		var raw [][2]json.RawMessage
		if err := json.Unmarshal(o.Options, &raw); err != nil {
			continue
		}
		out := make([]effectOption, 0, len(raw))
		for _, pair := range raw {
			var name string
			var id int32
			if json.Unmarshal(pair[0], &name) != nil || json.Unmarshal(pair[1], &id) != nil {
				continue
			}
			out = append(out, effectOption{Name: name, ID: id})
		}
		return out
	}
	return nil
}

type control struct {
	flag      uint32
	predicate string
}

// collectControls gathers the {flag, predicate} tuples driving per-effect
// capability flags: the speed and brightness ranges plus any color /
// color-palette option.
func collectControls(options []menuOption) []control {
	var controls []control
	for _, o := range options {
		switch o.Type {
		case "range":
			if s, ok := contentFirstString(o.Content); ok {
				switch s {
				case "id_qmk_rgb_matrix_effect_speed":
					controls = append(controls, control{flag: FlagHasSpeed, predicate: o.ShowIf})
				case "id_qmk_rgb_matrix_brightness":
					controls = append(controls, control{flag: FlagHasBrightness, predicate: o.ShowIf})
				}
			}
		case "color":
			controls = append(controls, control{flag: FlagHasModeSpecificColor, predicate: o.ShowIf})
		case "color-palette":
			controls = append(controls, control{flag: FlagHasPerLEDColor, predicate: o.ShowIf})
		}
	}
	return controls
}

func computeFlags(controls []control, effectID int32) uint32 {
	vars := map[string]int64{"id_qmk_rgb_matrix_effect": int64(effectID)}

	var flags uint32
	for _, c := range controls {
		if evalPredicate(c.predicate, vars) {
			flags |= c.flag
		}
	}

	if flags&(FlagHasPerLEDColor|FlagHasModeSpecificColor) == 0 && effectID != 0 {
		flags |= FlagHasRandomColor
	}
	if flags&(FlagHasSpeed|FlagHasModeSpecificColor) != 0 {
		flags |= FlagManualSave
	}

	return flags
}
