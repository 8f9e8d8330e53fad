package via

import "testing"

const sampleJSON = `{
  "name": "Test Board",
  "vendorId": "0x1234",
  "productId": "0x5678",
  "matrix": {"rows": 2, "cols": 2},
  "menus": [
    {
      "content": [
        {
          "content": [
            {"type": "range", "content": ["id_qmk_rgb_matrix_effect_speed"], "options": [0, 255]},
            {"type": "range", "content": ["id_qmk_rgb_matrix_brightness"], "options": [0, 255]},
            {"type": "dropdown", "content": ["id_qmk_rgb_matrix_effect"], "options": [["Off", 0], ["Solid", 1], ["Wave", 2]]},
            {"type": "color-palette", "content": ["id_qmk_rgb_matrix_color"], "showIf": "{id_qmk_rgb_matrix_effect} == 2"}
          ]
        }
      ]
    }
  ],
  "layouts": {
    "keymap": [
      ["0,0\nl0", "0,1\nl1", "1,0\nl2\n\n\n\n\n\n\ne1", "1,1\nl3"]
    ]
  }
}`

func TestParseBasicFields(t *testing.T) {
	cfg, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Name != "Test Board" {
		t.Fatalf("Name = %q", cfg.Name)
	}
	if cfg.VendorID != 0x1234 || cfg.ProductID != 0x5678 {
		t.Fatalf("ids = %04x:%04x", cfg.VendorID, cfg.ProductID)
	}
}

func TestParseLEDsSkipsEncoder(t *testing.T) {
	cfg, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// l2 is an encoder key (line 8 starts with "e") and must be dropped.
	if len(cfg.LEDs) != 3 {
		t.Fatalf("len(LEDs) = %d, want 3: %+v", len(cfg.LEDs), cfg.LEDs)
	}
	for _, led := range cfg.LEDs {
		if led.Index == 2 {
			t.Fatalf("encoder LED 2 should have been skipped")
		}
	}
}

func TestParseSpeedAndBrightness(t *testing.T) {
	cfg, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Speed != (Range{0, 255}) {
		t.Fatalf("Speed = %+v", cfg.Speed)
	}
	if cfg.Brightness != (Range{0, 255}) {
		t.Fatalf("Brightness = %+v", cfg.Brightness)
	}
}

func TestParseEffectFlags(t *testing.T) {
	cfg, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.Effects) != 3 {
		t.Fatalf("len(Effects) = %d", len(cfg.Effects))
	}

	off := cfg.Effects[0]
	if off.ID != 0 {
		t.Fatalf("effect 0 id = %d", off.ID)
	}
	// Effect id 0 ("Off") never gets the synthetic random-color flag,
	// even though it has neither per-led nor mode-specific color.
	if off.Flags&FlagHasRandomColor != 0 {
		t.Fatalf("effect 0 should not have random color flag: %#x", off.Flags)
	}
	if off.Flags&FlagHasSpeed == 0 || off.Flags&FlagHasBrightness == 0 {
		t.Fatalf("effect 0 should have speed+brightness (no showIf restricts them): %#x", off.Flags)
	}

	solid := cfg.Effects[1]
	if solid.Flags&FlagHasPerLEDColor != 0 {
		t.Fatalf("solid (id 1) should not satisfy the color-palette's showIf: %#x", solid.Flags)
	}
	if solid.Flags&FlagHasRandomColor == 0 {
		t.Fatalf("solid should get the synthetic random-color flag: %#x", solid.Flags)
	}

	wave := cfg.Effects[2]
	if wave.Flags&FlagHasPerLEDColor == 0 {
		t.Fatalf("wave (id 2) should satisfy the color-palette's showIf: %#x", wave.Flags)
	}
	if wave.Flags&FlagHasRandomColor != 0 {
		t.Fatalf("wave has per-led color, should not get random color flag: %#x", wave.Flags)
	}
}

func TestCountLEDs(t *testing.T) {
	cfg := &Config{LEDs: []LED{{Index: 0}, {Index: 3}, {Index: 1}}}
	if got := cfg.CountLEDs(); got != 4 {
		t.Fatalf("CountLEDs() = %d, want 4", got)
	}
	empty := &Config{}
	if got := empty.CountLEDs(); got != 0 {
		t.Fatalf("CountLEDs() on empty = %d, want 0", got)
	}
}

func TestParseHex16(t *testing.T) {
	cases := map[string]uint16{
		"0x1234": 0x1234,
		"1234":   0x1234,
		"":       0,
		"zzzz":   0,
	}
	for in, want := range cases {
		if got := parseHex16(in); got != want {
			t.Fatalf("parseHex16(%q) = %#x, want %#x", in, got, want)
		}
	}
}
