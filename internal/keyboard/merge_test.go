package keyboard

import "testing"

func rgbPtr(r, g, b uint8) *RGB {
	c := RGB{R: r, G: g, B: b}
	return &c
}

func assertColors(t *testing.T, got []*RGB, want []*RGB) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range got {
		switch {
		case want[i] == nil && got[i] != nil:
			t.Fatalf("index %d: got %v, want nil", i, got[i])
		case want[i] != nil && got[i] == nil:
			t.Fatalf("index %d: got nil, want %v", i, want[i])
		case want[i] != nil && *got[i] != *want[i]:
			t.Fatalf("index %d: got %v, want %v", i, *got[i], *want[i])
		}
	}
}

func TestMergeColorsWithGap(t *testing.T) {
	red := rgbPtr(255, 0, 0)
	blue := rgbPtr(0, 0, 255)

	colors, offset := mergeColors([]*RGB{red, red, red}, 2, []*RGB{blue, blue, blue}, 7)
	assertColors(t, colors, []*RGB{red, red, red, nil, nil, blue, blue, blue})
	if offset != 2 {
		t.Fatalf("offset = %d, want 2", offset)
	}
}

func TestMergeColorsWithOverlapNewerWins(t *testing.T) {
	red := rgbPtr(255, 0, 0)
	blue := rgbPtr(0, 0, 255)

	colors, offset := mergeColors([]*RGB{red, red, red}, 2, []*RGB{blue, blue, blue}, 4)
	assertColors(t, colors, []*RGB{red, red, blue, blue, blue})
	if offset != 2 {
		t.Fatalf("offset = %d, want 2", offset)
	}
}

func TestMergeColorsNonOverlapping(t *testing.T) {
	red := rgbPtr(255, 0, 0)
	blue := rgbPtr(0, 0, 255)

	colors, offset := mergeColors([]*RGB{red, red, red}, 2, []*RGB{blue, blue, blue}, 5)
	assertColors(t, colors, []*RGB{red, red, red, blue, blue, blue})
	if offset != 2 {
		t.Fatalf("offset = %d, want 2", offset)
	}
}

func TestMergeColorsFullOverwrite(t *testing.T) {
	red := rgbPtr(255, 0, 0)
	blue := rgbPtr(0, 0, 255)

	colors, offset := mergeColors([]*RGB{red, red, red}, 2, []*RGB{blue, blue, blue}, 2)
	assertColors(t, colors, []*RGB{blue, blue, blue})
	if offset != 2 {
		t.Fatalf("offset = %d, want 2", offset)
	}
}
