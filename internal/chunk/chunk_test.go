package chunk

import "testing"

func TestDiffExample(t *testing.T) {
	new := []int{4, 5, 7}
	reference := []int{4, 5, 6, 6, 8}

	got := Diff(new, reference, 2)

	want := []Changed[int]{{Offset: 2, Data: []int{7}}}
	assertEqualChanges(t, got, want)
}

func TestDiffSplit(t *testing.T) {
	new := []int{1, -1, 4, -2, 6, -3, 8}
	reference := []int{1, 3, 4, 5, 6, 6, 8}

	got := Diff(new, reference, 3)

	want := []Changed[int]{
		{Offset: 1, Data: []int{-1, 4, -2}},
		{Offset: 5, Data: []int{-3}},
	}
	assertEqualChanges(t, got, want)
}

func TestDiffNoDifferences(t *testing.T) {
	new := []int{1, 2, 3}
	reference := []int{1, 2, 3}

	got := Diff(new, reference, 4)
	if len(got) != 0 {
		t.Fatalf("expected no chunks, got %v", got)
	}
}

func TestDiffExactChunkBoundaries(t *testing.T) {
	new := []int{9, 9, 9, 9}
	reference := []int{0, 0, 0, 0}

	got := Diff(new, reference, 2)

	want := []Changed[int]{
		{Offset: 0, Data: []int{9, 9}},
		{Offset: 2, Data: []int{9, 9}},
	}
	assertEqualChanges(t, got, want)
}

func TestDiffOverlayReproducesNew(t *testing.T) {
	new := []int{1, -1, 4, -2, 6, -3, 8}
	reference := []int{1, 3, 4, 5, 6, 6, 8}

	image := make([]int, len(reference))
	copy(image, reference)
	for _, c := range Diff(new, reference, 3) {
		copy(image[c.Offset:], c.Data)
	}

	for i := range new {
		if new[i] != reference[i] && image[i] != new[i] {
			t.Fatalf("index %d: overlay = %d, want %d", i, image[i], new[i])
		}
	}
}

func assertEqualChanges(t *testing.T, got, want []Changed[int]) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d chunks %v, want %d chunks %v", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i].Offset != want[i].Offset {
			t.Fatalf("chunk %d: offset = %d, want %d", i, got[i].Offset, want[i].Offset)
		}
		if len(got[i].Data) != len(want[i].Data) {
			t.Fatalf("chunk %d: data = %v, want %v", i, got[i].Data, want[i].Data)
		}
		for j := range got[i].Data {
			if got[i].Data[j] != want[i].Data[j] {
				t.Fatalf("chunk %d: data = %v, want %v", i, got[i].Data, want[i].Data)
			}
		}
	}
}
