package registry

import "testing"

func TestRemoveString(t *testing.T) {
	in := []string{"a", "b", "c", "b"}
	got := removeString(in, "b")
	want := []string{"a", "c"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("removeString = %v, want %v", got, want)
		}
	}
}

func TestRemoveStringNotPresent(t *testing.T) {
	in := []string{"a", "b"}
	got := removeString(in, "z")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("removeString unexpectedly mutated: %v", got)
	}
}

func TestVidpidKeysAreDistinct(t *testing.T) {
	a := vidpid{vendor: 1, product: 2}
	b := vidpid{vendor: 2, product: 1}
	if a == b {
		t.Fatalf("distinct vendor/product pairs compared equal")
	}
}
