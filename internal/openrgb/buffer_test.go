package openrgb

import "testing"

func TestBufferAppendStr(t *testing.T) {
	b := NewBuffer(16)
	b.AppendStr("hi")
	want := []byte{3, 0, 'h', 'i', 0}
	if !bytesEqual(b.Bytes(), want) {
		t.Fatalf("got %v, want %v", b.Bytes(), want)
	}
}

func TestBufferAppendColor(t *testing.T) {
	b := NewBuffer(4)
	b.AppendColor(1, 2, 3)
	want := []byte{1, 2, 3, 0}
	if !bytesEqual(b.Bytes(), want) {
		t.Fatalf("got %v, want %v", b.Bytes(), want)
	}
}

func TestBufferPatchU32(t *testing.T) {
	b := NewBuffer(8)
	b.AppendU32(0)
	b.AppendU32(0xAABBCCDD)
	b.PatchU32(0, 0x11223344)
	want := []byte{0x44, 0x33, 0x22, 0x11, 0xDD, 0xCC, 0xBB, 0xAA}
	if !bytesEqual(b.Bytes(), want) {
		t.Fatalf("got %v, want %v", b.Bytes(), want)
	}
}

func TestBufferAppendU16BE(t *testing.T) {
	b := NewBuffer(2)
	b.AppendU16BE(0x0102)
	want := []byte{0x01, 0x02}
	if !bytesEqual(b.Bytes(), want) {
		t.Fatalf("got %v, want %v", b.Bytes(), want)
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
