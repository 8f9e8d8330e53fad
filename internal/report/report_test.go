package report

import "testing"

func TestPayloadIndexingIsShiftedByOne(t *testing.T) {
	var r Report
	for i := 0; i < r.Len(); i++ {
		r.Set(i, byte(i+1))
	}

	raw := r.Raw()
	for i := 0; i < r.Len(); i++ {
		if got, want := r.Get(i), raw[i+1]; got != want {
			t.Fatalf("Get(%d) = %d, raw[%d] = %d", i, got, i+1, want)
		}
	}
}

func TestLenIsSizeMinusOne(t *testing.T) {
	var r Report
	if r.Len() != Size-1 {
		t.Fatalf("Len() = %d, want %d", r.Len(), Size-1)
	}
}

func TestReportIDByteNeverWritten(t *testing.T) {
	var r Report
	r.Set(0, 0xFF)
	raw := r.Raw()
	if raw[0] != 0 {
		t.Fatalf("raw[0] = %d, want 0", raw[0])
	}
}

func TestFromRawRoundTrip(t *testing.T) {
	var raw [Size]byte
	for i := range raw {
		raw[i] = byte(i)
	}
	r := FromRaw(raw)
	if r.Raw() != raw {
		t.Fatalf("FromRaw round trip mismatch")
	}
}

func TestSetBytesAndPayload(t *testing.T) {
	var r Report
	r.SetBytes(2, []byte{1, 2, 3})
	got := r.Payload(2, 5)
	want := []byte{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Payload = %v, want %v", got, want)
		}
	}
}
