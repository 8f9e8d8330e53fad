package openrgb

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

func TestReadFrameDecodesHeaderAndPayload(t *testing.T) {
	var buf bytes.Buffer

	var hdr [16]byte
	binary.LittleEndian.PutUint32(hdr[0:4], Magic)
	binary.LittleEndian.PutUint32(hdr[4:8], 3)   // device_index
	binary.LittleEndian.PutUint32(hdr[8:12], 42) // request_id
	payload := []byte{1, 2, 3, 4}
	binary.LittleEndian.PutUint32(hdr[12:16], uint32(len(payload)))
	buf.Write(hdr[:])
	buf.Write(payload)

	f, err := readFrame(&buf)
	if err != nil {
		t.Fatalf("readFrame: %v", err)
	}
	if f.DeviceIndex != 3 || f.RequestID != 42 {
		t.Fatalf("f = %+v", f)
	}
	if !bytes.Equal(f.Payload, payload) {
		t.Fatalf("payload = %v, want %v", f.Payload, payload)
	}
}

func TestReadFrameBadMagic(t *testing.T) {
	var hdr [16]byte
	binary.LittleEndian.PutUint32(hdr[0:4], 0xdeadbeef)
	_, err := readFrame(bytes.NewReader(hdr[:]))
	if err == nil {
		t.Fatalf("expected error for bad magic")
	}
}

func TestReadFrameCleanEOF(t *testing.T) {
	_, err := readFrame(bytes.NewReader(nil))
	if err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestWriteFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("hello")
	if err := writeFrame(&buf, 7, payload); err != nil {
		t.Fatalf("writeFrame: %v", err)
	}

	out := buf.Bytes()
	if out[0] != 'O' || out[1] != 'R' || out[2] != 'G' || out[3] != 'B' {
		t.Fatalf("bad magic bytes: %v", out[0:4])
	}
	device := binary.LittleEndian.Uint32(out[4:8])
	requestID := binary.LittleEndian.Uint32(out[8:12])
	dataLen := binary.LittleEndian.Uint32(out[12:16])
	if device != 0 {
		t.Fatalf("device = %d, want 0", device)
	}
	if requestID != 7 {
		t.Fatalf("requestID = %d, want 7", requestID)
	}
	if int(dataLen) != len(payload) {
		t.Fatalf("dataLen = %d, want %d", dataLen, len(payload))
	}
	if !bytes.Equal(out[16:], payload) {
		t.Fatalf("payload mismatch: %v", out[16:])
	}
}
