package openrgb

import "encoding/binary"

// Buffer accumulates a response payload using the OpenRGB wire's
// little-endian integers and length-prefixed strings, keeping the
// GetControllerData assembly code linear and auditable.
type Buffer struct {
	data []byte
}

// NewBuffer returns an empty Buffer with cap pre-reserved.
func NewBuffer(cap int) *Buffer {
	return &Buffer{data: make([]byte, 0, cap)}
}

// Bytes returns the accumulated payload.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return len(b.data)
}

// AppendU8 appends a single byte.
func (b *Buffer) AppendU8(v uint8) {
	b.data = append(b.data, v)
}

// AppendU16 appends a little-endian u16.
func (b *Buffer) AppendU16(v uint16) {
	b.data = binary.LittleEndian.AppendUint16(b.data, v)
}

// AppendU16BE appends a big-endian u16, the byte order the keymap wire
// format uses for its offsets and scancodes.
func (b *Buffer) AppendU16BE(v uint16) {
	b.data = binary.BigEndian.AppendUint16(b.data, v)
}

// AppendU32 appends a little-endian u32.
func (b *Buffer) AppendU32(v uint32) {
	b.data = binary.LittleEndian.AppendUint32(b.data, v)
}

// AppendI32 appends a little-endian i32.
func (b *Buffer) AppendI32(v int32) {
	b.AppendU32(uint32(v))
}

// AppendStr appends a string as the OpenRGB wire encodes it: a u16 length
// including the trailing NUL, the UTF-8 bytes, then a NUL byte.
func (b *Buffer) AppendStr(s string) {
	b.AppendU16(uint16(len(s) + 1))
	b.data = append(b.data, s...)
	b.data = append(b.data, 0)
}

// AppendColor appends an (r,g,b,pad) quad, the OpenRGB wire's 4-byte color
// encoding.
func (b *Buffer) AppendColor(r, g, bl uint8) {
	b.data = append(b.data, r, g, bl, 0)
}

// AppendBytes appends raw bytes verbatim.
func (b *Buffer) AppendBytes(raw []byte) {
	b.data = append(b.data, raw...)
}

// PatchU32 overwrites the little-endian u32 at byte offset off with v, used
// to patch a self-inclusive data_len placeholder once the final length is
// known.
func (b *Buffer) PatchU32(off int, v uint32) {
	binary.LittleEndian.PutUint32(b.data[off:off+4], v)
}
