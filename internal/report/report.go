// Package report implements the fixed-size HID output/input report buffer
// used to talk to QMK keyboards: a buffer of N bytes whose first byte is
// the (always-zero) HID report ID, with all payload indexing shifted by one
// so callers never have to think about the report ID byte. Some transports
// prepend that byte on the wire and some don't; the buffer stores it
// uniformly either way.
package report

// Size is the fixed HID report size: one report-ID byte plus the 32-byte
// command+data buffer QMK's raw HID endpoint exchanges.
const Size = 33

// Report is a fixed-capacity HID report buffer. The zero value is a report
// of all zero bytes, ready to use.
type Report struct {
	data [Size]byte
}

// Len returns the number of addressable payload bytes (Size-1).
func (r *Report) Len() int {
	return Size - 1
}

// Get returns the payload byte at i (i.e. the raw byte at i+1).
func (r *Report) Get(i int) byte {
	return r.data[i+1]
}

// Set writes the payload byte at i (i.e. the raw byte at i+1).
func (r *Report) Set(i int, v byte) {
	r.data[i+1] = v
}

// SetBytes copies b into the payload starting at offset i.
func (r *Report) SetBytes(i int, b []byte) {
	copy(r.data[i+1:], b)
}

// Payload returns the payload byte slice [start, end), shifted past the
// report-ID byte.
func (r *Report) Payload(start, end int) []byte {
	return r.data[start+1 : end+1]
}

// Raw returns the full N-byte buffer including the leading report-ID byte,
// ready for transmission to the HID transport.
func (r *Report) Raw() [Size]byte {
	return r.data
}

// FromRaw builds a Report from a raw N-byte buffer as read back from the
// HID transport.
func FromRaw(raw [Size]byte) Report {
	return Report{data: raw}
}
