package openrgb

import (
	"encoding/binary"
	"fmt"
	"io"
)

// frame is one client request: the decoded header plus its payload.
type frame struct {
	DeviceIndex uint32
	RequestID   uint32
	Payload     []byte
}

// readExactly fills buf entirely or returns the first error, including a
// short read as io.ErrUnexpectedEOF the way bufio/io.ReadFull would.
func readExactly(r io.Reader, buf []byte) error {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		if err != nil {
			if n > 0 && err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		n += m
	}
	return nil
}

// readFrame decodes one client request. A wrong magic is reported as an
// error so the caller can terminate the connection per the framing
// invariant.
func readFrame(r io.Reader) (*frame, error) {
	var hdr [16]byte
	if err := readExactly(r, hdr[:]); err != nil {
		return nil, err
	}

	magic := binary.LittleEndian.Uint32(hdr[0:4])
	if magic != Magic {
		return nil, fmt.Errorf("openrgb: bad magic %#x", magic)
	}

	f := &frame{
		DeviceIndex: binary.LittleEndian.Uint32(hdr[4:8]),
		RequestID:   binary.LittleEndian.Uint32(hdr[8:12]),
	}
	payloadLen := binary.LittleEndian.Uint32(hdr[12:16])
	if payloadLen > 0 {
		f.Payload = make([]byte, payloadLen)
		if err := readExactly(r, f.Payload); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// writeFrame writes a server response. The device field is always 0 per the
// wire format; only client requests carry a real device index.
func writeFrame(w io.Writer, requestID uint32, payload []byte) error {
	var hdr [16]byte
	hdr[0], hdr[1], hdr[2], hdr[3] = 'O', 'R', 'G', 'B'
	binary.LittleEndian.PutUint32(hdr[4:8], 0)
	binary.LittleEndian.PutUint32(hdr[8:12], requestID)
	binary.LittleEndian.PutUint32(hdr[12:16], uint32(len(payload)))

	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}
	return nil
}
