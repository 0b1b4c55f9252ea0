// Package capture reads the classic pcap container format from a buffer
// that is already resident in memory.
package capture

import "encoding/binary"

const (
	globalHeaderLen = 24
	recordHeaderLen = 16

	// Magic at offset 0, read big-endian. The value fixes the byte order
	// of every later multi-byte field in the file.
	magicBigEndian    = 0xA1B2C3D4
	magicLittleEndian = 0xD4C3B2A1
)

// FormatError is fatal to the whole decode: the buffer is not a usable
// capture file.
type FormatError string

func (e FormatError) Error() string { return "capture: " + string(e) }

var (
	ErrTooShort = FormatError("too short")
	ErrBadMagic = FormatError("bad magic")
)

// Record is one captured frame. Data is a view into the capture buffer and
// must not be mutated.
type Record struct {
	Data   []byte
	CapLen uint32
}

// Reader iterates the records of a capture buffer. It is lazy, finite and
// non-restartable.
type Reader struct {
	buf   []byte
	order binary.ByteOrder
	off   int
}

// NewReader validates the 24-byte global header and positions the reader at
// the first record.
func NewReader(buf []byte) (*Reader, error) {
	if len(buf) < globalHeaderLen {
		return nil, ErrTooShort
	}
	var order binary.ByteOrder
	switch binary.BigEndian.Uint32(buf[0:4]) {
	case magicBigEndian:
		order = binary.BigEndian
	case magicLittleEndian:
		order = binary.LittleEndian
	default:
		return nil, ErrBadMagic
	}
	return &Reader{buf: buf, order: order, off: globalHeaderLen}, nil
}

// Next returns the next record, or ok=false at end of stream. A trailing
// record whose header or declared length runs past the buffer ends the
// stream silently; corrupt length fields can never read out of bounds.
func (r *Reader) Next() (rec Record, ok bool) {
	if len(r.buf)-r.off < recordHeaderLen {
		return Record{}, false
	}
	// Record header: ts-sec, ts-usec, captured length, original length.
	// Only the captured length matters here.
	capLen := r.order.Uint32(r.buf[r.off+8 : r.off+12])
	body := r.off + recordHeaderLen
	if uint64(capLen) > uint64(len(r.buf)-body) {
		return Record{}, false
	}
	r.off = body + int(capLen)
	return Record{Data: r.buf[body : body+int(capLen)], CapLen: capLen}, true
}
