package capture

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildCapture assembles a pcap buffer in the given byte order. Writing the
// magic through the same order makes a big-endian read see 0xA1B2C3D4 for
// big-endian files and 0xD4C3B2A1 for little-endian ones.
func buildCapture(order binary.ByteOrder, frames ...[]byte) []byte {
	buf := make([]byte, globalHeaderLen)
	order.PutUint32(buf[0:4], 0xA1B2C3D4)
	order.PutUint16(buf[4:6], 2)       // version major
	order.PutUint16(buf[6:8], 4)       // version minor
	order.PutUint32(buf[16:20], 65535) // snaplen
	order.PutUint32(buf[20:24], 1)     // linktype: Ethernet

	for _, frame := range frames {
		hdr := make([]byte, recordHeaderLen)
		order.PutUint32(hdr[0:4], 1700000000) // ts sec
		order.PutUint32(hdr[4:8], 0)          // ts usec
		order.PutUint32(hdr[8:12], uint32(len(frame)))
		order.PutUint32(hdr[12:16], uint32(len(frame)))
		buf = append(buf, hdr...)
		buf = append(buf, frame...)
	}
	return buf
}

func collect(r *Reader) []Record {
	var recs []Record
	for {
		rec, ok := r.Next()
		if !ok {
			return recs
		}
		recs = append(recs, rec)
	}
}

func TestNewReader_FormatErrors(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want error
	}{
		{name: "empty buffer", buf: nil, want: ErrTooShort},
		{name: "header cut short", buf: make([]byte, 23), want: ErrTooShort},
		{name: "wrong magic", buf: append([]byte{0xDE, 0xAD, 0xBE, 0xEF}, make([]byte, 20)...), want: ErrBadMagic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(tt.buf)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReader_BothByteOrders(t *testing.T) {
	frame := []byte{0x01, 0x02, 0x03, 0x04, 0x05}

	for _, tt := range []struct {
		name  string
		order binary.ByteOrder
	}{
		{"big-endian", binary.BigEndian},
		{"little-endian", binary.LittleEndian},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(buildCapture(tt.order, frame, frame))
			require.NoError(t, err)

			recs := collect(r)
			require.Len(t, recs, 2)
			for _, rec := range recs {
				assert.Equal(t, frame, rec.Data)
				assert.Equal(t, uint32(len(frame)), rec.CapLen)
			}
		})
	}
}

func TestReader_EmptyCapture(t *testing.T) {
	r, err := NewReader(buildCapture(binary.BigEndian))
	require.NoError(t, err)
	assert.Empty(t, collect(r))
}

func TestReader_TruncatedTrailingRecordDropped(t *testing.T) {
	full := []byte{0xAA, 0xBB, 0xCC}
	buf := buildCapture(binary.BigEndian, full)

	// Append a record header that declares 100 bytes but provides 2.
	hdr := make([]byte, recordHeaderLen)
	binary.BigEndian.PutUint32(hdr[8:12], 100)
	buf = append(buf, hdr...)
	buf = append(buf, 0x01, 0x02)

	r, err := NewReader(buf)
	require.NoError(t, err)

	recs := collect(r)
	require.Len(t, recs, 1)
	assert.Equal(t, full, recs[0].Data)
}

func TestReader_TruncatedRecordHeaderDropped(t *testing.T) {
	buf := buildCapture(binary.BigEndian, []byte{0x11})
	buf = append(buf, make([]byte, recordHeaderLen-1)...) // 15 bytes: not a header

	r, err := NewReader(buf)
	require.NoError(t, err)
	assert.Len(t, collect(r), 1)
}

func TestReader_CorruptLengthNeverReadsOutOfBounds(t *testing.T) {
	buf := buildCapture(binary.BigEndian)
	hdr := make([]byte, recordHeaderLen)
	binary.BigEndian.PutUint32(hdr[8:12], 0xFFFFFFFF)
	buf = append(buf, hdr...)
	buf = append(buf, make([]byte, 512)...)

	r, err := NewReader(buf)
	require.NoError(t, err)
	assert.Empty(t, collect(r))
}

func TestReader_NotRestartable(t *testing.T) {
	r, err := NewReader(buildCapture(binary.BigEndian, []byte{0x01, 0x02}))
	require.NoError(t, err)

	_, ok := r.Next()
	require.True(t, ok)
	_, ok = r.Next()
	assert.False(t, ok)
	_, ok = r.Next()
	assert.False(t, ok)
}
