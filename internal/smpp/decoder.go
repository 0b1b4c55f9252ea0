package smpp

import (
	"encoding/binary"
	"fmt"

	log "github.com/sirupsen/logrus"

	"smppdump/internal/models"
)

// HeaderLen is the fixed SMPP PDU header size.
const HeaderLen = 16

// Decode decodes one already-bounded PDU slice into a header plus body
// variant. A command_length that disagrees with the slice size is a warning
// only; the slice size is ground truth.
func Decode(pdu []byte) (models.ParsedPdu, error) {
	if len(pdu) < HeaderLen {
		return models.ParsedPdu{}, fmt.Errorf("smpp: pdu too short (%d bytes)", len(pdu))
	}

	hdr := models.SmppHeader{
		CommandLength: binary.BigEndian.Uint32(pdu[0:4]),
		CommandID:     binary.BigEndian.Uint32(pdu[4:8]),
		CommandStatus: binary.BigEndian.Uint32(pdu[8:12]),
		SequenceNo:    binary.BigEndian.Uint32(pdu[12:16]),
	}
	hdr.CommandName = CommandName(hdr.CommandID)

	if int(hdr.CommandLength) != len(pdu) {
		log.WithFields(log.Fields{
			"commandId": fmt.Sprintf("0x%08X", hdr.CommandID),
			"declared":  hdr.CommandLength,
			"actual":    len(pdu),
		}).Warn("command_length disagrees with PDU size, using actual size")
	}

	parsed := models.ParsedPdu{Header: hdr}
	body := pdu[HeaderLen:]

	switch hdr.CommandID {
	case CmdDeliverSm:
		parsed.Body = decodeDeliverSm(body)
	default:
		parsed.Body = models.UnsupportedBody{
			CommandName: hdr.CommandName,
			CommandID:   hdr.CommandID,
			Note:        fmt.Sprintf("no body decoder for %s", hdr.CommandName),
			RawBody:     body,
		}
	}
	return parsed, nil
}

// decodeDeliverSm reads the mandatory deliver_sm fields in wire order, the
// short message, and any trailing optional parameters.
func decodeDeliverSm(body []byte) models.DeliverSmBody {
	r := &bodyReader{buf: body}

	var b models.DeliverSmBody
	b.ServiceType = r.cstring()
	b.SourceAddr.Ton = r.readByte()
	b.SourceAddr.Npi = r.readByte()
	b.SourceAddr.Addr = r.cstring()
	b.DestAddr.Ton = r.readByte()
	b.DestAddr.Npi = r.readByte()
	b.DestAddr.Addr = r.cstring()
	b.EsmClass = decodeEsmClass(r.readByte())
	b.ProtocolID = r.readByte()
	b.PriorityFlag = r.readByte()
	b.ScheduleDeliveryTime = r.cstring()
	b.ValidityPeriod = r.cstring()
	b.RegisteredDelivery = r.readByte()
	b.ReplaceIfPresent = r.readByte()
	b.DataCoding = r.readByte()
	b.SmDefaultMsgID = r.readByte()
	b.SmLength = r.readByte()

	// The declared sm_length is honored only when it fits the remaining
	// buffer; otherwise the short message is omitted.
	if n := int(b.SmLength); n > 0 && n <= r.remaining() {
		b.ShortMessage = r.readBytes(n)
	}

	b.Tlvs = readTlvs(r)

	// message_payload supersedes the fixed short_message field when both
	// are present.
	content := b.ShortMessage
	for _, t := range b.Tlvs {
		if t.Tag == TagMessagePayload {
			content = t.Value
		}
	}
	b.DecodedMessage = RenderMessage(b.DataCoding, content)
	return b
}

func decodeEsmClass(raw uint8) models.EsmClass {
	esm := models.EsmClass{Raw: raw, Mode: "Unknown Mode", Type: "Unknown Type"}
	if mode, ok := messagingModes[raw&0x03]; ok {
		esm.Mode = mode
	}
	if typ, ok := messageTypes[(raw>>2)&0x0F]; ok {
		esm.Type = typ
	}
	return esm
}

// readTlvs scans tag/length/value parameters until the buffer runs out. A
// value length that exceeds the remaining bytes abandons the rest of the
// buffer; parameters already collected are kept.
func readTlvs(r *bodyReader) []models.SmppTlv {
	var tlvs []models.SmppTlv
	for r.remaining() >= 4 {
		tag := binary.BigEndian.Uint16(r.buf[r.off : r.off+2])
		length := binary.BigEndian.Uint16(r.buf[r.off+2 : r.off+4])
		if int(length) > r.remaining()-4 {
			break
		}
		r.off += 4
		tlvs = append(tlvs, models.SmppTlv{
			Tag:    tag,
			Name:   TlvName(tag),
			Length: length,
			Value:  r.readBytes(int(length)),
		})
	}
	return tlvs
}

// bodyReader walks a PDU body. Reads past the end return zero values rather
// than panicking; a malformed body decodes to zeroed fields.
type bodyReader struct {
	buf []byte
	off int
}

func (r *bodyReader) remaining() int { return len(r.buf) - r.off }

// cstring reads up to the next NUL and advances past it.
func (r *bodyReader) cstring() string {
	start := r.off
	for r.off < len(r.buf) && r.buf[r.off] != 0 {
		r.off++
	}
	s := string(r.buf[start:r.off])
	if r.off < len(r.buf) {
		r.off++
	}
	return s
}

func (r *bodyReader) readByte() uint8 {
	if r.off >= len(r.buf) {
		return 0
	}
	b := r.buf[r.off]
	r.off++
	return b
}

func (r *bodyReader) readBytes(n int) []byte {
	if n <= 0 || n > r.remaining() {
		return nil
	}
	v := r.buf[r.off : r.off+n]
	r.off += n
	return v
}
