package smpp

import (
	"encoding/binary"
	"fmt"

	log "github.com/sirupsen/logrus"

	"smppdump/internal/models"
)

// Scan walks one TCP payload and decodes every PDU it can find. The payload
// may begin mid-PDU, hold several back-to-back PDUs, or end in garbage, so
// the scan re-synchronizes byte-wise: a position qualifies as a PDU start
// only when the bytes at offset+4 match a known command id and the declared
// length both covers a full header and fits the rest of the payload.
//
// On a rejected position the cursor advances one byte. On a failed decode
// of an accepted slice it also advances one byte — never the declared
// length, which could loop on a false positive. On success it advances by
// the PDU length.
func Scan(payload []byte) []models.ParsedPdu {
	var pdus []models.ParsedPdu
	cursor := 0
	for len(payload)-cursor >= HeaderLen {
		id := binary.BigEndian.Uint32(payload[cursor+4 : cursor+8])
		if !knownCommand(id) {
			cursor++
			continue
		}
		length := int(binary.BigEndian.Uint32(payload[cursor : cursor+4]))
		if length < HeaderLen || length > len(payload)-cursor {
			// Plausible command id but impossible length: false positive.
			cursor++
			continue
		}
		pdu, err := Decode(payload[cursor : cursor+length])
		if err != nil {
			log.WithFields(log.Fields{
				"offset": cursor,
				"err":    err,
			}).Warn("pdu decode failed, resuming scan one byte later")
			cursor++
			continue
		}
		pdus = append(pdus, pdu)
		cursor += length
	}
	return pdus
}

// Classify produces the one-line summary shown in the packet list.
func Classify(payload []byte) string {
	pdus := Scan(payload)
	switch len(pdus) {
	case 0:
		return "no SMPP PDU found"
	case 1:
		return pdus[0].Header.CommandName
	default:
		return fmt.Sprintf("%s (+%d more)", pdus[0].Header.CommandName, len(pdus)-1)
	}
}
