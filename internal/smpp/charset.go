package smpp

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// data_coding values (SMPP v3.4 §5.2.19) with a body decoder here.
const (
	CodingDefault uint8 = 0x00 // GSM 7-bit default alphabet
	CodingLatin1  uint8 = 0x03
	CodingUTF8    uint8 = 0x04
	CodingUCS2    uint8 = 0x08
)

var ucs2Decoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// RenderMessage renders message content according to its data_coding byte.
// Every rendering is prefixed with the scheme name. GSM 7-bit is never
// unpacked; it and any unknown coding come back as a hex dump. Decode
// failures never propagate: they come back as a labeled error string.
func RenderMessage(coding uint8, content []byte) string {
	switch coding {
	case CodingUCS2:
		text, err := ucs2Decoder.NewDecoder().Bytes(content)
		if err != nil {
			return fmt.Sprintf("UCS-2 decode error: %v", err)
		}
		return "UCS-2: " + string(text)
	case CodingLatin1:
		text, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
		if err != nil {
			return fmt.Sprintf("Latin-1 decode error: %v", err)
		}
		return "Latin-1: " + string(text)
	case CodingUTF8:
		if !utf8.Valid(content) {
			return fmt.Sprintf("UTF-8 decode error: invalid byte sequence (% X)", content)
		}
		return "UTF-8: " + string(content)
	case CodingDefault:
		return "GSM 7-bit (hex): " + hexDump(content)
	default:
		return fmt.Sprintf("Unknown coding 0x%02X (hex): %s", coding, hexDump(content))
	}
}

func hexDump(content []byte) string {
	if len(content) == 0 {
		return "<empty>"
	}
	return fmt.Sprintf("% X", content)
}
