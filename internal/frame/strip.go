// Package frame peels link, network and transport headers off captured
// frames to recover TCP payload bytes.
package frame

import (
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// minSmppHeader is the smallest payload worth keeping: anything smaller
// than a fixed SMPP header cannot hold even a bodyless PDU.
const minSmppHeader = 16

// TCPPayload is the stripped result of one frame. Payload is a view into
// the frame's bytes; nothing is copied.
type TCPPayload struct {
	SrcEndpoint string
	DstEndpoint string
	Payload     []byte
}

var decodeOpts = gopacket.DecodeOptions{Lazy: true, NoCopy: true}

// Strip parses one Ethernet-II frame and returns its TCP payload with
// ip:port endpoint strings. Anything that is not IPv4 over Ethernet
// carrying TCP, or whose payload is too small to hold an SMPP header,
// yields nil — a skip, not an error.
func Strip(data []byte) *TCPPayload {
	pkt := gopacket.NewPacket(data, layers.LayerTypeEthernet, decodeOpts)

	ip4Layer := pkt.Layer(layers.LayerTypeIPv4)
	if ip4Layer == nil {
		return nil
	}
	ip4 := ip4Layer.(*layers.IPv4)

	tcpLayer := pkt.Layer(layers.LayerTypeTCP)
	if tcpLayer == nil {
		return nil
	}
	tcp := tcpLayer.(*layers.TCP)

	payload := tcp.Payload
	if len(payload) < minSmppHeader {
		return nil
	}

	return &TCPPayload{
		SrcEndpoint: fmt.Sprintf("%s:%d", ip4.SrcIP, uint16(tcp.SrcPort)),
		DstEndpoint: fmt.Sprintf("%s:%d", ip4.DstIP, uint16(tcp.DstPort)),
		Payload:     payload,
	}
}
