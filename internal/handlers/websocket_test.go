package handlers

import (
	"encoding/binary"
	"encoding/json"
	"net"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smppdump/internal/engine"
	"smppdump/internal/models"
	"smppdump/internal/smpp"
)

// buildTestCapture produces a one-frame capture holding a single
// enquire_link PDU on TCP 2775.
func buildTestCapture(t *testing.T) []byte {
	t.Helper()

	pdu := make([]byte, 16)
	binary.BigEndian.PutUint32(pdu[0:4], 16)
	binary.BigEndian.PutUint32(pdu[4:8], smpp.CmdEnquireLink)
	binary.BigEndian.PutUint32(pdu[12:16], 1)

	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x02, 0, 0, 0, 0, 1},
		DstMAC:       net.HardwareAddr{0x02, 0, 0, 0, 0, 2},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version: 4, IHL: 5, TTL: 64,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    net.ParseIP("10.0.0.1"),
		DstIP:    net.ParseIP("10.0.0.2"),
	}
	tcp := &layers.TCP{SrcPort: 2775, DstPort: 9999, PSH: true, ACK: true}
	require.NoError(t, tcp.SetNetworkLayerForChecksum(ip))

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.NoError(t, gopacket.SerializeLayers(buf, opts, eth, ip, tcp, gopacket.Payload(pdu)))
	frame := buf.Bytes()

	out := make([]byte, 24)
	binary.BigEndian.PutUint32(out[0:4], 0xA1B2C3D4)
	binary.BigEndian.PutUint32(out[16:20], 65535)
	binary.BigEndian.PutUint32(out[20:24], 1)
	hdr := make([]byte, 16)
	binary.BigEndian.PutUint32(hdr[8:12], uint32(len(frame)))
	binary.BigEndian.PutUint32(hdr[12:16], uint32(len(frame)))
	out = append(out, hdr...)
	return append(out, frame...)
}

func dialTestServer(t *testing.T, eng *engine.Engine) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(HandleWebSocket(eng))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocket_ListAndDecode(t *testing.T) {
	eng := engine.New()
	require.NoError(t, eng.LoadCapture(buildTestCapture(t)))
	conn := dialTestServer(t, eng)

	require.NoError(t, conn.WriteJSON(models.WSMessage{Type: "list_packets"}))

	var msg models.WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "packet_list", msg.Type)

	var list models.CaptureLoaded
	require.NoError(t, json.Unmarshal(msg.Payload, &list))
	require.Equal(t, 1, list.PacketCount)
	assert.Equal(t, "10.0.0.1:2775", list.Packets[0].SrcEndpoint)
	assert.Equal(t, "enquire_link", list.Packets[0].Info)

	req, _ := json.Marshal(models.DecodeRequest{Index: 0})
	require.NoError(t, conn.WriteJSON(models.WSMessage{Type: "decode_packet", Payload: req}))

	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "packet_decoded", msg.Type)

	var result struct {
		Index int `json:"index"`
		Pdus  []struct {
			Header models.SmppHeader `json:"header"`
		} `json:"pdus"`
	}
	require.NoError(t, json.Unmarshal(msg.Payload, &result))
	require.Len(t, result.Pdus, 1)
	assert.Equal(t, "enquire_link", result.Pdus[0].Header.CommandName)
}

func TestWebSocket_Errors(t *testing.T) {
	eng := engine.New()
	conn := dialTestServer(t, eng)

	// No capture loaded yet.
	require.NoError(t, conn.WriteJSON(models.WSMessage{Type: "list_packets"}))
	var msg models.WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Type)

	// Unknown command.
	require.NoError(t, conn.WriteJSON(models.WSMessage{Type: "bogus"}))
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "error", msg.Type)

	var ep models.ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &ep))
	assert.Contains(t, ep.Message, "unknown command")
}
