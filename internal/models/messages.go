package models

import "encoding/json"

// WSMessage is the envelope for all WebSocket communication.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// DecodeRequest is sent by the client to decode one listed packet.
type DecodeRequest struct {
	Index int `json:"index"`
}

// DecodeResult carries the PDUs decoded from one packet's payload.
type DecodeResult struct {
	Index int         `json:"index"`
	Pdus  []ParsedPdu `json:"pdus"`
}

// CaptureLoaded announces a freshly loaded capture to clients.
type CaptureLoaded struct {
	PacketCount int             `json:"packetCount"`
	Packets     []PacketSummary `json:"packets"`
}

// ErrorPayload describes an error sent to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}
