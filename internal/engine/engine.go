// Package engine owns the decoding session: it turns a capture buffer into
// retained packet summaries and serves on-demand PDU decodes against them.
package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"smppdump/internal/capture"
	"smppdump/internal/frame"
	"smppdump/internal/models"
	"smppdump/internal/smpp"
)

var (
	// ErrNoRecords means the capture parsed cleanly but held nothing that
	// passed the IPv4/TCP filter.
	ErrNoRecords = errors.New("no matching records found")
	// ErrNoCapture means no capture has been loaded yet.
	ErrNoCapture = errors.New("no capture loaded")
)

// Client represents a connected WebSocket client that receives session
// updates.
type Client interface {
	SendMessage(msg models.WSMessage) error
}

// Engine holds the loaded capture session and connected clients.
type Engine struct {
	mu        sync.Mutex
	clients   map[Client]bool
	summaries []models.PacketSummary
}

// New creates a new Engine.
func New() *Engine {
	return &Engine{clients: make(map[Client]bool)}
}

// RegisterClient adds a client to receive session broadcasts.
func (e *Engine) RegisterClient(c Client) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clients[c] = true
}

// UnregisterClient removes a client.
func (e *Engine) UnregisterClient(c Client) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.clients, c)
}

// LoadCapture parses a capture buffer and retains one summary per record
// that carries a TCP payload big enough for an SMPP header. The summaries
// own their payload views for the rest of the session so packets can be
// decoded later without re-reading the file. Replaces any previous session.
func (e *Engine) LoadCapture(data []byte) error {
	reader, err := capture.NewReader(data)
	if err != nil {
		return err
	}

	var summaries []models.PacketSummary
	dropped := 0
	for {
		rec, ok := reader.Next()
		if !ok {
			break
		}
		tp := frame.Strip(rec.Data)
		if tp == nil {
			dropped++
			continue
		}
		summaries = append(summaries, models.PacketSummary{
			Index:       len(summaries),
			SrcEndpoint: tp.SrcEndpoint,
			DstEndpoint: tp.DstEndpoint,
			Length:      len(tp.Payload),
			Info:        smpp.Classify(tp.Payload),
			Payload:     tp.Payload,
		})
	}
	if len(summaries) == 0 {
		return ErrNoRecords
	}

	e.mu.Lock()
	e.summaries = summaries
	e.mu.Unlock()

	log.WithFields(log.Fields{
		"packets":  len(summaries),
		"filtered": dropped,
	}).Info("capture loaded")

	payload, _ := json.Marshal(models.CaptureLoaded{
		PacketCount: len(summaries),
		Packets:     summaries,
	})
	e.broadcast(models.WSMessage{Type: "capture_loaded", Payload: payload})
	return nil
}

// Summaries returns the packet list of the current session.
func (e *Engine) Summaries() ([]models.PacketSummary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.summaries == nil {
		return nil, ErrNoCapture
	}
	out := make([]models.PacketSummary, len(e.summaries))
	copy(out, e.summaries)
	return out, nil
}

// DecodePacket re-scans the retained payload of one listed packet and
// returns its decoded PDUs.
func (e *Engine) DecodePacket(index int) ([]models.ParsedPdu, error) {
	e.mu.Lock()
	if e.summaries == nil {
		e.mu.Unlock()
		return nil, ErrNoCapture
	}
	if index < 0 || index >= len(e.summaries) {
		e.mu.Unlock()
		return nil, fmt.Errorf("no packet with index %d", index)
	}
	payload := e.summaries[index].Payload
	e.mu.Unlock()

	return smpp.Scan(payload), nil
}

func (e *Engine) broadcast(msg models.WSMessage) {
	e.mu.Lock()
	clients := make([]Client, 0, len(e.clients))
	for c := range e.clients {
		clients = append(clients, c)
	}
	e.mu.Unlock()

	for _, c := range clients {
		c.SendMessage(msg)
	}
}
