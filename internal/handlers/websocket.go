package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"smppdump/internal/engine"
	"smppdump/internal/models"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSClient wraps a WebSocket connection and implements engine.Client.
type WSClient struct {
	conn   *websocket.Conn
	eng    *engine.Engine
	sendCh chan models.WSMessage
	done   chan struct{}
}

// NewWSClient creates a WSClient and registers it with the engine.
func NewWSClient(conn *websocket.Conn, eng *engine.Engine) *WSClient {
	c := &WSClient{
		conn:   conn,
		eng:    eng,
		sendCh: make(chan models.WSMessage, sendBuffer),
		done:   make(chan struct{}),
	}
	eng.RegisterClient(c)
	go c.writeLoop()
	return c
}

// SendMessage queues a message for async delivery. Non-blocking: drops if
// the buffer is full so a slow client never stalls the session.
func (c *WSClient) SendMessage(msg models.WSMessage) error {
	select {
	case c.sendCh <- msg:
	default:
	}
	return nil
}

// writeLoop drains the send channel and writes to the WebSocket.
func (c *WSClient) writeLoop() {
	defer c.conn.Close()
	for {
		select {
		case msg, ok := <-c.sendCh:
			if !ok {
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// ReadLoop reads messages from the client and dispatches commands.
func (c *WSClient) ReadLoop() {
	defer func() {
		c.eng.UnregisterClient(c)
		close(c.done)
		close(c.sendCh)
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg models.WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError("invalid message format")
			continue
		}
		c.handleCommand(msg)
	}
}

func (c *WSClient) handleCommand(msg models.WSMessage) {
	switch msg.Type {
	case "list_packets":
		summaries, err := c.eng.Summaries()
		if err != nil {
			c.sendError(err.Error())
			return
		}
		payload, _ := json.Marshal(models.CaptureLoaded{
			PacketCount: len(summaries),
			Packets:     summaries,
		})
		c.SendMessage(models.WSMessage{Type: "packet_list", Payload: payload})

	case "decode_packet":
		var req models.DecodeRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			c.sendError("invalid decode_packet payload")
			return
		}
		pdus, err := c.eng.DecodePacket(req.Index)
		if err != nil {
			c.sendError("decode failed: " + err.Error())
			return
		}
		payload, _ := json.Marshal(models.DecodeResult{Index: req.Index, Pdus: pdus})
		c.SendMessage(models.WSMessage{Type: "packet_decoded", Payload: payload})

	default:
		c.sendError("unknown command: " + msg.Type)
	}
}

func (c *WSClient) sendError(message string) {
	payload, _ := json.Marshal(models.ErrorPayload{Message: message})
	c.SendMessage(models.WSMessage{Type: "error", Payload: payload})
}

// HandleWebSocket is the HTTP handler for WebSocket upgrades.
func HandleWebSocket(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.WithError(err).Warn("websocket upgrade failed")
			return
		}
		client := NewWSClient(conn, eng)
		client.ReadLoop()
	}
}
