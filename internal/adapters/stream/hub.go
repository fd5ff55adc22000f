// Package stream broadcasts simulation snapshots to connected clients
// over websockets and routes their actions back into the engine.
package stream

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/brachisto/brachisto-go/internal/application/setup"
)

// Envelope is the JSON frame both directions use. Outbound frames carry
// type "snapshot" or "error"; inbound frames carry an action name.
type Envelope struct {
	Type    string          `json:"type"`
	Action  string          `json:"action,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Client represents one connected frontend
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of active clients and fans snapshots out to them
type Hub struct {
	dispatcher *setup.Dispatcher

	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

// NewHub creates a hub; actions received from clients go through the
// dispatcher
func NewHub(dispatcher *setup.Dispatcher) *Hub {
	return &Hub{
		dispatcher: dispatcher,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 8),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Broadcast queues a snapshot frame for every connected client. Slow
// consumers are dropped rather than blocking the tick loop.
func (h *Hub) Broadcast(snapshot any) {
	frame, err := json.Marshal(outbound{Type: "snapshot", Payload: snapshot})
	if err != nil {
		log.Printf("stream: failed to encode snapshot: %v", err)
		return
	}
	select {
	case h.broadcast <- frame:
	default:
	}
}

// Run is the hub event loop; it blocks and should run in a goroutine.
// It exits when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case frame := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- frame:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades an HTTP request to a websocket connection and
// attaches it to the hub
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("stream: upgrade failed: %v", err)
		return
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, 64)}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump decodes inbound action frames and dispatches them. Replies
// go only to the sending client; snapshots reach everyone on the next
// tick anyway.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("stream: read error: %v", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.reply("error", map[string]string{"error": "malformed frame"})
			continue
		}

		var payload map[string]any
		if len(env.Payload) > 0 {
			if err := json.Unmarshal(env.Payload, &payload); err != nil {
				c.reply("error", map[string]string{"error": "malformed payload"})
				continue
			}
		}

		response, err := c.hub.dispatcher.Dispatch(context.Background(), env.Action, payload)
		if err != nil {
			c.reply("error", map[string]string{"action": env.Action, "error": err.Error()})
			continue
		}
		c.reply("result", response)
	}
}

func (c *Client) reply(kind string, payload any) {
	frame, err := json.Marshal(outbound{Type: kind, Payload: payload})
	if err != nil {
		return
	}
	select {
	case c.send <- frame:
	default:
	}
}

// writePump drains the send channel onto the socket
func (c *Client) writePump() {
	defer c.conn.Close()
	for frame := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
