// Package bus is the websocket message bus between the daemon core and its
// UI collaborators (a browser page, the breakminder CLI, anything that
// speaks the JSON envelope protocol).
//
// Outbound delivery is best-effort by contract: with no client attached
// Emit reports ErrNoClients, and a slow client drops messages rather than
// blocking the core. Inbound messages are dispatched one at a time per
// connection; validation failures are answered on the originating
// connection only.
package bus

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/breakminder/breakminder/internal/errors"
	"github.com/breakminder/breakminder/internal/logging"
)

// Dispatcher handles one inbound request and produces a reply. A returned
// error becomes an error reply on the originating connection; a nil reply
// with nil error becomes an ack.
type Dispatcher interface {
	Dispatch(action string, payload json.RawMessage) (*Reply, error)
}

// Hub accepts websocket clients and fans outbound messages to all of them.
type Hub struct {
	dispatcher   Dispatcher
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	sendBuffer   int

	mu      sync.RWMutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a hub that routes inbound messages to dispatcher.
func NewHub(dispatcher Dispatcher, writeTimeout time.Duration, sendBuffer int) *Hub {
	return &Hub{
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			// The daemon binds to loopback; the browser page is served
			// from a file/extension origin, so origin checks are moot.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		writeTimeout: writeTimeout,
		sendBuffer:   sendBuffer,
		clients:      make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the connection and runs its read/write pumps.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed", logging.KeyError, err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, h.sendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	logging.DebugLog("bus client attached", "clients", n)

	go h.writePump(c)
	h.readPump(c)
}

// ClientCount returns the number of attached clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Emit broadcasts an action to every attached client. With no clients it
// returns ErrNoClients so callers that care (the sound router) can react;
// most callers treat any failure as best-effort and move on.
func (h *Hub) Emit(action string, payload any) error {
	data, err := marshalEnvelope(action, payload)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.clients) == 0 {
		return errors.ErrNoClients
	}

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Client too slow; dropping beats blocking the core.
			logging.DebugLog("bus message dropped for slow client", logging.KeyAction, action)
		}
	}
	return nil
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) detach(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		close(c.send)
		delete(h.clients, c)
	}
	h.mu.Unlock()
	c.conn.Close()
}

// readPump reads inbound envelopes and dispatches them sequentially.
func (h *Hub) readPump(c *client) {
	defer h.detach(c)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			h.reply(c, &Reply{Action: ActionError, Payload: ErrorPayload{Message: "malformed message"}})
			continue
		}

		reply, err := h.dispatcher.Dispatch(env.Action, env.Payload)
		if err != nil {
			logging.Warn("request rejected",
				logging.KeyAction, env.Action,
				logging.KeyError, err)
			h.reply(c, &Reply{Action: ActionError, Payload: ErrorPayload{Message: err.Error()}})
			continue
		}
		if reply == nil {
			reply = Ack()
		}
		h.reply(c, reply)
	}
}

// reply sends a message to one connection only. The membership check holds
// the same lock detach closes send channels under, so a reply racing a
// disconnect is dropped instead of sent on a closed channel.
func (h *Hub) reply(c *client, r *Reply) {
	data, err := marshalEnvelope(r.Action, r.Payload)
	if err != nil {
		logging.Error("unencodable reply", logging.KeyAction, r.Action, logging.KeyError, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.clients[c]; !ok {
		logging.DebugLog("reply dropped for detached client", logging.KeyAction, r.Action)
		return
	}
	select {
	case c.send <- data:
	default:
		logging.DebugLog("reply dropped for slow client", logging.KeyAction, r.Action)
	}
}

// writePump owns all writes to one connection.
func (h *Hub) writePump(c *client) {
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.detach(c)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.Close()
}

func marshalEnvelope(action string, payload any) ([]byte, error) {
	env := struct {
		Action  string `json:"action"`
		Payload any    `json:"payload,omitempty"`
	}{Action: action, Payload: payload}
	return json.Marshal(env)
}
