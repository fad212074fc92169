package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/breakminder/breakminder/internal/bus"
	"github.com/breakminder/breakminder/internal/config"
	"github.com/breakminder/breakminder/internal/errors"
)

// requestTimeout bounds one CLI request/reply round trip.
const requestTimeout = 5 * time.Second

// busClient is a short-lived websocket connection to the daemon bus.
type busClient struct {
	conn *websocket.Conn
}

// dialDaemon connects to the running daemon.
func dialDaemon() (*busClient, error) {
	u := url.URL{Scheme: "ws", Host: config.Global.Bus.ListenAddr, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w at %s (try 'breakminder daemon start')",
			errors.ErrDaemonNotRunning, config.Global.Bus.ListenAddr)
	}
	return &busClient{conn: conn}, nil
}

func (c *busClient) close() {
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.Close()
}

// request sends one envelope and waits for the daemon's reply, skipping any
// broadcast traffic that arrives in between.
func (c *busClient) request(action string, payload any) (*bus.Envelope, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = data
	}

	out, err := json.Marshal(bus.Envelope{Action: action, Payload: raw})
	if err != nil {
		return nil, err
	}

	c.conn.SetWriteDeadline(time.Now().Add(requestTimeout))
	if err := c.conn.WriteMessage(websocket.TextMessage, out); err != nil {
		return nil, fmt.Errorf("send failed: %w", err)
	}

	deadline := time.Now().Add(requestTimeout)
	for {
		c.conn.SetReadDeadline(deadline)
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("no reply from daemon: %w", err)
		}

		var env bus.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue
		}

		switch env.Action {
		case bus.ActionAck, bus.ActionState:
			return &env, nil
		case bus.ActionError:
			var e bus.ErrorPayload
			if err := json.Unmarshal(env.Payload, &e); err != nil || e.Message == "" {
				return nil, fmt.Errorf("request rejected")
			}
			return nil, fmt.Errorf("%s", e.Message)
		default:
			// Broadcast traffic (notify, counter-updated), not our reply.
		}
	}
}

// fetchState retrieves the daemon's state snapshot.
func fetchState(c *busClient) (*bus.StatePayload, error) {
	env, err := c.request(bus.ActionGetState, nil)
	if err != nil {
		return nil, err
	}
	var state bus.StatePayload
	if err := json.Unmarshal(env.Payload, &state); err != nil {
		return nil, fmt.Errorf("malformed state reply: %w", err)
	}
	return &state, nil
}
