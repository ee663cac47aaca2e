// internal/httpserver/ws.go
//
// Live play over a WebSocket: GET /sessions/{id}/ws?token=...
//
// Inbound messages name an action:
//   {"type":"start-game"} {"type":"end-game"} {"type":"skip-word"}
//   {"type":"update-guess","guess":"..."}
// Every inbound message is answered with {"type":"state","state":{...}};
// malformed ones with {"type":"error","error":"bad_message"}. The current
// state is pushed once right after the upgrade.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/unscramble/internal/game"
	"github.com/robalobadob/unscramble/internal/store"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4 * 1024
)

type wsInMessage struct {
	Type  string `json:"type" validate:"required,oneof=start-game end-game skip-word update-guess"`
	Guess string `json:"guess" validate:"max=256"`
}

type wsOutMessage struct {
	Type  string     `json:"type"` // "state" | "error"
	State *stateView `json:"state,omitempty"`
	Error string     `json:"error,omitempty"`
}

// action maps a validated inbound message to an engine action.
func (m wsInMessage) action() game.Action {
	switch m.Type {
	case "start-game":
		return game.StartGame{}
	case "end-game":
		return game.EndGame{}
	case "skip-word":
		return game.SkipWord{}
	case "update-guess":
		return game.UpdateGuess{Text: m.Guess}
	default:
		return nil
	}
}

// wsClient is one connection bound to one session.
type wsClient struct {
	srv       *Server
	conn      *websocket.Conn
	send      chan wsOutMessage
	done      chan struct{} // closed when writePump exits
	sessionID string
}

// enqueue hands m to writePump; it reports false once the writer is gone.
func (c *wsClient) enqueue(m wsOutMessage) bool {
	select {
	case c.send <- m:
		return true
	case <-c.done:
		return false
	}
}

func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == s.cfg.ClientOrigin || strings.HasSuffix(origin, "://"+r.Host)
		},
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	up := s.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("websocket upgrade")
		return
	}

	c := &wsClient{
		srv:       s,
		conn:      conn,
		send:      make(chan wsOutMessage, 16),
		done:      make(chan struct{}),
		sessionID: sess.ID,
	}
	view := viewOf(sess.State())
	c.send <- wsOutMessage{Type: "state", State: &view}

	go c.writePump()
	// The request context ends when this handler returns.
	go c.readPump(context.Background())
}

// readPump turns inbound messages into dispatched actions.
func (c *wsClient) readPump(ctx context.Context) {
	defer close(c.send)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		// An open socket keeps the session from being swept as idle.
		if err := c.srv.store.Touch(ctx, c.sessionID); err != nil {
			log.Debug().Err(err).Str("session", c.sessionID).Msg("touch on pong")
		}
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("session", c.sessionID).Msg("websocket read")
			}
			return
		}

		var msg wsInMessage
		if err := json.Unmarshal(raw, &msg); err != nil || c.srv.validate.Struct(&msg) != nil {
			if !c.enqueue(wsOutMessage{Type: "error", Error: "bad_message"}) {
				return
			}
			continue
		}

		state, err := c.srv.store.Dispatch(ctx, c.sessionID, msg.action())
		if errors.Is(err, store.ErrNotFound) {
			c.enqueue(wsOutMessage{Type: "error", Error: "session_not_found"})
			return
		}
		if err != nil {
			if !c.enqueue(wsOutMessage{Type: "error", Error: "dispatch_failed"}) {
				return
			}
			continue
		}
		view := viewOf(state)
		if !c.enqueue(wsOutMessage{Type: "state", State: &view}) {
			return
		}
	}
}

// writePump serializes outbound messages and keeps the connection alive.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		c.conn.Close()
	}()

	for {
		select {
		case out, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			b, err := json.Marshal(out)
			if err != nil {
				log.Warn().Err(err).Msg("encode websocket message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
