package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/bingolive/backend/game"
	"github.com/bingolive/backend/utils/logger"
)

// Client is one websocket connection. readPump turns wire messages into
// session intents; writePump drains the send buffer onto the socket.
type Client struct {
	id      string
	conn    *websocket.Conn
	hub     *Hub
	session *game.Session
	send    chan []byte

	mu     sync.Mutex
	closed bool
}

// inbound covers every client intent; fields irrelevant to a given type are
// simply left zero by the decoder.
type inbound struct {
	Type     string      `json:"type"`
	Nickname string      `json:"nickname"`
	Cards    []game.Card `json:"cards"`
	ID       int         `json:"id"`
	Card     game.Card   `json:"card"`
	Called   []int       `json:"called"`
}

// enqueue offers a frame to the client without blocking. Returns false when
// the client is closed or its buffer is full.
func (c *Client) enqueue(b []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

// closeSend seals the send buffer; writePump drains what is left and then
// closes the socket. Safe to call more than once.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) readPump() {
	defer func() {
		c.session.Disconnect(c.id)
		c.hub.remove(c.id)
		c.closeSend()
		c.conn.Close()
		logger.Infof("user disconnected: %s", c.id)
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("client %s read error: %v", c.id, err)
			}
			return
		}

		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.Warnf("client %s sent invalid message: %v", c.id, err)
			continue
		}
		c.dispatch(msg)
	}
}

func (c *Client) dispatch(msg inbound) {
	switch msg.Type {
	case "register-admin":
		c.session.RegisterAdmin(c.id)
	case "check-admin":
		c.session.CheckAdmin(c.id)
	case "leave-admin":
		c.session.LeaveAdmin(c.id)
	case "get-game-status":
		c.session.SendStatus(c.id)
	case "get-players":
		c.session.SendPlayers(c.id)
	case "set-nickname":
		c.session.Join(c.id, msg.Nickname)
	case "player-joined":
		c.session.UpsertPlayer(c.id, msg.Nickname, msg.Cards)
	case "start-game":
		c.session.Start()
	case "pause-game":
		c.session.Pause()
	case "resume-game":
		c.session.Resume()
	case "end-game":
		c.session.End()
	case "check-blackout":
		c.session.CheckBlackout(c.id, msg.Card, msg.Called)
	case "reset-game":
		c.session.Reset()
	default:
		c.hub.SendTo(c.id, game.Event{Type: game.EvtGameError, Payload: game.ErrorPayload{Message: "unknown message type"}})
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debugf("client %s write error: %v", c.id, err)
			return
		}
	}
}
