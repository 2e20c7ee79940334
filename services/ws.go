package services

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/bingolive/backend/game"
	"github.com/bingolive/backend/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict this in production to the frontend origin
		return true
	},
}

// HandleWebSocket upgrades the connection and attaches it to the session.
func HandleWebSocket(hub *Hub, session *game.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Errorf("websocket upgrade: %v", err)
			return
		}

		client := &Client{
			id:      uuid.NewString(),
			conn:    conn,
			hub:     hub,
			session: session,
			send:    make(chan []byte, 32),
		}
		hub.add(client)

		go client.writePump()
		go client.readPump()

		logger.Infof("user connected: %s", client.id)
	}
}
