package httpgin

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"posrelay/internal/broadcast"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Terminals on the restaurant LAN connect from arbitrary origins.
	CheckOrigin: func(*http.Request) bool { return true },
}

// handleWS upgrades a POS terminal connection and wires it into the
// broadcast topic for its whole lifetime: everything published is written
// out, every inbound frame is re-published verbatim.
func handleWS(hub *broadcast.Hub, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the failure response.
			logger.Warn("websocket upgrade failed", "remote", c.Request.RemoteAddr, "error", err)
			return
		}

		sub := hub.Subscribe(c.Request.RemoteAddr)

		go writePump(conn, sub, logger)
		readPump(c.Request.Context(), conn, hub, sub, logger)
	}
}

// readPump relays inbound frames to the topic until the peer goes away,
// then detaches the subscriber.
func readPump(
	ctx context.Context,
	conn *websocket.Conn,
	hub *broadcast.Hub,
	sub *broadcast.Subscriber,
	logger *slog.Logger,
) {
	defer func() {
		hub.Unsubscribe(sub)
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("websocket read error", "client_id", sub.Info().ID, "error", err)
			}
			return
		}

		if err := hub.Publish(ctx, msg); err != nil {
			logger.Warn("relay publish failed", "client_id", sub.Info().ID, "error", err)
		}
	}
}

// writePump drains the subscriber channel onto the wire and keeps the
// connection alive with pings.
func writePump(conn *websocket.Conn, sub *broadcast.Subscriber, logger *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case payload, ok := <-sub.C():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
