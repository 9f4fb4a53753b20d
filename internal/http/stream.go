package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/quantum-forge/pkg/logger"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Stream handles GET /v1/games/{id}/stream. It pushes a GameView frame
// immediately and then once per stream interval until the client goes away.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	g, ok := h.game(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade stream", logger.F("game_id", g.ID()), logger.Err(err))
		return
	}
	defer conn.Close()

	// Inbound messages are ignored; reading only detects the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.cfg.StreamInterval)
	defer ticker.Stop()

	for {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(g.View()); err != nil {
			h.logger.Debug("Stream ended", logger.F("game_id", g.ID()), logger.Err(err))
			return
		}

		select {
		case <-r.Context().Done():
			return
		case <-closed:
			return
		case <-ticker.C:
		}
	}
}
