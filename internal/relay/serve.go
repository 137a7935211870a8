package relay

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
)

// Serve upgrades r and runs a client for origin until the connection closes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, origin, contextID string, originPatterns []string) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h, conn, origin, contextID)
	if !h.Register(client) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
