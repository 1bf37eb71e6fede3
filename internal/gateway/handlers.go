package gateway

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
)

// maxBodyBytes caps the size of a /chat request body.
const maxBodyBytes = 1 << 20

func (g *Gateway) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// An unreadable body is treated like a missing message.
		g.logger.Debug("undecodable chat body", "error", err)
		req = ChatRequest{}
	}

	status, payload := g.HandleChat(r.Context(), req)
	writeJSON(w, status, payload)
}

// wsResponse is the outgoing WebSocket frame. It carries the HTTP status the
// same request would have received on POST /chat.
type wsResponse struct {
	Status int `json:"status"`
	ChatResponse
}

func (g *Gateway) upgrader() websocket.Upgrader {
	return websocket.Upgrader{CheckOrigin: g.checkOrigin}
}

func (g *Gateway) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(g.allowedOrigins) == 0 {
		return true
	}
	for _, allowed := range g.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

func (g *Gateway) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	up := g.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.logger.Warn("websocket read failed", "error", err)
			}
			return
		}

		var req ChatRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			req = ChatRequest{}
		}

		status, payload := g.HandleChat(r.Context(), req)
		if err := conn.WriteJSON(wsResponse{Status: status, ChatResponse: payload}); err != nil {
			g.logger.Warn("websocket write failed", "error", err)
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
