package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"sitechat/internal/session"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsRequest struct {
	Type     string `json:"type"` // "analyze" or "ask"
	URL      string `json:"url,omitempty"`
	Question string `json:"question,omitempty"`
}

type wsReply struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// WSChatHandler is the WebSocket variant of the chat front end. Each
// client message is answered with one whole assistant message; there is
// no token streaming.
func WSChatHandler(svc Analyzer, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Resolve the session before the upgrade; headers cannot be set
		// afterwards. A connection without a cookie gets an ephemeral ID.
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
		}

		conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		ctx := c.Request.Context()
		for {
			var req wsRequest
			if err := conn.ReadJSON(&req); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Printf("[WS] read failed: %v", err)
				}
				return
			}

			switch req.Type {
			case "analyze":
				if req.URL == "" {
					conn.WriteJSON(map[string]string{"error": "URL is required"})
					continue
				}
				appendMessage(ctx, sessions, sid, session.Message{Role: "user", Content: req.URL, CreatedAt: time.Now()})
				res, pc := svc.Summarize(ctx, req.URL)
				if err := sessions.SetContent(ctx, sid, pc.MainText); err != nil {
					log.Printf("[WS] failed to store session content: %v", err)
					conn.WriteJSON(map[string]string{"error": "failed to store session content"})
					continue
				}
				appendMessage(ctx, sessions, sid, session.Message{Role: "assistant", Content: res.Text, CreatedAt: time.Now()})
				conn.WriteJSON(wsReply{Role: "assistant", Content: res.Text})

			case "ask":
				if req.Question == "" {
					conn.WriteJSON(map[string]string{"error": "question is required"})
					continue
				}
				content, err := sessions.Content(ctx, sid)
				if err != nil {
					if errors.Is(err, session.ErrNoContent) {
						conn.WriteJSON(map[string]string{"error": "Analyze a URL first."})
					} else {
						conn.WriteJSON(map[string]string{"error": "failed to read session content"})
					}
					continue
				}
				appendMessage(ctx, sessions, sid, session.Message{Role: "user", Content: req.Question, CreatedAt: time.Now()})
				res := svc.Answer(ctx, req.Question, content)
				appendMessage(ctx, sessions, sid, session.Message{Role: "assistant", Content: res.Text, CreatedAt: time.Now()})
				conn.WriteJSON(wsReply{Role: "assistant", Content: res.Text})

			default:
				conn.WriteJSON(map[string]string{"error": "unknown message type"})
			}
		}
	}
}
