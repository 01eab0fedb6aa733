package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sitechat/internal/session"
)

const sessionCookie = "site_chat_session"

// sessionID returns the caller's session ID, issuing a fresh cookie on
// first contact.
func sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return id
}

// appendMessage records a transcript entry. A failed append loses one
// transcript line but must not fail the request that produced it.
func appendMessage(ctx context.Context, sessions session.Store, sid string, msg session.Message) {
	if err := sessions.Append(ctx, sid, msg); err != nil {
		log.Printf("[Chat] failed to record %s message for session %s: %v", msg.Role, sid, err)
	}
}

// GET /chat
func ChatPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "chat.html", gin.H{})
	}
}

// POST /chat/analyze — summarize a URL and cache its main text in the
// session for follow-up questions.
func ChatAnalyzeHandler(svc Analyzer, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := sessionID(c)

		var req struct {
			URL string `json:"url"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
			return
		}

		ctx := c.Request.Context()
		appendMessage(ctx, sessions, sid, session.Message{Role: "user", Content: req.URL, CreatedAt: time.Now()})

		res, pc := svc.Summarize(ctx, req.URL)

		if err := sessions.SetContent(ctx, sid, pc.MainText); err != nil {
			log.Printf("[Chat] failed to store session content: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store session content"})
			return
		}
		appendMessage(ctx, sessions, sid, session.Message{Role: "assistant", Content: res.Text, CreatedAt: time.Now()})

		c.JSON(http.StatusOK, gin.H{"analysis": res.Text})
	}
}

// POST /chat/ask — answer a question against the session's cached content.
func ChatAskHandler(svc Analyzer, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := sessionID(c)

		var req struct {
			Question string `json:"question"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
			return
		}

		ctx := c.Request.Context()
		content, err := sessions.Content(ctx, sid)
		if err != nil {
			if errors.Is(err, session.ErrNoContent) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Analyze a URL first."})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read session content"})
			}
			return
		}

		appendMessage(ctx, sessions, sid, session.Message{Role: "user", Content: req.Question, CreatedAt: time.Now()})
		res := svc.Answer(ctx, req.Question, content)
		appendMessage(ctx, sessions, sid, session.Message{Role: "assistant", Content: res.Text, CreatedAt: time.Now()})

		c.JSON(http.StatusOK, gin.H{"response": res.Text})
	}
}

// GET /chat/messages — the session transcript.
func ChatMessagesHandler(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := sessionID(c)
		history, err := sessions.History(c.Request.Context(), sid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch messages"})
			return
		}
		c.JSON(http.StatusOK, history)
	}
}

// DELETE /chat/messages — drop the transcript and cached content.
func ChatResetHandler(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := sessionID(c)
		if err := sessions.Clear(c.Request.Context(), sid); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cleared": true})
	}
}
