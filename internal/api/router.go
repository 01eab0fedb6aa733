package api

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"

	"sitechat/internal/analysis"
	"sitechat/internal/extract"
	"sitechat/internal/session"
)

// Analyzer is the front ends' view of the analysis service. An interface
// so handler tests can substitute a fake.
type Analyzer interface {
	Summarize(ctx context.Context, url string) (analysis.Result, extract.PageContent)
	Answer(ctx context.Context, question, content string) analysis.Result
	Content(ctx context.Context, url string) (string, error)
}

func SetupRouter(svc Analyzer, sessions session.Store) *gin.Engine {
	r := gin.Default()

	if files := existingFiles("./frontend/index.html", "./frontend/chat.html"); len(files) > 0 {
		r.LoadHTMLFiles(files...)
	}
	r.Static("/css", "./frontend/css")

	r.GET("/", IndexHandler())
	r.GET("/health", healthHandler)

	// Form front end (stateless)
	r.POST("/analyze", AnalyzeHandler(svc))
	r.POST("/ask", AskHandler(svc))

	// Chat front end (session-scoped transcript + cached content)
	r.GET("/chat", ChatPageHandler())
	r.POST("/chat/analyze", ChatAnalyzeHandler(svc, sessions))
	r.POST("/chat/ask", ChatAskHandler(svc, sessions))
	r.GET("/chat/messages", ChatMessagesHandler(sessions))
	r.DELETE("/chat/messages", ChatResetHandler(sessions))

	// WebSocket variant of the chat front end
	r.GET("/ws/chat", WSChatHandler(svc, sessions))

	return r
}

// existingFiles filters out template paths that are absent, so the router
// can also be built from test working directories.
func existingFiles(paths ...string) []string {
	var out []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}
