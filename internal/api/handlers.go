package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GET /
func IndexHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{})
	}
}

// wantsJSON reports whether the client expects a JSON reply instead of a
// rendered page (AJAX form submissions and API clients).
func wantsJSON(c *gin.Context) bool {
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	if strings.Contains(c.ContentType(), "application/json") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

// POST /analyze — form or JSON body carrying the URL to summarize.
func AnalyzeHandler(svc Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		url := c.PostForm("url")
		if url == "" && strings.Contains(c.ContentType(), "application/json") {
			var req struct {
				URL string `json:"url"`
			}
			if err := c.ShouldBindJSON(&req); err == nil {
				url = req.URL
			}
		}

		if url == "" {
			if wantsJSON(c) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
			} else {
				c.HTML(http.StatusBadRequest, "index.html", gin.H{"error": "URL is required"})
			}
			return
		}

		res, _ := svc.Summarize(c.Request.Context(), url)

		if wantsJSON(c) {
			c.JSON(http.StatusOK, gin.H{"analysis": res.Text})
			return
		}
		c.HTML(http.StatusOK, "index.html", gin.H{"analysis": res.Text, "url": url})
	}
}

// POST /ask — stateless question answering: the body names the URL, the
// handler re-derives its content and answers against it.
func AskHandler(svc Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Question string `json:"question"`
			URL      string `json:"url"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" || req.URL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Both question and URL are required."})
			return
		}

		content, err := svc.Content(c.Request.Context(), req.URL)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not extract content from the URL."})
			return
		}

		res := svc.Answer(c.Request.Context(), req.Question, content)
		c.JSON(http.StatusOK, gin.H{"response": res.Text})
	}
}
