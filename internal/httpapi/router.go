// Package httpapi serves the localhost observer API: a read/compose
// surface over the running session for scripts and local tooling.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/debatehub/console/internal/httpapi/handlers"
)

func NewRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	r.GET("/healthz", h.Healthz)

	r.GET("/session", h.GetSession)
	r.GET("/session/messages", h.ListMessages)
	r.POST("/session/messages", h.Compose)
	r.PATCH("/session/status", h.UpdateStatus)

	r.GET("/archive/transcripts", h.RecentTranscripts)
	r.GET("/archive/transcripts/:transcript_id/records", h.TranscriptRecords)

	return r
}
