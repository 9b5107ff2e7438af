package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/debatehub/console/internal/archive"
)

func (h *Handler) RecentTranscripts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	ts, err := h.Archive.RecentTranscripts(c.Request.Context(), limit)
	if err != nil {
		Fail(c, http.StatusInternalServerError, 50002, "failed to list transcripts")
		return
	}

	Ok(c, gin.H{"transcripts": ts})
}

func (h *Handler) TranscriptRecords(c *gin.Context) {
	transcriptID := c.Param("transcript_id")
	limit, _ := strconv.Atoi(c.Query("limit"))

	recs, err := h.Archive.ListRecords(c.Request.Context(), transcriptID, limit)
	if err != nil {
		if archive.IsNotFound(err) {
			Fail(c, http.StatusNotFound, 40401, "transcript not found")
			return
		}
		Fail(c, http.StatusInternalServerError, 50002, "failed to list records")
		return
	}

	Ok(c, gin.H{"records": recs})
}
