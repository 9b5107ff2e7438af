package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/debatehub/console/internal/archive"
	"github.com/debatehub/console/internal/channel"
	"github.com/debatehub/console/internal/session"
)

// ChannelStater reports the live channel's connection state.
type ChannelStater interface {
	State() channel.State
}

type Handler struct {
	Session *session.Session
	Channel ChannelStater
	Archive *archive.Repo
}

func NewHandler(sess *session.Session, ch ChannelStater, arch *archive.Repo) *Handler {
	return &Handler{Session: sess, Channel: ch, Archive: arch}
}

func Ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "ok",
		"data":    data,
	})
}

func Fail(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
		"data":    nil,
	})
}

func (h *Handler) Healthz(c *gin.Context) {
	Ok(c, gin.H{"channel": h.Channel.State().String()})
}
