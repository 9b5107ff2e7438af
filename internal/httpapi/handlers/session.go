package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/debatehub/console/internal/debate"
	"github.com/debatehub/console/internal/session"
)

func (h *Handler) GetSession(c *gin.Context) {
	deb := h.Session.Debate()
	participant, confirmed := h.Session.Participant()

	resp := gin.H{
		"debate":          deb,
		"channel":         h.Channel.State().String(),
		"roster_state":    h.Session.RosterState().String(),
		"compose_allowed": h.Session.ComposeAllowed(),
		"message_count":   h.Session.Len(),
	}
	if confirmed {
		resp["participant"] = participant
	}
	if notice := h.Session.Notice(); notice != "" {
		resp["notice"] = notice
	}
	Ok(c, resp)
}

func (h *Handler) ListMessages(c *gin.Context) {
	msgs := h.Session.Messages()

	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit > 0 && limit < len(msgs) {
		msgs = msgs[len(msgs)-limit:]
	}

	Ok(c, gin.H{
		"messages": msgs,
		"total":    h.Session.Len(),
	})
}

type composeReq struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) Compose(c *gin.Context) {
	var req composeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	if err := h.Session.Send(req.Content); err != nil {
		switch {
		case errors.Is(err, session.ErrEmptyContent):
			Fail(c, http.StatusBadRequest, 10002, "content is empty")
		case errors.Is(err, session.ErrComposeDisabled):
			msg := h.Session.Notice()
			if msg == "" {
				msg = "composing is not permitted"
			}
			Fail(c, http.StatusConflict, 40901, msg)
		case errors.Is(err, session.ErrClosed):
			Fail(c, http.StatusGone, 41001, "session closed")
		default:
			Fail(c, http.StatusInternalServerError, 50001, "internal error")
		}
		return
	}

	Ok(c, gin.H{"accepted": true})
}

type statusReq struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	next := debate.Status(req.Status)
	if !next.Valid() {
		Fail(c, http.StatusBadRequest, 10003, "unknown status")
		return
	}

	if err := h.Session.UpdateStatus(c.Request.Context(), next); err != nil {
		switch {
		case errors.Is(err, session.ErrNotCreator):
			Fail(c, http.StatusForbidden, 40301, "only the debate creator may change status")
		case errors.Is(err, session.ErrBadTransition):
			Fail(c, http.StatusConflict, 40902, "illegal status transition")
		case errors.Is(err, session.ErrClosed):
			Fail(c, http.StatusGone, 41001, "session closed")
		default:
			Fail(c, http.StatusBadGateway, 50201, "status update failed")
		}
		return
	}

	Ok(c, gin.H{"status": h.Session.Status()})
}
