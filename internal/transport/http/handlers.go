// Package http holds the REST handlers for joining, inspecting and leaving calls.
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/dkeye/Multiview/internal/app"
	"github.com/dkeye/Multiview/internal/app/orch"
	"github.com/dkeye/Multiview/internal/core"
	"github.com/dkeye/Multiview/internal/domain"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const lastCallKey = "last_call"

type JoinRequest struct {
	ID string `json:"id"`
}

type CallResponse struct {
	Call     domain.Call   `json:"call"`
	Snapshot core.Snapshot `json:"snapshot"`
}

type WhoAmIResponse struct {
	ClientToken string `json:"client_token"`
	LastCall    string `json:"last_call,omitempty"`
}

type CallHandlers struct {
	// ctx bounds joined calls; request contexts end with the request.
	ctx context.Context
	bot *orch.Bot
}

func NewCallHandlers(ctx context.Context, bot *orch.Bot) *CallHandlers {
	return &CallHandlers{ctx: ctx, bot: bot}
}

func (h *CallHandlers) Register(r gin.IRoutes) {
	r.GET("/calls", h.list)
	r.POST("/calls", h.join)
	r.GET("/calls/:id", h.get)
	r.DELETE("/calls/:id", h.leave)
	r.GET("/whoami", h.whoami)
}

func (h *CallHandlers) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"calls": h.bot.List()})
}

func (h *CallHandlers) join(c *gin.Context) {
	var req JoinRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
	}

	sess, err := h.bot.JoinCall(h.ctx, domain.CallID(req.ID))
	switch {
	case errors.Is(err, app.ErrCallExists):
		c.JSON(http.StatusConflict, gin.H{"error": "call already joined"})
		return
	case err != nil:
		log.Error().Err(err).Str("module", "transport.http").Str("call", req.ID).Msg("join call")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "join failed"})
		return
	}

	call := sess.Call()
	s := sessions.Default(c)
	s.Set(lastCallKey, string(call.ID))
	if err := s.Save(); err != nil {
		log.Warn().Err(err).Str("module", "transport.http").Msg("session save")
	}

	c.JSON(http.StatusCreated, CallResponse{Call: call, Snapshot: sess.Snapshot()})
}

func (h *CallHandlers) get(c *gin.Context) {
	sess, ok := h.bot.Call(domain.CallID(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "call not found"})
		return
	}
	c.JSON(http.StatusOK, CallResponse{Call: sess.Call(), Snapshot: sess.Snapshot()})
}

func (h *CallHandlers) leave(c *gin.Context) {
	if !h.bot.EndCall(domain.CallID(c.Param("id"))) {
		c.JSON(http.StatusNotFound, gin.H{"error": "call not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CallHandlers) whoami(c *gin.Context) {
	resp := WhoAmIResponse{ClientToken: c.GetString("client_token")}
	if last, ok := sessions.Default(c).Get(lastCallKey).(string); ok {
		resp.LastCall = last
	}
	c.JSON(http.StatusOK, resp)
}
