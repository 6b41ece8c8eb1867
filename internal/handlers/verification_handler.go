package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dzmarket/payment-engine/internal/models"
	"github.com/dzmarket/payment-engine/internal/telemetry"
	"github.com/dzmarket/payment-engine/internal/verification"
)

type VerificationHandler struct {
	manager *verification.Manager
}

func NewVerificationHandler(manager *verification.Manager) *VerificationHandler {
	return &VerificationHandler{manager: manager}
}

type startVerificationRequest struct {
	Channel     string `json:"channel" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

func (h *VerificationHandler) Start(c *gin.Context) {
	var req startVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	txID := c.Param("id")
	err := h.manager.Start(c.Request.Context(), txID, models.VerificationChannel(req.Channel), req.Destination)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": verification.StateCodeSent})
}

type submitCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *VerificationHandler) Submit(c *gin.Context) {
	var req submitCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	txID := c.Param("id")
	if err := h.manager.Submit(c.Request.Context(), txID, req.Code); err != nil {
		telemetry.VerificationFailuresTotal.Inc()
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": verification.StateVerified})
}

func (h *VerificationHandler) Resend(c *gin.Context) {
	if err := h.manager.Resend(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": verification.StateCodeSent})
}

func (h *VerificationHandler) writeError(c *gin.Context, err error) {
	kind := models.ErrorKind(err)
	status := statusForKind(kind)
	switch {
	case errors.Is(err, models.ErrResendCooldown):
		status = http.StatusTooManyRequests
	case errors.Is(err, models.ErrChannelUnavailable), errors.Is(err, verification.ErrNotAwaitingCode):
		status = http.StatusConflict
	}
	if errors.Is(err, verification.ErrNotAwaitingCode) {
		kind = models.KindValidationFailed
	}

	body := gin.H{"error": err.Error(), "error_kind": kind}
	if state, ok := h.manager.State(c.Param("id")); ok {
		body["state"] = state
	}
	c.JSON(status, body)
}
