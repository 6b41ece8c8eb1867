package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dzmarket/payment-engine/internal/models"
	"github.com/dzmarket/payment-engine/internal/service"
	"github.com/dzmarket/payment-engine/internal/telemetry"
)

type PaymentHandler struct {
	orchestrator *service.Orchestrator
}

func NewPaymentHandler(orchestrator *service.Orchestrator) *PaymentHandler {
	return &PaymentHandler{orchestrator: orchestrator}
}

type processPaymentRequest struct {
	OrderID string                `json:"order_id" binding:"required"`
	Amount  float64               `json:"amount" binding:"required,gt=0"`
	Method  string                `json:"method" binding:"required"`
	Details models.PaymentDetails `json:"details"`
}

func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req processPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	method, err := models.ParsePaymentMethod(req.Method)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.orchestrator.ProcessPayment(c.Request.Context(), req.OrderID, req.Amount, method, req.Details)
	if !result.Success {
		telemetry.Logger.Warn("Payment rejected",
			zap.String("order_id", req.OrderID),
			zap.String("error_kind", result.ErrorKind),
		)
		c.JSON(statusForKind(result.ErrorKind), result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) GetTransaction(c *gin.Context) {
	tx := h.orchestrator.GetTransaction(c.Param("id"))
	if tx == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *PaymentHandler) ListTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"transactions": h.orchestrator.ListTransactions()})
}

func (h *PaymentHandler) Cancel(c *gin.Context) {
	err := h.orchestrator.Cancel(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
	case errors.Is(err, models.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "transaction is already final"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel transaction"})
	}
}

func (h *PaymentHandler) ListMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"methods": models.MethodCatalog()})
}

type validateRequest struct {
	Method  string                `json:"method" binding:"required"`
	Details models.PaymentDetails `json:"details"`
}

func (h *PaymentHandler) ValidateMethod(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	method, err := models.ParsePaymentMethod(req.Method)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": h.orchestrator.ValidateMethod(method, req.Details)})
}

func (h *PaymentHandler) SecurityStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.orchestrator.SecurityStatus())
}

// statusForKind maps engine error kinds to HTTP statuses.
func statusForKind(kind string) int {
	switch kind {
	case models.KindValidationFailed:
		return http.StatusBadRequest
	case models.KindLimitExceeded:
		return http.StatusUnprocessableEntity
	case models.KindAccountLocked:
		return http.StatusLocked
	case models.KindGatewayDeclined:
		return http.StatusPaymentRequired
	case models.KindDuplicateRequest:
		return http.StatusConflict
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindVerificationMismatch, models.KindVerificationExhausted:
		return http.StatusForbidden
	default:
		return http.StatusBadGateway
	}
}
