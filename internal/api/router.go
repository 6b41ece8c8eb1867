package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dzmarket/payment-engine/internal/handlers"
	"github.com/dzmarket/payment-engine/internal/service"
	"github.com/dzmarket/payment-engine/internal/shipping"
	"github.com/dzmarket/payment-engine/internal/telemetry"
	"github.com/dzmarket/payment-engine/internal/verification"
)

func NewRouter(orchestrator *service.Orchestrator, engine *shipping.Engine, verifications *verification.Manager) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(telemetry.Middleware())

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "payment-engine"})
	})

	paymentHandler := handlers.NewPaymentHandler(orchestrator)
	r.POST("/payments/process", paymentHandler.ProcessPayment)
	r.GET("/payments", paymentHandler.ListTransactions)
	r.GET("/payments/methods", paymentHandler.ListMethods)
	r.POST("/payments/validate", paymentHandler.ValidateMethod)
	r.GET("/payments/:id", paymentHandler.GetTransaction)
	r.POST("/payments/:id/cancel", paymentHandler.Cancel)
	r.GET("/security/status", paymentHandler.SecurityStatus)

	verificationHandler := handlers.NewVerificationHandler(verifications)
	r.POST("/payments/:id/verify/start", verificationHandler.Start)
	r.POST("/payments/:id/verify", verificationHandler.Submit)
	r.POST("/payments/:id/verify/resend", verificationHandler.Resend)

	shippingHandler := handlers.NewShippingHandler(engine)
	r.GET("/shipping/rates", shippingHandler.GetRates)
	r.GET("/shipping/cost", shippingHandler.GetCost)

	return r
}
