package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dzmarket/payment-engine/internal/models"
	"github.com/dzmarket/payment-engine/internal/shipping"
)

type ShippingHandler struct {
	engine *shipping.Engine
}

func NewShippingHandler(engine *shipping.Engine) *ShippingHandler {
	return &ShippingHandler{engine: engine}
}

func (h *ShippingHandler) GetRates(c *gin.Context) {
	wilaya := c.Query("wilaya")
	if wilaya == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wilaya is required"})
		return
	}
	weight := queryFloat(c, "weight", 1)
	value := queryFloat(c, "value", 0)

	c.JSON(http.StatusOK, gin.H{"rates": h.engine.RatesForWilaya(wilaya, weight, value)})
}

func (h *ShippingHandler) GetCost(c *gin.Context) {
	wilaya := c.Query("wilaya")
	method := c.Query("method")
	if wilaya == "" || method == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "method and wilaya are required"})
		return
	}
	weight := queryFloat(c, "weight", 1)
	value := queryFloat(c, "value", 0)

	cost := h.engine.CalculateCost(models.ShippingMethod(method), wilaya, weight, value)
	c.JSON(http.StatusOK, gin.H{
		"cost":      cost,
		"available": cost != shipping.CostUnavailable,
	})
}

func queryFloat(c *gin.Context, key string, fallback float64) float64 {
	if v := c.Query(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
