// Package handler exposes the inbound HTTP surface: the Twilio WhatsApp
// webhook, a health probe and a read-only inventory API for the dashboard.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Pilot202/skylit-logistic-backend/internal/core/service"
)

// historyLimit caps how many movements the transactions endpoint returns.
const historyLimit = 50

// pipelineTimeout bounds one background pipeline run. Twilio gets its ACK
// immediately; the pipeline finishes on its own clock.
const pipelineTimeout = 60 * time.Second

type HTTPHandler struct {
	pipeline  *service.MessagePipeline
	inventory *service.InventoryService
	logger    *zap.Logger
}

func NewHTTPHandler(pipeline *service.MessagePipeline, inventory *service.InventoryService, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{pipeline: pipeline, inventory: inventory, logger: logger}
}

func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/webhook/twilio", h.TwilioWebhook)

	api := r.Group("/api")
	{
		api.GET("/inventory", h.Inventory)
		api.GET("/inventory/:sku/transactions", h.Transactions)
	}
}

func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Skylit WhatsApp Bot running"})
}

// TwilioWebhook acks immediately and runs the pipeline in the background so
// Twilio never times out waiting on the model or the store.
func (h *HTTPHandler) TwilioWebhook(c *gin.Context) {
	sender := c.PostForm("From")
	body := c.PostForm("Body")

	if sender == "" || body == "" {
		c.String(http.StatusOK, "Ignored")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
		defer cancel()
		h.pipeline.Handle(ctx, sender, body)
	}()

	c.String(http.StatusOK, "OK")
}

// Inventory returns the full listing, or a filtered one when ?q= is given.
func (h *HTTPHandler) Inventory(c *gin.Context) {
	var (
		items any
		err   error
	)
	if q := c.Query("q"); q != "" {
		items, err = h.inventory.Search(c.Request.Context(), q)
	} else {
		items, err = h.inventory.List(c.Request.Context())
	}
	if err != nil {
		h.logger.Error("inventory read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read inventory"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Transactions returns the recent movements for one product.
func (h *HTTPHandler) Transactions(c *gin.Context) {
	sku := strings.ToUpper(c.Param("sku"))

	txns, err := h.inventory.History(c.Request.Context(), sku, historyLimit)
	if errors.Is(err, service.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		h.logger.Error("transaction read failed", zap.String("sku", sku), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read transactions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sku": sku, "transactions": txns})
}
