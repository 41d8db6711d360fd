package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"hourline.app/server/internal/http/dto"
	"hourline.app/server/internal/service"
)

type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Webhook stores a payment provider event. Redeliveries of a stored event are
// acknowledged without being recorded again.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid payment event")
		return
	}

	inserted, err := h.payments.Record(ctx, req.ID, req.Type, req.Data)
	if err != nil {
		respondError(c, err)
		return
	}
	if !inserted {
		slog.InfoContext(ctx, "duplicate payment event ignored", "event_id", req.ID)
	}

	c.JSON(http.StatusOK, dto.PaymentWebhookResponse{Received: true, Duplicate: !inserted})
}
