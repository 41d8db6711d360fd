package dto

import "encoding/json"

// PaymentWebhookRequest is the envelope every payment provider event arrives in.
type PaymentWebhookRequest struct {
	ID   string          `json:"id" binding:"required"`
	Type string          `json:"type" binding:"required"`
	Data json.RawMessage `json:"data"`
}

type PaymentWebhookResponse struct {
	Received  bool `json:"received"`
	Duplicate bool `json:"duplicate"`
}
