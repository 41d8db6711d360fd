package model

import (
	"encoding/json"
	"time"
)

type PaymentEvent struct {
	ID              int64           `json:"id"`
	ProviderEventID string          `json:"provider_event_id"`
	EventType       string          `json:"event_type"`
	Payload         json.RawMessage `json:"payload"`
	ReceivedAt      time.Time       `json:"received_at"`
}
