package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"hourline.app/server/common/id"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/store"
)

var ErrInvalidPaymentEvent = errors.New("payment event needs an id and a type")

type PaymentService interface {
	// Record stores a webhook event. It reports false when the event id was already recorded.
	Record(ctx context.Context, eventID, eventType string, payload json.RawMessage) (bool, error)
}

type paymentService struct {
	eventStore store.PaymentEventStore
}

func NewPaymentService(eventStore store.PaymentEventStore) PaymentService {
	return &paymentService{eventStore: eventStore}
}

func (s *paymentService) Record(ctx context.Context, eventID, eventType string, payload json.RawMessage) (bool, error) {
	eventID = strings.TrimSpace(eventID)
	eventType = strings.TrimSpace(eventType)
	if eventID == "" || eventType == "" {
		return false, ErrInvalidPaymentEvent
	}
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	event := &model.PaymentEvent{
		ID:              id.New(),
		ProviderEventID: eventID,
		EventType:       eventType,
		Payload:         payload,
	}
	inserted, err := s.eventStore.Insert(ctx, event)
	if err != nil {
		return false, fmt.Errorf("recording payment event: %w", err)
	}

	if !inserted {
		slog.InfoContext(ctx, "duplicate payment event ignored", "event_id", eventID, "event_type", eventType)
		return false, nil
	}
	slog.InfoContext(ctx, "payment event recorded", "event_id", eventID, "event_type", eventType)
	return true, nil
}
