package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hourline.app/server/core/db/sqlc"
	"hourline.app/server/internal/model"
)

type paymentEventStore struct {
	queries *sqlc.Queries
}

func newPaymentEventStore(queries *sqlc.Queries) PaymentEventStore {
	return &paymentEventStore{queries: queries}
}

func (s *paymentEventStore) Insert(ctx context.Context, event *model.PaymentEvent) (bool, error) {
	row, err := s.queries.InsertPaymentEvent(ctx, sqlc.InsertPaymentEventParams{
		ID:              event.ID,
		ProviderEventID: event.ProviderEventID,
		EventType:       event.EventType,
		Payload:         event.Payload,
	})
	if err != nil {
		// ON CONFLICT DO NOTHING returns no row for a duplicate.
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, mapErr(err)
	}
	*event = model.PaymentEvent{
		ID:              row.ID,
		ProviderEventID: row.ProviderEventID,
		EventType:       row.EventType,
		Payload:         row.Payload,
		ReceivedAt:      row.ReceivedAt.Time,
	}
	return true, nil
}
