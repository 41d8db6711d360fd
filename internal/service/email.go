package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"hourline.app/server/internal/model"
	"hourline.app/server/internal/observability"
)

var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrUnknownTemplate = errors.New("unknown email template")
)

// EmailQueue is the outbound email stream. queue.Producer satisfies it.
type EmailQueue interface {
	Enqueue(ctx context.Context, msg model.EmailMessage) (string, error)
}

type EmailService interface {
	Enqueue(ctx context.Context, msg model.EmailMessage) error
}

type emailService struct {
	queue EmailQueue
}

func NewEmailService(queue EmailQueue) EmailService {
	return &emailService{queue: queue}
}

func (s *emailService) Enqueue(ctx context.Context, msg model.EmailMessage) error {
	to, err := normalizeEmail(msg.To)
	if err != nil {
		return err
	}
	if !msg.Template.Valid() {
		return ErrUnknownTemplate
	}
	msg.To = to

	messageID, err := s.queue.Enqueue(ctx, msg)
	if err != nil {
		return fmt.Errorf("enqueueing %s email: %w", msg.Template, err)
	}
	observability.RecordEmailEnqueued(string(msg.Template))

	slog.DebugContext(ctx, "email queued",
		"message_id", messageID,
		"template", msg.Template,
	)
	return nil
}

// normalizeEmail lower-cases a bare address and rejects display-name forms.
func normalizeEmail(raw string) (string, error) {
	addr := strings.ToLower(strings.TrimSpace(raw))
	if addr == "" {
		return "", ErrInvalidEmail
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return "", ErrInvalidEmail
	}
	return addr, nil
}
