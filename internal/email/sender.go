package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/resend/resend-go/v2"

	"hourline.app/server/core/config"
	"hourline.app/server/internal/model"
)

var ErrRateLimited = errors.New("email api rate limited")

// Sender delivers a queued email and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, msg model.EmailMessage) (string, error)
}

type ResendSender struct {
	client  *resend.Client
	from    string
	replyTo string
}

type ResendOption func(*ResendSender) error

// WithBaseURL points the client at another Resend compatible endpoint.
func WithBaseURL(raw string) ResendOption {
	return func(s *ResendSender) error {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("parsing resend base url: %w", err)
		}
		if u.Path == "" || u.Path[len(u.Path)-1] != '/' {
			u.Path += "/"
		}
		s.client.BaseURL = u
		return nil
	}
}

func NewResendSender(cfg config.EmailConfig, opts ...ResendOption) (*ResendSender, error) {
	if !cfg.Enabled() {
		return nil, errors.New("resend api key is not configured")
	}
	s := &ResendSender{
		client:  resend.NewClient(cfg.ResendAPIKey),
		from:    cfg.From,
		replyTo: cfg.ReplyTo,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *ResendSender) Send(ctx context.Context, msg model.EmailMessage) (string, error) {
	rendered, err := Render(msg.Template, msg.Data)
	if err != nil {
		return "", err
	}

	req := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: rendered.Subject,
		Html:    rendered.HTML,
		Text:    rendered.Text,
		Tags:    []resend.Tag{{Name: "template", Value: string(msg.Template)}},
	}
	if s.replyTo != "" {
		req.ReplyTo = s.replyTo
	}
	if msg.WorkspaceID != nil {
		req.Tags = append(req.Tags, resend.Tag{Name: "workspace_id", Value: strconv.FormatInt(*msg.WorkspaceID, 10)})
	}

	resp, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		if errors.Is(err, resend.ErrRateLimit) {
			return "", fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return "", fmt.Errorf("sending %s email: %w", msg.Template, err)
	}

	slog.DebugContext(ctx, "email accepted by resend", "resend_id", resp.Id, "template", msg.Template)
	return resp.Id, nil
}
