package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hourline.app/server/internal/email"
	"hourline.app/server/internal/model"
)

// ErrPermanent marks failures that go straight to the DLQ.
var ErrPermanent = errors.New("permanent delivery failure")

type Processor struct {
	sender email.Sender
}

func NewProcessor(sender email.Sender) *Processor {
	return &Processor{sender: sender}
}

func (p *Processor) Process(ctx context.Context, msg model.EmailMessage) error {
	resendID, err := p.sender.Send(ctx, msg)
	if err != nil {
		if errors.Is(err, email.ErrRender) {
			return fmt.Errorf("%w: %w", ErrPermanent, err)
		}
		return err
	}

	slog.InfoContext(ctx, "email delivered",
		"template", msg.Template,
		"resend_id", resendID)
	return nil
}

// DryRunSender renders emails and logs them instead of calling the email API.
// Local workers without a Resend key use it.
type DryRunSender struct{}

func (DryRunSender) Send(ctx context.Context, msg model.EmailMessage) (string, error) {
	rendered, err := email.Render(msg.Template, msg.Data)
	if err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "dry run: email not sent",
		"to", msg.To,
		"template", msg.Template,
		"subject", rendered.Subject)
	slog.DebugContext(ctx, "dry run: email body", "text", rendered.Text)
	return "dry-run", nil
}
