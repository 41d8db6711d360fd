package worker

import (
	"context"

	"hourline.app/server/internal/model"
	"hourline.app/server/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// EmailProcessor delivers one queued email.
type EmailProcessor interface {
	Process(ctx context.Context, msg model.EmailMessage) error
}
