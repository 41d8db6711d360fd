package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"

	"hourline.app/server/internal/model"
)

type Producer interface {
	Enqueue(ctx context.Context, msg model.EmailMessage) (string, error)
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

// Enqueue appends the email to the stream and returns the stream entry id.
func (p *redisProducer) Enqueue(ctx context.Context, msg model.EmailMessage) (string, error) {
	values, err := emailValues(msg, 1)
	if err != nil {
		return "", err
	}

	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		values[fieldTraceID] = sc.TraceID().String()
	}

	entryID, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: values,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("enqueue email: %w", err)
	}

	p.logger.InfoContext(ctx, "enqueued email", "message_id", entryID, "template", msg.Template, "stream", p.stream)
	return entryID, nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

func emailValues(msg model.EmailMessage, attempt int) (map[string]any, error) {
	if attempt <= 0 {
		attempt = 1
	}

	data := msg.Data
	if data == nil {
		data = map[string]string{}
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding email data: %w", err)
	}

	values := map[string]any{
		fieldTo:       msg.To,
		fieldTemplate: string(msg.Template),
		fieldData:     string(encoded),
		fieldAttempt:  attempt,
	}
	if msg.WorkspaceID != nil {
		values[fieldWorkspaceID] = *msg.WorkspaceID
	}
	return values, nil
}
