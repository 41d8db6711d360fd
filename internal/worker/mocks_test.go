package worker_test

import (
	"context"
	"sync"

	"hourline.app/server/internal/model"
	"hourline.app/server/internal/queue"
)

type settled struct {
	msg    queue.Message
	errMsg string
}

type mockConsumer struct {
	mu       sync.Mutex
	batches  [][]queue.Message
	readErr  error
	ackErr   error
	acked    []queue.Message
	requeued []settled
	dlq      []settled
}

func (m *mockConsumer) Read(ctx context.Context) ([]queue.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	if len(m.batches) == 0 {
		return nil, nil
	}
	batch := m.batches[0]
	m.batches = m.batches[1:]
	return batch, nil
}

func (m *mockConsumer) Ack(ctx context.Context, msg queue.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ackErr != nil {
		return m.ackErr
	}
	m.acked = append(m.acked, msg)
	return nil
}

func (m *mockConsumer) Requeue(ctx context.Context, msg queue.Message, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requeued = append(m.requeued, settled{msg: msg, errMsg: errMsg})
	return nil
}

func (m *mockConsumer) SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dlq = append(m.dlq, settled{msg: msg, errMsg: errMsg})
	return nil
}

func (m *mockConsumer) ackedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.acked)
}

type mockProcessor struct {
	processFn func(ctx context.Context, msg model.EmailMessage) error
}

func (m *mockProcessor) Process(ctx context.Context, msg model.EmailMessage) error {
	if m.processFn != nil {
		return m.processFn(ctx, msg)
	}
	return nil
}

type mockSender struct {
	sendFn func(ctx context.Context, msg model.EmailMessage) (string, error)
	sent   []model.EmailMessage
}

func (m *mockSender) Send(ctx context.Context, msg model.EmailMessage) (string, error) {
	m.sent = append(m.sent, msg)
	if m.sendFn != nil {
		return m.sendFn(ctx, msg)
	}
	return "re_1", nil
}
