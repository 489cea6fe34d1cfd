package messaging_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlink-demo/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSubscriber struct {
	messages     chan *message.Message
	subscribeErr error
	topic        string
	closed       bool
}

func newMockSubscriber() *mockSubscriber {
	return &mockSubscriber{messages: make(chan *message.Message, 10)}
}

func (m *mockSubscriber) Subscribe(_ context.Context, topic string) (<-chan *message.Message, error) {
	if m.subscribeErr != nil {
		return nil, m.subscribeErr
	}

	m.topic = topic

	return m.messages, nil
}

func (m *mockSubscriber) Close() error {
	m.closed = true

	return nil
}

type consumerTestEvent struct {
	ID string `json:"id"`
}

func waitAcked(t *testing.T, msg *message.Message) {
	t.Helper()

	select {
	case <-msg.Acked():
	case <-time.After(time.Second):
		t.Fatal("message was not acked in time")
	}
}

func waitNacked(t *testing.T, msg *message.Message) {
	t.Helper()

	select {
	case <-msg.Nacked():
	case <-time.After(time.Second):
		t.Fatal("message was not nacked in time")
	}
}

func TestConsumer(t *testing.T) {
	t.Run("processes and acks a valid message", func(t *testing.T) {
		sub := newMockSubscriber()
		received := make(chan *consumerTestEvent, 1)

		consumer := messaging.NewConsumer(sub, "test.topic", func(_ context.Context, event *consumerTestEvent) error {
			received <- event

			return nil
		}, zap.NewNop())

		require.NoError(t, consumer.Start(context.Background()))

		defer func() { _ = consumer.Shutdown() }()

		msg := message.NewMessage(watermill.NewUUID(), []byte(`{"id":"123"}`))
		sub.messages <- msg

		waitAcked(t, msg)

		event := <-received
		assert.Equal(t, "123", event.ID)
		assert.Equal(t, "test.topic", sub.topic)
	})

	t.Run("nacks message with invalid payload", func(t *testing.T) {
		sub := newMockSubscriber()

		consumer := messaging.NewConsumer(sub, "test.topic", func(_ context.Context, _ *consumerTestEvent) error {
			t.Error("handler should not be called for invalid payload")

			return nil
		}, zap.NewNop())

		require.NoError(t, consumer.Start(context.Background()))

		defer func() { _ = consumer.Shutdown() }()

		msg := message.NewMessage(watermill.NewUUID(), []byte(`not json`))
		sub.messages <- msg

		waitNacked(t, msg)
	})

	t.Run("nacks message when handler fails", func(t *testing.T) {
		sub := newMockSubscriber()

		consumer := messaging.NewConsumer(sub, "test.topic", func(_ context.Context, _ *consumerTestEvent) error {
			return errors.New("handler error")
		}, zap.NewNop())

		require.NoError(t, consumer.Start(context.Background()))

		defer func() { _ = consumer.Shutdown() }()

		msg := message.NewMessage(watermill.NewUUID(), []byte(`{"id":"123"}`))
		sub.messages <- msg

		waitNacked(t, msg)
	})

	t.Run("returns error when subscribe fails", func(t *testing.T) {
		sub := newMockSubscriber()
		sub.subscribeErr = errors.New("subscribe error")

		consumer := messaging.NewConsumer(sub, "test.topic", func(_ context.Context, _ *consumerTestEvent) error {
			return nil
		}, zap.NewNop())

		assert.Error(t, consumer.Start(context.Background()))
	})

	t.Run("exposes its topic", func(t *testing.T) {
		consumer := messaging.NewConsumer(newMockSubscriber(), "test.topic", func(_ context.Context, _ *consumerTestEvent) error {
			return nil
		}, zap.NewNop())

		assert.Equal(t, "test.topic", consumer.Topic())
	})
}
