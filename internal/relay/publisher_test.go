package relay

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nats-io/nats.go"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- NATS ---

type mockJetStream struct {
	published []*nats.Msg
	fail      bool
}

func (m *mockJetStream) PublishMsg(msg *nats.Msg, opts ...nats.PubOpt) (*nats.PubAck, error) {
	if m.fail {
		return nil, errors.New("mock publish error")
	}
	m.published = append(m.published, msg)
	return &nats.PubAck{Stream: "mock-stream"}, nil
}

func testEvent(t *testing.T) Event {
	t.Helper()
	ev, ok := newEvent([]byte(`{"id":"WH-EVT-9","event_type":"PAYMENT.SALE.COMPLETED"}`))
	require.True(t, ok)
	return ev
}

func TestNATSPublisher_Publish(t *testing.T) {
	js := &mockJetStream{}
	p := &NATSPublisher{js: js, subject: "evt.paypal.webhook.v1", logger: zap.NewNop()}

	ev := testEvent(t)
	require.NoError(t, p.Publish(context.Background(), ev))

	require.Len(t, js.published, 1)
	msg := js.published[0]
	assert.Equal(t, "evt.paypal.webhook.v1", msg.Subject)
	assert.Equal(t, "WH-EVT-9", msg.Header.Get("event_id"))
	assert.Equal(t, "PAYMENT.SALE.COMPLETED", msg.Header.Get("event_type"))
	assert.Equal(t, ev.CorrelationID.String(), msg.Header.Get("correlation_id"))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Data, &decoded))
	assert.Equal(t, ev.ID, decoded.ID)
}

func TestNATSPublisher_PublishFailure(t *testing.T) {
	js := &mockJetStream{fail: true}
	p := &NATSPublisher{js: js, subject: "evt.paypal.webhook.v1", logger: zap.NewNop()}

	assert.Error(t, p.Publish(context.Background(), testEvent(t)))
}

// --- AMQP ---

type mockAMQPChannel struct {
	published []amqp.Publishing
	keys      []string
	fail      bool
}

func (m *mockAMQPChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if m.fail {
		return errors.New("mock publish error")
	}
	m.published = append(m.published, msg)
	m.keys = append(m.keys, key)
	return nil
}

func (m *mockAMQPChannel) Close() error { return nil }

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &mockAMQPChannel{}
	p := &AMQPPublisher{channel: ch, exchange: "paypal.events", routingKey: "evt.paypal.webhook.v1", logger: zap.NewNop()}

	ev := testEvent(t)
	require.NoError(t, p.Publish(context.Background(), ev))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "evt.paypal.webhook.v1", ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, "WH-EVT-9", msg.MessageId)
	assert.Equal(t, uint8(amqp.Persistent), msg.DeliveryMode)
}

func TestAMQPPublisher_PublishFailure(t *testing.T) {
	ch := &mockAMQPChannel{fail: true}
	p := &AMQPPublisher{channel: ch, exchange: "paypal.events", routingKey: "k", logger: zap.NewNop()}

	assert.Error(t, p.Publish(context.Background(), testEvent(t)))
}
