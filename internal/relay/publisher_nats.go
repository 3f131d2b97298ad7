package relay

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/lumapay/paypal-adapter/internal/metrics"
)

// jetStream is the slice of nats.JetStreamContext the publisher needs.
type jetStream interface {
	PublishMsg(msg *nats.Msg, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// NATSPublisher publishes event envelopes to a JetStream subject.
type NATSPublisher struct {
	nc      *nats.Conn
	js      jetStream
	subject string
	logger  *zap.Logger
}

// NewNATSPublisher creates a Publisher with JetStream enabled.
func NewNATSPublisher(nc *nats.Conn, subject string, logger *zap.Logger) (*NATSPublisher, error) {
	js, err := nc.JetStream()
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{
		nc:      nc,
		js:      js,
		subject: subject,
		logger:  logger,
	}, nil
}

// Publish serializes and publishes the envelope. Event metadata rides in
// headers so consumers can filter without decoding the body.
func (p *NATSPublisher) Publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("publisher.marshal_failed",
			zap.String("event_id", ev.ID),
			zap.Error(err))
		return err
	}

	msg := &nats.Msg{
		Subject: p.subject,
		Data:    data,
		Header: nats.Header{
			"event_id":       []string{ev.ID},
			"event_type":     []string{ev.EventType},
			"correlation_id": []string{ev.CorrelationID.String()},
			"content_type":   []string{"application/json"},
		},
	}

	if _, err := p.js.PublishMsg(msg); err != nil {
		p.logger.Error("publisher.publish_failed",
			zap.String("subject", p.subject),
			zap.String("event_id", ev.ID),
			zap.Error(err))
		metrics.PublishErrors.WithLabelValues(p.subject).Inc()
		return err
	}

	p.logger.Debug("publisher.published",
		zap.String("subject", p.subject),
		zap.String("event_id", ev.ID))
	return nil
}

func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}
