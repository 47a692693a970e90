package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"property-service/internal/events/contracts"
	"property-service/pkg/config"
	"property-service/prometheus"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RoutingInquiryCreated is the routing key of InquiryCreated messages.
const RoutingInquiryCreated = "inquiry.created"

// RabbitPublisher publishes events to a topic exchange.
type RabbitPublisher struct {
	exchange string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewRabbitPublisher dials the broker and declares the exchange.
func NewRabbitPublisher(cfg *config.EventsConfig) (*RabbitPublisher, error) {
	if err := contracts.Load(); err != nil {
		return nil, fmt.Errorf("publisher: %w", err)
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("publisher: failed to dial RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("publisher: failed to open a channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("publisher: failed to declare exchange '%s': %w", cfg.Exchange, err)
	}

	return &RabbitPublisher{exchange: cfg.Exchange, conn: conn, channel: ch}, nil
}

// PublishInquiryCreated validates the event against its contract and publishes it.
func (p *RabbitPublisher) PublishInquiryCreated(ctx context.Context, e InquiryCreated) (err error) {
	defer func() { prometheus.RecordEventPublished(contracts.InquiryCreatedEvent, err) }()

	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("publisher: encode event: %w", err)
	}
	if err := contracts.ValidateEvent(contracts.InquiryCreatedEvent, contracts.InquiryCreatedVersion, body); err != nil {
		return fmt.Errorf("publisher: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil || p.conn == nil || p.conn.IsClosed() {
		return fmt.Errorf("publisher: not connected or channel/connection is closed")
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		RoutingInquiryCreated,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    e.EventID,
			Timestamp:    time.Now().UTC(),
			Type:         contracts.InquiryCreatedEvent,
			Headers:      amqp.Table{"x-event-version": contracts.InquiryCreatedVersion},
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publisher: failed to publish message: %w", err)
	}
	return nil
}

// Close closes the channel and connection.
func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			firstErr = err
		}
		p.channel = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.conn = nil
	}
	return firstErr
}
