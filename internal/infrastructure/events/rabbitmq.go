package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"intern-match/internal/config"
	"intern-match/internal/usecase"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

var ErrPublisherClosed = errors.New("event publisher closed")

// RabbitMQ publishes events to a durable topic exchange, routed by event type.
type RabbitMQ struct {
	conn     *amqp.Connection
	exchange string
	log      *zap.Logger

	mu      sync.Mutex
	channel *amqp.Channel
}

func NewRabbitMQ(cfg config.RabbitMQConfig, log *zap.Logger) (*RabbitMQ, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	err = channel.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err)
	}

	log.Named("events").Info("rabbitmq publisher ready", zap.String("exchange", cfg.Exchange))
	return &RabbitMQ{
		conn:     conn,
		exchange: cfg.Exchange,
		log:      log.Named("events"),
		channel:  channel,
	}, nil
}

func (p *RabbitMQ) Publish(ctx context.Context, e usecase.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil {
		return ErrPublisherClosed
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		publishCtx,
		p.exchange, // exchange
		e.Type,     // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    e.OccurredAt,
			Type:         e.Type,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

func (p *RabbitMQ) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil {
		return nil
	}
	chErr := p.channel.Close()
	p.channel = nil
	connErr := p.conn.Close()
	p.log.Info("rabbitmq publisher closed")
	return errors.Join(chErr, connErr)
}

// Log writes events to the structured log. It stands in for a broker when
// none is configured.
type Log struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *Log {
	if log == nil {
		log = zap.NewNop()
	}
	return &Log{log: log.Named("events")}
}

func (p *Log) Publish(_ context.Context, e usecase.Event) error {
	p.log.Debug("event",
		zap.String("type", e.Type),
		zap.Stringer("user_id", e.UserID),
		zap.Stringer("internship_id", e.InternshipID),
		zap.Stringer("application_id", e.ApplicationID),
		zap.String("status", e.Status),
		zap.Int("count", e.Count),
	)
	return nil
}

func (p *Log) Close() error { return nil }
