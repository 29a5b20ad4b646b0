package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"channel_ranker/internal/domain"
)

const EventSnapshotWritten = "snapshot.written"

type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	logger = logger.With("component", "publisher")
	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"routing_key", cfg.RoutingKey,
	)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger,
	}, nil
}

// SnapshotMessage announces a channel snapshot written by a collection cycle.
type SnapshotMessage struct {
	Event     string                   `json:"event"`
	Snapshot  domain.ChannelSnapshot   `json:"snapshot"`
	Result    *domain.CollectionResult `json:"result,omitempty"`
	Timestamp time.Time                `json:"timestamp"`
}

func NewSnapshotMessage(snap *domain.ChannelSnapshot, result *domain.CollectionResult, now time.Time) SnapshotMessage {
	return SnapshotMessage{
		Event:     EventSnapshotWritten,
		Snapshot:  *snap,
		Result:    result,
		Timestamp: now.UTC(),
	}
}

func (r *RabbitMQ) PublishSnapshot(ctx context.Context, snap *domain.ChannelSnapshot, result *domain.CollectionResult) error {
	now := time.Now()
	body, err := json.Marshal(NewSnapshotMessage(snap, result, now))
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Type:         EventSnapshotWritten,
			MessageId:    snap.ChannelID + ":" + domain.FormatDate(snap.SnapshotDate),
			Body:         body,
			Timestamp:    now,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	r.logger.Debug("published snapshot",
		"channel_id", snap.ChannelID,
		"snapshot_date", domain.FormatDate(snap.SnapshotDate),
	)

	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
