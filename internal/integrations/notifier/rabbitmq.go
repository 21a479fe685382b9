package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitPublisher публикует события броней в очередь RabbitMQ
type RabbitPublisher struct {
	conn  *amqp.Connection
	queue string
	log   Logger

	mu sync.Mutex
	ch *amqp.Channel
}

// NewRabbitPublisher подключается к брокеру и объявляет durable очередь
func NewRabbitPublisher(url, queue string, log Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare queue %s: %v", ErrConnect, queue, err)
	}

	return &RabbitPublisher{conn: conn, queue: queue, log: log, ch: ch}, nil
}

// PublishReservationConfirmed публикует событие в очередь (persistent)
func (p *RabbitPublisher) PublishReservationConfirmed(ctx context.Context, event ReservationConfirmedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ReservationID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	// amqp.Channel не предназначен для конкурентной публикации
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.log.Error("rabbitmq: publish reservation %s failed: %v", event.ReservationID, err)
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.log.Info("rabbitmq: published reservation.confirmed for reservation %s", event.ReservationID)
	return nil
}

// Close закрывает канал и соединение
func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// Noop публикатор, когда брокер отключен в конфигурации
type Noop struct{}

func (Noop) PublishReservationConfirmed(ctx context.Context, event ReservationConfirmedEvent) error {
	return nil
}
