// Package service provides functions to publish domain events to RabbitMQ.
// Errors are logged and returned to allow callers to ignore failures without
// interrupting the main request flow.
package service

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/tuiter/internal/queue"
)

// ActivityPublisher publishes ActivityEvents to one durable queue.  The
// connection is opened lazily and reopened after a failure.  It is safe for
// concurrent use; callers wait for their turn only as long as their context
// allows.
type ActivityPublisher struct {
	url   string
	queue string
	log   *logrus.Entry

	turn chan struct{} // one slot, held while using conn/ch
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewActivityPublisher(url, queueName string, log *logrus.Entry) *ActivityPublisher {
	return &ActivityPublisher{url: url, queue: queueName, log: log, turn: make(chan struct{}, 1)}
}

func (p *ActivityPublisher) acquire(ctx context.Context) error {
	select {
	case p.turn <- struct{}{}:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "rabbitmq: wait for publisher")
	}
}

func (p *ActivityPublisher) release() { <-p.turn }

// dialContext connects within ctx.  The deadline also bounds the AMQP
// handshake; the client clears it once the connection is open.
func dialContext(ctx context.Context, url string) (*amqp.Connection, error) {
	return amqp.DialConfig(url, amqp.Config{
		Locale: "en_US",
		Dial: func(network, addr string) (net.Conn, error) {
			var d net.Dialer
			conn, err := d.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			if dl, ok := ctx.Deadline(); ok {
				if err := conn.SetDeadline(dl); err != nil {
					_ = conn.Close()
					return nil, err
				}
			}
			return conn, nil
		},
	})
}

// channel returns an open channel, dialing and declaring the queue when
// needed.  Callers hold the turn.
func (p *ActivityPublisher) channel(ctx context.Context) (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "rabbitmq: dial")
	}

	conn, err := dialContext(ctx, p.url)
	if err != nil {
		return nil, errors.Wrap(err, "rabbitmq: dial")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "rabbitmq: channel open")
	}
	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errors.Wrap(err, "rabbitmq: queue declare")
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *ActivityPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

// Publish sends one event as a persistent JSON message on the default
// exchange.  A failed publish drops the connection so the next call redials.
func (p *ActivityPublisher) Publish(ctx context.Context, ev queue.ActivityEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "rabbitmq: marshal event")
	}

	if err := p.acquire(ctx); err != nil {
		p.log.WithError(err).Warn("activity event dropped")
		return err
	}
	defer p.release()

	ch, err := p.channel(ctx)
	if err != nil {
		p.log.WithError(err).Warn("activity event dropped")
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		MessageId:    ev.ID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		p.reset()
		p.log.WithError(err).Warn("activity event dropped")
		return errors.Wrap(err, "rabbitmq: publish")
	}
	return nil
}

// Close releases the broker connection.
func (p *ActivityPublisher) Close() error {
	if err := p.acquire(context.Background()); err != nil {
		return err
	}
	defer p.release()
	p.reset()
	return nil
}
