package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
)

// ActivityLogName is the file the consumer appends to.
const ActivityLogName = "activity.log"

// Consumer drains the activity queue into a log file.
type Consumer struct {
	URL   string
	Queue string
	Dir   string
	Log   *logrus.Entry
}

// Run connects to RabbitMQ, declares the queue (durable) and consumes until
// ctx is cancelled.  Dial failures are retried with exponential backoff
// capped at 30s.  Malformed messages are rejected without requeue so the
// consumer keeps going.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		conn, err := c.dial(ctx)
		if err != nil {
			return err
		}

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Log.WithError(err).Warn("activity-consumer: consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

// dial returns only once connected or when ctx is done.
func (c *Consumer) dial(ctx context.Context) (*amqp.Connection, error) {
	var conn *amqp.Connection
	backoff := retry.WithCappedDuration(30*time.Second, retry.NewExponential(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		if conn, err = amqp.Dial(c.URL); err != nil {
			c.Log.WithError(err).Warn("activity-consumer: dial failed; retrying")
			return retry.RetryableError(err)
		}
		return nil
	})
	return conn, err
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return errors.Wrap(err, "channel open")
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.Log.WithError(err).Warn("activity-consumer: set QoS failed")
	}
	if _, err := ch.QueueDeclare(c.Queue, true, false, false, false, nil); err != nil {
		return errors.Wrap(err, "queue declare")
	}
	msgs, err := ch.Consume(c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, "queue consume")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := HandleMessage(c.Dir, d.Body); err != nil {
				c.Log.WithError(err).Error("activity-consumer: handle message failed")
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one event and appends it to dir/activity.log.
func HandleMessage(dir string, body []byte) error {
	var ev ActivityEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return errors.Wrap(err, "unmarshal")
	}
	if ev.Action == "" || ev.Resource == "" {
		return errors.New("event without action or resource")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "mkdir logs")
	}
	f, err := os.OpenFile(filepath.Join(dir, ActivityLogName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open log file")
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return errors.Wrap(err, "write log")
	}
	return nil
}

// FormatLine renders an event as a single human-friendly line.  Params are
// sorted so lines are stable.
func FormatLine(ev ActivityEvent) string {
	keys := make([]string, 0, len(ev.Params))
	for k := range ev.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	params := make([]string, 0, len(keys))
	for _, k := range keys {
		params = append(params, k+"="+ev.Params[k])
	}
	return fmt.Sprintf("[%s] %s %s | %s %s | status=%d | params=[%s] | request_id=%s | event_id=%s\n",
		ev.OccurredAt, ev.Resource, ev.Action, ev.Method, ev.Path, ev.Status, strings.Join(params, ","), ev.RequestID, ev.ID)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
