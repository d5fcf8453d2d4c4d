package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends DirectoryEvents to a durable topic exchange, using
// the event type as routing key.  The connection is opened on first use
// and re-opened after any failure, so a broker outage only costs the
// events published while it lasts.
type Publisher struct {
	url      string
	exchange string
	log      *zap.Logger

	mu         sync.Mutex
	conn       *amqp.Connection
	ch         *amqp.Channel
	retryAfter time.Time // no dial attempts before this instant
}

const (
	// maxDialTimeout caps a dial whose context has no earlier deadline.
	maxDialTimeout = 5 * time.Second
	// redialBackoff is how long a failed dial keeps the publisher from
	// dialing again; publishes in that window fail at once.
	redialBackoff = 5 * time.Second
)

// ErrBrokerUnavailable is returned while the publisher backs off after a
// failed dial.
var ErrBrokerUnavailable = errors.New("broker unavailable")

// NewPublisher returns a Publisher for the broker at url.  No connection
// is made until the first Publish.
func NewPublisher(url, exchange string, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{url: url, exchange: exchange, log: log}
}

// Publish marshals ev and sends it as a persistent message.  Errors are
// returned so the caller can decide to ignore them.
func (p *Publisher) Publish(ctx context.Context, ev DirectoryEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel(ctx)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		MessageId:    ev.ID,
		Type:         ev.Type,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, p.exchange, ev.Type, false, false, pub); err != nil {
		p.reset()
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// channel returns the open channel, dialing when needed.  The dial and
// handshake are bounded by ctx's deadline.  Callers hold mu.
func (p *Publisher) channel(ctx context.Context) (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if time.Now().Before(p.retryAfter) {
		return nil, ErrBrokerUnavailable
	}
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout(ctx)),
	})
	if err != nil {
		p.retryAfter = time.Now().Add(redialBackoff)
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("channel open: %w", err)
	}
	if err := declareExchange(ch, p.exchange); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn, p.ch = conn, ch
	p.retryAfter = time.Time{}
	p.log.Info("event publisher connected", zap.String("exchange", p.exchange))
	return ch, nil
}

// dialTimeout is the time left before ctx's deadline, at most
// maxDialTimeout.
func dialTimeout(ctx context.Context) time.Duration {
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < maxDialTimeout {
			return max(left, time.Millisecond)
		}
	}
	return maxDialTimeout
}

// reset drops the current connection.  Callers hold mu.
func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

// declareExchange ensures the exchange exists (idempotent).  Durable so
// it survives broker restarts.
func declareExchange(ch *amqp.Channel, name string) error {
	if err := ch.ExchangeDeclare(
		name,    // name
		"topic", // kind
		true,    // durable
		false,   // autoDelete
		false,   // internal
		false,   // noWait
		nil,     // args
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	return nil
}
