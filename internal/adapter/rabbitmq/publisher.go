package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
)

const publishTimeout = 5 * time.Second

var errClosed = errors.New("publisher is closed")

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// dialer opens a connection and a channel on it.
type dialer func(url string) (channel, func() error, error)

func dialAMQP(url string) (channel, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return ch, conn.Close, nil
}

// Publisher sends activity events to a topic exchange. It connects lazily and
// drops the connection after a failed publish so the next call redials.
type Publisher struct {
	mu        sync.Mutex
	url       string
	exchange  string
	dial      dialer
	ch        channel
	closeConn func() error
	closed    bool
	logger    ports.LoggerPort
}

func NewPublisher(url, exchange string, logger ports.LoggerPort) *Publisher {
	return &Publisher{url: url, exchange: exchange, dial: dialAMQP, logger: logger}
}

func (p *Publisher) connect() error {
	if p.ch != nil {
		return nil
	}
	ch, closeConn, err := p.dial(p.url)
	if err != nil {
		return err
	}
	if err := ch.ExchangeDeclare(
		p.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	); err != nil {
		ch.Close()
		closeConn()
		return err
	}
	p.ch, p.closeConn = ch, closeConn
	p.logger.Info("Connected to message broker", map[string]interface{}{
		"exchange": p.exchange,
	})
	return nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.closeConn != nil {
		p.closeConn()
	}
	p.ch, p.closeConn = nil, nil
}

func newPublishing(activity *domain.Activity) (amqp.Publishing, error) {
	body, err := json.Marshal(activity)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    activity.ID.String(),
		Timestamp:    activity.CreatedAt,
		Type:         activity.RoutingKey(),
		Body:         body,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, activity *domain.Activity) error {
	msg, err := newPublishing(activity)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errClosed
	}
	if err := p.connect(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := p.ch.PublishWithContext(ctx, p.exchange, activity.RoutingKey(), false, false, msg); err != nil {
		p.reset()
		return err
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.reset()
	return nil
}
