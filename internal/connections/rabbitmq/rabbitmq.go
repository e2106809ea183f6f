package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"pos-system/internal/config"
	"pos-system/internal/domain"
)

var ErrNack = errors.New("publish NACK from broker")

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel

	acks <-chan amqp.Confirmation
	mu   sync.Mutex // one in-flight publish while confirms are on
}

// URL builds the amqp:// address for cfg; the vhost is path-escaped so the
// default "/" becomes %2F.
func URL(cfg config.RabbitMQConfig) string {
	vhost := cfg.VHost
	if vhost == "" {
		vhost = "/"
	}
	u := url.URL{
		Scheme:  "amqp",
		User:    url.UserPassword(cfg.User, cfg.Password),
		Host:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:    "/" + vhost,
		RawPath: "/" + url.PathEscape(vhost),
	}
	return u.String()
}

func Dial(cfg config.RabbitMQConfig) (*Client, error) {
	conn, err := amqp.Dial(URL(cfg))
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq confirm mode: %w", err)
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &Client{conn: conn, ch: ch, acks: acks}, nil
}

func (c *Client) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Client) Ping() error {
	if c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// DeclareSalesTopology declares the sales topic exchange and the durable
// notification queue bound to every sale.* event.
func (c *Client) DeclareSalesTopology() error {
	if err := c.ch.ExchangeDeclare(domain.SalesExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", domain.SalesExchange, err)
	}
	if _, err := c.ch.QueueDeclare(domain.SaleNotifyQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", domain.SaleNotifyQueue, err)
	}
	if err := c.ch.QueueBind(domain.SaleNotifyQueue, domain.SaleRoutingPattern, domain.SalesExchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", domain.SaleNotifyQueue, err)
	}
	return nil
}

// Publish sends msg and waits for the broker's confirm or ctx.
func (c *Client) Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	if err := c.ch.PublishWithContext(ctx, exchange, key, false, false, msg); err != nil {
		return err
	}

	select {
	case conf := <-c.acks:
		if conf.Ack {
			return nil
		}
		return ErrNack
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume starts a manual-ack consumer limited to prefetch unacked messages.
func (c *Client) Consume(queue, consumer string, prefetch int) (<-chan amqp.Delivery, error) {
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("rabbitmq qos: %w", err)
	}
	deliveries, err := c.ch.Consume(queue, consumer, false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", queue, err)
	}
	return deliveries, nil
}
