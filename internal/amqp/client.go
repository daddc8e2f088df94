package amqp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// Circuit breaker states.
const (
	StateClosed int32 = iota
	StateOpen
)

const (
	failureThreshold = 5
	openCooldown     = 30 * time.Second
	publishTimeout   = 5 * time.Second
	maxBackoff       = 30 * time.Second
)

// ErrCircuitOpen is returned while publishing is suspended after repeated failures.
var ErrCircuitOpen = errors.New("amqp: circuit breaker open")

// Client publishes expense events to a durable topic exchange. It reconnects
// lazily after connection loss and stops trying for a while once publishing
// keeps failing.
type Client struct {
	url          string
	exchangeName string

	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel

	failureCount int64
	state        int32
	openedAt     int64 // unix nanos
}

// NewClient connects to url, retrying with backoff up to attempts times, and
// declares the exchange.
func NewClient(ctx context.Context, url, exchangeName string, attempts int) (*Client, error) {
	c := &Client{url: url, exchangeName: exchangeName}
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			wait := exponentialBackoff(attempt - 1)
			slog.WarnContext(ctx, "AMQP connect failed, retrying", "error", err, "attempt", attempt, "wait", wait.String())
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}
		c.mu.Lock()
		err = c.connectLocked()
		c.mu.Unlock()
		if err == nil {
			return c, nil
		}
	}
	return nil, fmt.Errorf("connect AMQP after %d attempts: %w", attempts, err)
}

func (c *Client) connectLocked() error {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dial AMQP: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	err = channel.ExchangeDeclare(
		c.exchangeName, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}
	c.conn, c.channel = conn, channel
	return nil
}

// PublishExpenseEvent publishes ev with its type as routing key.
func (c *Client) PublishExpenseEvent(ctx context.Context, ev *ExpenseEvent) error {
	if c.isCircuitOpen() {
		return ErrCircuitOpen
	}
	body, err := ev.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ch, err := c.ensureChannel()
	if err != nil {
		c.recordFailure(err)
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = ch.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		ev.Type,        // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    ev.Timestamp,
			MessageId:    ev.ID,
			Type:         ev.Type,
			Body:         body,
		},
	)
	if err != nil {
		c.recordFailure(err)
		return fmt.Errorf("publish event: %w", err)
	}
	c.recordSuccess()

	slog.DebugContext(ctx, "Published expense event",
		"type", ev.Type,
		"expense_id", ev.ID,
		"exchange", c.exchangeName)
	return nil
}

func (c *Client) ensureChannel() (*amqp091.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel != nil && !c.channel.IsClosed() {
		return c.channel, nil
	}
	c.closeLocked()
	if err := c.connectLocked(); err != nil {
		return nil, err
	}
	return c.channel, nil
}

func (c *Client) isCircuitOpen() bool {
	if atomic.LoadInt32(&c.state) != StateOpen {
		return false
	}
	opened := time.Unix(0, atomic.LoadInt64(&c.openedAt))
	if time.Since(opened) >= openCooldown {
		// half-open: let the next publish probe the broker
		atomic.StoreInt32(&c.state, StateClosed)
		return false
	}
	return true
}

func (c *Client) recordSuccess() {
	atomic.StoreInt64(&c.failureCount, 0)
	atomic.StoreInt32(&c.state, StateClosed)
}

func (c *Client) recordFailure(err error) {
	if isConnectionError(err) {
		c.mu.Lock()
		c.closeLocked()
		c.mu.Unlock()
	}
	if atomic.AddInt64(&c.failureCount, 1) >= failureThreshold {
		atomic.StoreInt64(&c.openedAt, time.Now().UnixNano())
		atomic.StoreInt32(&c.state, StateOpen)
	}
}

// exponentialBackoff returns 1s, 2s, 4s... capped at 30s.
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt >= 5 {
		return maxBackoff
	}
	d := time.Second << attempt
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, amqp091.ErrClosed) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"connection", "eof", "broken pipe", "closed network"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

func (c *Client) closeLocked() {
	if c.channel != nil {
		c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
	return nil
}
