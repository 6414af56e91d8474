// Package gateway talks to the switch through a manager gateway that carries
// manager actions, responses and events as JSON objects over a websocket.
//
// Actions are correlated with their responses by ActionID. Events without a
// pending ActionID are decoded and published to the event feed.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dkeye/Meetme/internal/core"
	"github.com/dkeye/Meetme/internal/domain"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrClosed         = errors.New("gateway connection closed")
	ErrConnectionLost = errors.New("gateway connection lost")
	ErrActionFailed   = domain.ErrActionFailed
)

const (
	defaultPingPeriod     = 30 * time.Second
	writeWait             = 5 * time.Second
	sendBuffer            = 32
)

type Config struct {
	URL            string
	Username       string
	Secret         string
	CommandTimeout time.Duration
	PingPeriod     time.Duration
}

// Publisher receives every event that is not part of an action's response.
type Publisher interface {
	Publish(domain.Event)
}

// pending is an action waiting for its response. Only the read loop writes
// its fields; waiters read them after done is closed.
type pending struct {
	id         string
	action     string
	completion string // event that ends the response list, "" for plain actions
	response   message
	events     []domain.Event
	err        error
	done       chan struct{}
}

type Client struct {
	cfg     Config
	conn    *websocket.Conn
	feed    Publisher
	send    chan []byte
	version domain.Version

	mu      sync.Mutex
	pending map[string]*pending
	closed  bool

	done      chan struct{}
	err       error // why the read loop ended, valid once done is closed
	closing   atomic.Bool
	closeOnce sync.Once
}

var _ core.Switch = (*Client)(nil)

// Connect dials the gateway, logs in and discovers the switch version.
// The connection lives until ctx is cancelled or Close is called.
func Connect(ctx context.Context, cfg Config, feed Publisher) (*Client, error) {
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = core.DefaultCommandTimeout
	}
	if cfg.PingPeriod <= 0 {
		cfg.PingPeriod = defaultPingPeriod
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.URL, err)
	}

	c := &Client{
		cfg:     cfg,
		conn:    conn,
		feed:    feed,
		send:    make(chan []byte, sendBuffer),
		pending: make(map[string]*pending),
		done:    make(chan struct{}),
	}
	go c.writePump(ctx)
	go c.readPump()

	if err := c.login(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.discoverVersion(ctx); err != nil {
		c.Close()
		return nil, err
	}

	log.Info().
		Str("module", "adapters.gateway").
		Str("url", cfg.URL).
		Str("version", c.version.String()).
		Msg("connected to switch")
	return c, nil
}

func (c *Client) login(ctx context.Context) error {
	if c.cfg.Username == "" {
		return nil
	}
	action := domain.NewAction(domain.ActionLogin, "Username", c.cfg.Username, "Secret", c.cfg.Secret)
	_, err := c.do(ctx, action, "")
	return err
}

func (c *Client) discoverVersion(ctx context.Context) error {
	p, err := c.do(ctx, domain.NewAction(domain.ActionCoreSettings), "")
	if err != nil {
		return err
	}
	v, err := domain.ParseVersion(p.response["AsteriskVersion"])
	if err != nil {
		return fmt.Errorf("switch version: %w", err)
	}
	c.version = v
	return nil
}

func (c *Client) Version() domain.Version { return c.version }

func (c *Client) Hangup(ctx context.Context, channel domain.Channel) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	_, err := c.do(ctx, domain.NewAction(domain.ActionHangup, "Channel", channel.String()), "")
	return err
}

func (c *Client) SendEventGeneratingAction(ctx context.Context, action domain.Action) (*domain.ResponseEvents, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	p, err := c.do(ctx, action, action.CompletionEvent())
	if err != nil {
		return nil, err
	}
	return &domain.ResponseEvents{ActionID: p.id, Events: p.events}, nil
}

// withTimeout applies the configured command timeout when ctx has none.
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.cfg.CommandTimeout)
}

// do sends an action and blocks until its response (and, for event
// generating actions, the completion event) arrives.
func (c *Client) do(ctx context.Context, action domain.Action, completion string) (*pending, error) {
	p := &pending{
		id:         uuid.NewString(),
		action:     action.Name,
		completion: completion,
		done:       make(chan struct{}),
	}
	frame, err := encodeAction(action, p.id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.pending[p.id] = p
	c.mu.Unlock()

	if err := c.enqueue(ctx, frame); err != nil {
		c.forget(p.id)
		return nil, fmt.Errorf("sending %s (action_id=%s): %w", action.Name, p.id, err)
	}

	select {
	case <-p.done:
		if p.err != nil {
			return nil, fmt.Errorf("%s (action_id=%s): %w", action.Name, p.id, p.err)
		}
		return p, nil
	case <-ctx.Done():
		c.forget(p.id)
		return nil, fmt.Errorf("waiting for %s (action_id=%s): %w", action.Name, p.id, ctx.Err())
	}
}

func (c *Client) forget(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)
}

// Close shuts the connection down. Safe to call multiple times.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.closing.Store(true)
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait),
		)
		_ = c.conn.Close()
	})
}

// Wait blocks until the connection ends. It returns nil after Close and the
// reason otherwise.
func (c *Client) Wait() error {
	<-c.done
	if c.closing.Load() {
		return nil
	}
	return c.err
}

func (c *Client) pendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
