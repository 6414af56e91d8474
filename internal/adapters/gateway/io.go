package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dkeye/Meetme/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// message is one manager protocol packet: header name to value.
type message map[string]string

func encodeAction(action domain.Action, actionID string) ([]byte, error) {
	m := make(message, len(action.Fields)+2)
	for k, v := range action.Fields {
		m[k] = v
	}
	m["Action"] = action.Name
	m["ActionID"] = actionID
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", action.Name, err)
	}
	return b, nil
}

func (c *Client) enqueue(ctx context.Context, frame []byte) error {
	select {
	case c.send <- frame:
		return nil
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "adapters.gateway").Msg("writePump ctx done")
			c.Close()
			return
		case <-c.done:
			return
		case frame := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "adapters.gateway").Msg("writePump set deadline")
				c.conn.Close()
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				log.Error().Err(err).Str("module", "adapters.gateway").Msg("writePump write error")
				c.conn.Close()
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "adapters.gateway").Msg("writePump ping error")
				c.conn.Close()
				return
			}
		}
	}
}

func (c *Client) readPump() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.finish(err)
			return
		}
		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn().Err(err).Str("module", "adapters.gateway").Msg("bad json from gateway")
			continue
		}
		c.dispatch(msg)
	}
}

func (c *Client) dispatch(msg message) {
	if id := msg["ActionID"]; id != "" {
		c.mu.Lock()
		p, ok := c.pending[id]
		c.mu.Unlock()
		if ok {
			c.deliver(p, msg)
			return
		}
	}

	if _, ok := msg["Event"]; !ok {
		log.Debug().Str("module", "adapters.gateway").Str("action_id", msg["ActionID"]).Msg("uncorrelated response")
		return
	}
	event := decodeEvent(msg)
	if raw, ok := event.(*domain.RawEvent); ok {
		log.Debug().Str("module", "adapters.gateway").Str("event", raw.Name).Msg("ignoring event")
		return
	}
	c.feed.Publish(event)
}

// deliver runs on the read loop only.
func (c *Client) deliver(p *pending, msg message) {
	if resp, ok := msg["Response"]; ok {
		if strings.EqualFold(resp, "Error") {
			c.complete(p, &domain.ActionError{Action: p.action, Message: msg["Message"]})
			return
		}
		p.response = msg
		if p.completion == "" {
			c.complete(p, nil)
		}
		return
	}

	p.events = append(p.events, decodeEvent(msg))
	if msg["Event"] == p.completion {
		c.complete(p, nil)
	}
}

func (c *Client) complete(p *pending, err error) {
	c.forget(p.id)
	p.err = err
	close(p.done)
}

// finish fails every waiting action and marks the client dead.
func (c *Client) finish(cause error) {
	c.mu.Lock()
	c.closed = true
	waiting := c.pending
	c.pending = make(map[string]*pending)
	c.mu.Unlock()

	reason := ErrClosed
	if !c.closing.Load() {
		reason = fmt.Errorf("%w: %v", ErrConnectionLost, cause)
		log.Error().Err(cause).Str("module", "adapters.gateway").Msg("readPump read error")
	}
	for _, p := range waiting {
		p.err = reason
		close(p.done)
	}
	c.err = reason
	close(c.done)
}
