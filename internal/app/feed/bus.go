// Package feed delivers classified switch events to the components that
// listen for them.
package feed

import (
	"runtime/debug"
	"sync"

	"github.com/dkeye/Meetme/internal/core"
	"github.com/dkeye/Meetme/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AllEvents subscribes a handler to every event type.
const AllEvents = "*"

type subscription struct {
	id        string
	eventType string
	handler   core.EventHandler
}

// Bus is a synchronous pub-sub bus. Handlers run on the publisher's
// goroutine, so each publisher is one delivery context.
type Bus struct {
	mu            sync.RWMutex
	subscriptions map[string][]subscription // eventType -> subscriptions
}

var _ core.EventFeed = (*Bus)(nil)

func NewBus() *Bus {
	return &Bus{
		subscriptions: make(map[string][]subscription),
	}
}

// Subscribe registers a handler for one event type and returns the
// subscription id to pass to Unsubscribe.
func (b *Bus) Subscribe(eventType string, handler core.EventHandler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := subscription{
		id:        uuid.NewString(),
		eventType: eventType,
		handler:   handler,
	}
	b.subscriptions[eventType] = append(b.subscriptions[eventType], sub)
	return sub.id
}

func (b *Bus) SubscribeAll(handler core.EventHandler) string {
	return b.Subscribe(AllEvents, handler)
}

// Unsubscribe reports whether the subscription existed.
// A Publish already in flight may still call the removed handler once.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.subscriptions {
		for i, sub := range subs {
			if sub.id != id {
				continue
			}
			rest := make([]subscription, 0, len(subs)-1)
			rest = append(rest, subs[:i]...)
			rest = append(rest, subs[i+1:]...)
			if len(rest) == 0 {
				delete(b.subscriptions, eventType)
			} else {
				b.subscriptions[eventType] = rest
			}
			return true
		}
	}
	return false
}

// Publish calls the handlers for the event's type, then the wildcard
// handlers, each group in registration order. A panicking handler is
// logged and skipped.
func (b *Bus) Publish(event domain.Event) {
	eventType := event.EventType()

	b.mu.RLock()
	specific := append([]subscription(nil), b.subscriptions[eventType]...)
	wildcard := append([]subscription(nil), b.subscriptions[AllEvents]...)
	b.mu.RUnlock()

	for _, sub := range specific {
		b.safeCall(sub, event)
	}
	for _, sub := range wildcard {
		b.safeCall(sub, event)
	}
}

func (b *Bus) safeCall(sub subscription, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("module", "app.feed").
				Str("event", event.EventType()).
				Str("subscription", sub.id).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("event handler panicked")
		}
	}()
	sub.handler(event)
}

func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, subs := range b.subscriptions {
		count += len(subs)
	}
	return count
}
