package core

import "github.com/dkeye/Meetme/internal/domain"

// EventHandler receives classified switch events.
type EventHandler func(domain.Event)

// EventFeed routes switch events to listeners by event type.
type EventFeed interface {
	Subscribe(eventType string, handler EventHandler) string
	Unsubscribe(id string) bool
}
