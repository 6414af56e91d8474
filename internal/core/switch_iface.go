//go:generate go run go.uber.org/mock/mockgen -source=switch_iface.go -destination=../mocks/mock_switch.go -package=mocks
package core

import (
	"context"
	"time"

	"github.com/dkeye/Meetme/internal/domain"
)

// DefaultCommandTimeout bounds a single switch command when the caller sets
// no deadline of its own.
const DefaultCommandTimeout = 5 * time.Second

// Switch is the command side of the manager connection.
// Owned by the adapter; the adapter must Close() it.
type Switch interface {
	// Version is the switch version discovered when the connection was set up.
	Version() domain.Version
	// Hangup asks the switch to hang up a single channel.
	Hangup(ctx context.Context, channel domain.Channel) error
	// SendEventGeneratingAction sends a correlated action and collects every
	// response event up to the action's completion event.
	SendEventGeneratingAction(ctx context.Context, action domain.Action) (*domain.ResponseEvents, error)
}
