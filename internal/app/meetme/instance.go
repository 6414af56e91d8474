package meetme

import (
	"context"
	"sync/atomic"

	"github.com/dkeye/Meetme/internal/core"
	"github.com/rs/zerolog/log"
)

var (
	initialising atomic.Bool
	instance     atomic.Pointer[Control]
)

// Initialize builds the process-wide Control. The first caller wins: later
// calls log a warning and get the existing Control (nil while the first call
// is still probing) together with ErrAlreadyInitialized.
//
// If the probe fails nothing is installed and Initialize may be called again.
func Initialize(ctx context.Context, sw core.Switch, feed core.EventFeed, settings Settings) (*Control, error) {
	if !initialising.CompareAndSwap(false, true) {
		log.Warn().Str("module", "app.meetme").Msg("the meetme control has already been initialised")
		return instance.Load(), ErrAlreadyInitialized
	}

	c, err := New(ctx, sw, feed, settings)
	if err != nil {
		initialising.Store(false)
		return nil, err
	}
	instance.Store(c)
	return c, nil
}

// Current returns the Control installed by Initialize.
func Current() (*Control, error) {
	c := instance.Load()
	if c == nil {
		return nil, ErrNotInitialized
	}
	return c, nil
}

// MustCurrent is Current for callers that cannot run without a Control.
func MustCurrent() *Control {
	c, err := Current()
	if err != nil {
		panic(err)
	}
	return c
}
