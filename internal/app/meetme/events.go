package meetme

import (
	"github.com/dkeye/Meetme/internal/domain"
	"github.com/rs/zerolog/log"
)

func (c *Control) onEvent(event domain.Event) {
	if c.stopped.Load() {
		return
	}
	switch e := event.(type) {
	case *domain.MeetmeJoinEvent:
		c.onJoin(e)
	case *domain.MeetmeLeaveEvent:
		c.onLeave(e)
	}
}

// onJoin ignores rooms we do not know; they may already have been reclaimed.
func (c *Control) onJoin(e *domain.MeetmeJoinEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.rooms[e.Meetme]
	if !ok || c.stopped.Load() {
		return
	}
	if room.addChannel(e.Channel) {
		room.touch(c.settings.Clock.Now())
		log.Debug().
			Str("module", "app.meetme").
			Str("room", room.number.String()).
			Str("channel", e.Channel.String()).
			Int("channels", room.channelCount()).
			Msg("channel joined conference")
	}
}

func (c *Control) onLeave(e *domain.MeetmeLeaveEvent) {
	c.mu.Lock()
	room, ok := c.rooms[e.Meetme]
	if !ok || c.stopped.Load() {
		c.mu.Unlock()
		return
	}
	room.removeChannel(e.Channel)
	room.touch(c.settings.Clock.Now())

	var remaining []domain.Channel
	action := c.settings.Policy.OnLeave(room.channelCount(), room.forceClose)
	switch action {
	case HangupRemaining:
		remaining = room.drain()
		room.markInactive()
	case Deactivate:
		room.markInactive()
	}
	log.Debug().
		Str("module", "app.meetme").
		Str("room", room.number.String()).
		Str("channel", e.Channel.String()).
		Int("channels", room.channelCount()).
		Stringer("action", action).
		Msg("channel left conference")
	if len(remaining) > 0 {
		c.hangups.Add(1)
	}
	c.mu.Unlock()

	if len(remaining) == 0 {
		return
	}
	// The feed may be delivering on the same connection that has to carry
	// the hangup replies, so never wait for them here.
	go func() {
		defer c.hangups.Done()
		c.hangup(room.number, remaining)
	}()
}
