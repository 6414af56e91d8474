package meetme

import (
	"context"

	"github.com/dkeye/Meetme/internal/domain"
	"github.com/rs/zerolog/log"
)

// ForceHangup removes every channel from an active room and hangs each one
// up. An inactive room is left alone. Failures are logged per channel and
// never stop the remaining hangups.
func (c *Control) ForceHangup(room *Room) {
	c.mu.Lock()
	channels := room.drain()
	c.mu.Unlock()

	c.hangup(room.number, channels)
}

func (c *Control) hangup(number domain.RoomNumber, channels []domain.Channel) {
	for _, ch := range channels {
		logger := log.With().
			Str("module", "app.meetme").
			Str("room", number.String()).
			Str("channel", ch.String()).
			Logger()

		logger.Warn().Msg("hanging up")
		ctx, cancel := context.WithTimeout(context.Background(), c.settings.CommandTimeout)
		err := c.sw.Hangup(ctx, ch)
		cancel()
		if err != nil {
			logger.Error().Err(err).Msg("hangup failed")
		}
	}
}
