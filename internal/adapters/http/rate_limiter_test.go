package http

import (
	"testing"
	"time"

	"github.com/dkeye/Meetme/internal/clock"
	"github.com/stretchr/testify/require"
)

func TestRoomRateLimiter(t *testing.T) {
	req := require.New(t)
	clk := clock.Fake(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	rl := NewRoomRateLimiter(clk, 2, 10*time.Second)

	req.True(rl.Allow("5000"))
	req.True(rl.Allow("5000"))
	req.False(rl.Allow("5000"))
	req.True(rl.Allow("5001"), "rooms are limited independently")

	clk.Advance(11 * time.Second)
	req.True(rl.Allow("5000"))
}
