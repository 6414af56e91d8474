package http

import (
	"sync"
	"time"

	"github.com/dkeye/Meetme/internal/clock"
	"github.com/dkeye/Meetme/internal/domain"
)

// RoomRateLimiter allows at most limit attempts per room within a sliding
// interval.
type RoomRateLimiter struct {
	mu       sync.Mutex
	clock    clock.Clock
	history  map[domain.RoomNumber][]time.Time
	limit    int
	interval time.Duration
}

func NewRoomRateLimiter(clk clock.Clock, limit int, interval time.Duration) *RoomRateLimiter {
	return &RoomRateLimiter{
		clock:    clk,
		history:  make(map[domain.RoomNumber][]time.Time),
		limit:    limit,
		interval: interval,
	}
}

func (rl *RoomRateLimiter) Allow(room domain.RoomNumber) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	windowStart := now.Add(-rl.interval)

	fresh := rl.history[room][:0]
	for _, t := range rl.history[room] {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}
	if len(fresh) >= rl.limit {
		rl.history[room] = fresh
		return false
	}
	rl.history[room] = append(fresh, now)
	return true
}
