// Package meetme keeps a live model of the switch's conference rooms and
// hands free rooms out to call-control logic.
//
// Control consumes join/leave events from the feed, tracks who is in each
// room and who asked for it, reclaims rooms nobody needs any more, and hangs
// up stragglers in force-close rooms. Membership is rebuilt purely from
// events; the switch is never polled after the startup probe.
package meetme

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dkeye/Meetme/internal/clock"
	"github.com/dkeye/Meetme/internal/core"
	"github.com/dkeye/Meetme/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Settings are read once at construction and never reloaded.
type Settings struct {
	// BaseAddress is the first room number; rooms are BaseAddress+n.
	BaseAddress int
	// RoomCount is advisory. Allocation never refuses a room.
	RoomCount int

	ProbeTimeout   time.Duration
	CommandTimeout time.Duration
	MinVersion     domain.Version

	Policy Policy
	Clock  clock.Clock
}

func (s Settings) withDefaults() Settings {
	if s.ProbeTimeout <= 0 {
		s.ProbeTimeout = DefaultProbeTimeout
	}
	if s.CommandTimeout <= 0 {
		s.CommandTimeout = core.DefaultCommandTimeout
	}
	if s.MinVersion == (domain.Version{}) {
		s.MinVersion = DefaultMinVersion
	}
	if s.Policy == nil {
		s.Policy = SimplePolicy{StaleAfter: DefaultStaleAfter}
	}
	if s.Clock == nil {
		s.Clock = clock.Real()
	}
	return s
}

type Control struct {
	sw        core.Switch
	feed      core.EventFeed
	settings  Settings
	probe     ProbeResult
	installed bool

	// mu guards rooms and the state of every Room in it.
	mu    sync.RWMutex
	rooms map[domain.RoomNumber]*Room

	subscriptions []string
	stopped       atomic.Bool
	stopOnce      sync.Once

	// hangups tracks commands issued on behalf of leave events.
	hangups sync.WaitGroup
}

// New probes the switch and, if conferencing is available, starts listening
// for join/leave events. A failed probe returns an *InitError and no Control.
func New(ctx context.Context, sw core.Switch, feed core.EventFeed, settings Settings) (*Control, error) {
	settings = settings.withDefaults()

	res, err := probe(ctx, sw, settings.MinVersion, settings.ProbeTimeout)
	if err != nil {
		log.Error().Err(err).Str("module", "app.meetme").Msg("capability probe failed")
		return nil, &InitError{Cause: err}
	}

	c := &Control{
		sw:        sw,
		feed:      feed,
		settings:  settings,
		probe:     res,
		installed: true,
		rooms:     make(map[domain.RoomNumber]*Room),
	}
	c.subscriptions = []string{
		feed.Subscribe(domain.EventMeetmeJoin, c.onEvent),
		feed.Subscribe(domain.EventMeetmeLeave, c.onEvent),
	}

	log.Info().
		Str("module", "app.meetme").
		Str("version", res.Version.String()).
		Int("base_address", settings.BaseAddress).
		Int("room_count", settings.RoomCount).
		Interface("occupancy", res.Occupancy).
		Msg("meetme control started")
	return c, nil
}

// IsMeetmeInstalled reports the outcome of the startup probe. Safe on a nil
// Control, which is what a failed Initialize leaves behind.
func (c *Control) IsMeetmeInstalled() bool { return c != nil && c.installed }

// Probe returns what the switch reported at startup.
func (c *Control) Probe() ProbeResult { return c.probe }

// Stop detaches from the event feed and waits for hangups already issued by
// leave handling. Events already being handled may still complete; later
// ones are ignored.
func (c *Control) Stop() {
	c.stopOnce.Do(func() {
		// Handlers re-check stopped under mu, so no hangup starts after this.
		c.mu.Lock()
		c.stopped.Store(true)
		c.mu.Unlock()
		for _, id := range c.subscriptions {
			c.feed.Unsubscribe(id)
		}
		c.hangups.Wait()
		log.Info().Str("module", "app.meetme").Msg("meetme control stopped")
	})
}

type claim struct {
	room  *Room
	owner core.RoomOwner
}

// AllocateRoom frees every room whose owner is gone and that is empty, then
// creates a new room for owner under the lowest free room number.
//
// Owners are asked without the registry lock held, so an owner may call back
// into Control. The emptiness check, removal and insertion happen under one
// lock so a join arriving mid-scan keeps its room alive.
func (c *Control) AllocateRoom(owner core.RoomOwner, opts ...RoomOption) *Room {
	c.mu.RLock()
	claims := make([]claim, 0, len(c.rooms))
	for _, r := range c.rooms {
		claims = append(claims, claim{room: r, owner: r.owner})
	}
	c.mu.RUnlock()

	candidates := make([]*Room, 0, len(claims))
	for _, cl := range claims {
		if c.released(cl) {
			candidates = append(candidates, cl.room)
			continue
		}
		log.Warn().
			Str("module", "app.meetme").
			Str("room", cl.room.number.String()).
			Msg("room is still in use")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.settings.Clock.Now()
	for _, r := range candidates {
		if c.rooms[r.number] != r {
			continue // freed by a concurrent allocation
		}
		c.reclaim(r, now)
	}

	room := newRoom(&c.mu, c.nextNumber(), owner, opts...)
	c.rooms[room.number] = room
	if c.settings.RoomCount > 0 && len(c.rooms) > c.settings.RoomCount {
		log.Warn().
			Str("module", "app.meetme").
			Int("rooms", len(c.rooms)).
			Int("room_count", c.settings.RoomCount).
			Msg("more rooms in use than configured")
	}
	log.Info().
		Str("module", "app.meetme").
		Str("room", room.number.String()).
		Bool("force_close", room.forceClose).
		Msg("returning available room")
	return room
}

// released reports whether nobody claims the room. An owner that panics is
// treated as still needing its room.
func (c *Control) released(cl claim) (free bool) {
	if cl.owner == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("module", "app.meetme").
				Str("room", cl.room.number.String()).
				Interface("panic", r).
				Msg("room owner panicked, keeping room")
			free = false
		}
	}()
	return !cl.owner.IsRoomStillRequired()
}

// reclaim runs with c.mu held. A failure while judging one room is logged and
// never aborts the scan of the others.
func (c *Control) reclaim(r *Room, now time.Time) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Str("module", "app.meetme").
				Str("room", r.number.String()).
				Interface("panic", rec).
				Msg("failed to evaluate room")
		}
	}()

	if c.settings.Policy.IsStale(r.lastUpdated, r.channelCount(), now) {
		// The switch never told us these channels left.
		log.Error().
			Str("module", "app.meetme").
			Str("room", r.number.String()).
			Dur("elapsed", now.Sub(r.lastUpdated)).
			Strs("channels", channelNames(r.channelList())).
			Msg("clearing stale room")
		r.markInactive()
		for _, ch := range r.channelList() {
			r.removeChannel(ch)
		}
	}

	if r.channelCount() != 0 {
		log.Warn().
			Str("module", "app.meetme").
			Str("room", r.number.String()).
			Int("channels", r.channelCount()).
			Msg("unclaimed room still has channels")
		return
	}
	r.markInactive()
	r.clearOwner()
	delete(c.rooms, r.number)
	log.Info().Str("module", "app.meetme").Str("room", r.number.String()).Msg("freeing available room")
}

// nextNumber runs with c.mu held.
func (c *Control) nextNumber() domain.RoomNumber {
	for ordinal := 0; ; ordinal++ {
		n := domain.NewRoomNumber(c.settings.BaseAddress, ordinal)
		if _, taken := c.rooms[n]; !taken {
			return n
		}
	}
}

func (c *Control) Room(number domain.RoomNumber) (*Room, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.rooms[number]
	return r, ok
}

// Rooms returns a snapshot of every live room ordered by number.
func (c *Control) Rooms() []RoomInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]RoomInfo, 0, len(c.rooms))
	for _, r := range c.rooms {
		out = append(out, r.info())
	}
	// Numbers share a base, so shorter sorts first.
	slices.SortFunc(out, func(a, b RoomInfo) int {
		if n := cmp.Compare(len(a.Number), len(b.Number)); n != 0 {
			return n
		}
		return cmp.Compare(a.Number, b.Number)
	})
	return out
}

func channelNames(channels []domain.Channel) []string {
	return lo.Map(channels, func(ch domain.Channel, _ int) string { return ch.String() })
}
