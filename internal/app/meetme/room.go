package meetme

import (
	"slices"
	"sync"
	"time"

	"github.com/dkeye/Meetme/internal/core"
	"github.com/dkeye/Meetme/internal/domain"
	"github.com/samber/lo"
)

// Room is one conference bridge handed out by Control.
//
// Its state is guarded by the owning Control's lock: the exported readers
// take that lock, the unexported mutators expect the caller to hold it.
type Room struct {
	guard *sync.RWMutex

	number     domain.RoomNumber
	forceClose bool

	owner       core.RoomOwner
	channels    map[domain.Channel]struct{}
	active      bool
	lastUpdated time.Time // zero until the first membership change
}

// RoomOption tunes a room at allocation time.
type RoomOption func(*Room)

// WithForceClose makes the room hang up its last remaining channel once
// fewer than two channels are left.
func WithForceClose() RoomOption {
	return func(r *Room) { r.forceClose = true }
}

func newRoom(guard *sync.RWMutex, number domain.RoomNumber, owner core.RoomOwner, opts ...RoomOption) *Room {
	r := &Room{
		guard:    guard,
		number:   number,
		owner:    owner,
		channels: make(map[domain.Channel]struct{}),
		active:   true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RoomInfo is a read-only view for APIs.
type RoomInfo struct {
	Number      domain.RoomNumber `json:"number"`
	Channels    []domain.Channel  `json:"channels"`
	Active      bool              `json:"active"`
	ForceClose  bool              `json:"force_close"`
	HasOwner    bool              `json:"has_owner"`
	LastUpdated *time.Time        `json:"last_updated,omitempty"`
}

func (r *Room) Number() domain.RoomNumber { return r.number }
func (r *Room) ForceClose() bool          { return r.forceClose }

func (r *Room) Owner() core.RoomOwner {
	r.guard.RLock()
	defer r.guard.RUnlock()
	return r.owner
}

func (r *Room) IsActive() bool {
	r.guard.RLock()
	defer r.guard.RUnlock()
	return r.active
}

func (r *Room) LastUpdated() time.Time {
	r.guard.RLock()
	defer r.guard.RUnlock()
	return r.lastUpdated
}

func (r *Room) ChannelCount() int {
	r.guard.RLock()
	defer r.guard.RUnlock()
	return r.channelCount()
}

// Channels returns the current members sorted by name.
func (r *Room) Channels() []domain.Channel {
	r.guard.RLock()
	defer r.guard.RUnlock()
	return r.channelList()
}

func (r *Room) Info() RoomInfo {
	r.guard.RLock()
	defer r.guard.RUnlock()
	return r.info()
}

func (r *Room) info() RoomInfo {
	info := RoomInfo{
		Number:     r.number,
		Channels:   r.channelList(),
		Active:     r.active,
		ForceClose: r.forceClose,
		HasOwner:   r.owner != nil,
	}
	if !r.lastUpdated.IsZero() {
		ts := r.lastUpdated
		info.LastUpdated = &ts
	}
	return info
}

func (r *Room) channelList() []domain.Channel {
	out := lo.Keys(r.channels)
	slices.Sort(out)
	return out
}

// addChannel reports whether membership changed.
func (r *Room) addChannel(ch domain.Channel) bool {
	if _, ok := r.channels[ch]; ok {
		return false
	}
	r.channels[ch] = struct{}{}
	return true
}

func (r *Room) removeChannel(ch domain.Channel) {
	delete(r.channels, ch)
}

func (r *Room) channelCount() int { return len(r.channels) }

func (r *Room) markInactive() { r.active = false }

func (r *Room) clearOwner() { r.owner = nil }

func (r *Room) touch(now time.Time) { r.lastUpdated = now }

// drain empties an active room and returns the channels that were in it.
// An inactive room is left alone.
func (r *Room) drain() []domain.Channel {
	if !r.active {
		return nil
	}
	channels := r.channelList()
	for _, ch := range channels {
		r.removeChannel(ch)
	}
	return channels
}
