package meetme

import "time"

// LeaveAction is what the registry does after a channel leaves a room.
type LeaveAction int

const (
	NoAction LeaveAction = iota
	// HangupRemaining hangs up whoever is left and deactivates the room.
	HangupRemaining
	// Deactivate marks the room inactive so the next allocation can free it.
	Deactivate
)

func (a LeaveAction) String() string {
	switch a {
	case HangupRemaining:
		return "hangup_remaining"
	case Deactivate:
		return "deactivate"
	default:
		return "none"
	}
}

type Policy interface {
	// OnLeave decides the room's fate given the channels left after a leave.
	OnLeave(channels int, forceClose bool) LeaveAction
	// IsStale reports whether an unclaimed room's membership can no longer
	// be trusted. lastUpdated is zero for rooms nobody ever joined.
	IsStale(lastUpdated time.Time, channels int, now time.Time) bool
}

const (
	DefaultStaleAfter = 30 * time.Minute
	// closeBelow is the occupancy under which a conference is over.
	closeBelow = 2
)

// SimplePolicy closes force-close rooms once fewer than two channels are
// left, and distrusts under-occupied rooms nobody touched for StaleAfter.
type SimplePolicy struct {
	StaleAfter time.Duration
}

func (SimplePolicy) OnLeave(channels int, forceClose bool) LeaveAction {
	switch {
	case channels < closeBelow && forceClose:
		return HangupRemaining
	case channels < 1:
		return Deactivate
	default:
		return NoAction
	}
}

func (p SimplePolicy) IsStale(lastUpdated time.Time, channels int, now time.Time) bool {
	if lastUpdated.IsZero() {
		return false
	}
	after := p.StaleAfter
	if after <= 0 {
		after = DefaultStaleAfter
	}
	return now.Sub(lastUpdated) > after && channels < closeBelow
}
