// Package domain contains switch-side entities without logic, just meta-data
package domain

import (
	"errors"
	"strings"
)

// MaxChannelLen matches the switch's own limit on channel names.
const MaxChannelLen = 80

var (
	ErrChannelEmpty   = errors.New("channel name empty")
	ErrChannelTooLong = errors.New("channel name too long")
)

// Channel identifies one active call leg on the switch, e.g. "SIP/200-0000002a".
type Channel string

// ParseChannel is a tiny helper to avoid ad-hoc conversions in adapters.
func ParseChannel(name string) (Channel, error) {
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return "", ErrChannelEmpty
	}
	if len(name) > MaxChannelLen {
		return "", ErrChannelTooLong
	}
	return Channel(name), nil
}

func (c Channel) String() string { return string(c) }
