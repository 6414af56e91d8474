package domain

import "strconv"

// RoomNumber is the switch-side address of a conference room.
type RoomNumber string

// NewRoomNumber derives a room address from the configured base address.
func NewRoomNumber(base, ordinal int) RoomNumber {
	return RoomNumber(strconv.Itoa(base + ordinal))
}

func (n RoomNumber) String() string { return string(n) }
