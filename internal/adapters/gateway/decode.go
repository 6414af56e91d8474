package gateway

import (
	"strconv"
	"strings"

	"github.com/dkeye/Meetme/internal/domain"
)

// decodeEvent turns a packet into a typed event. Membership events with a
// missing room or channel, and events we do not model, come back as RawEvent.
func decodeEvent(msg message) domain.Event {
	name := msg["Event"]
	switch name {
	case domain.EventMeetmeJoin, domain.EventConfbridgeJoin:
		room, ch, ok := membership(msg)
		if !ok {
			break
		}
		return &domain.MeetmeJoinEvent{Meetme: room, Channel: ch}
	case domain.EventMeetmeLeave, domain.EventConfbridgeLeave:
		room, ch, ok := membership(msg)
		if !ok {
			break
		}
		return &domain.MeetmeLeaveEvent{Meetme: room, Channel: ch}
	case domain.EventConfbridgeList:
		return &domain.ConfbridgeListEvent{
			ActionID:     msg["ActionID"],
			Conference:   domain.RoomNumber(msg["Conference"]),
			Channel:      domain.Channel(msg["Channel"]),
			CallerIDNum:  msg["CallerIDNum"],
			CallerIDName: msg["CallerIDName"],
			Admin:        isYes(msg["Admin"]),
			Muted:        isYes(msg["Muted"]),
		}
	case domain.EventConfbridgeListComplete:
		items, _ := strconv.Atoi(msg["ListItems"])
		return &domain.ConfbridgeListCompleteEvent{ActionID: msg["ActionID"], ListItems: items}
	}
	return &domain.RawEvent{Name: name, Fields: msg}
}

// membership reads the room and channel of a join/leave. MeetMe reports the
// room as "Meetme", ConfBridge as "Conference".
func membership(msg message) (domain.RoomNumber, domain.Channel, bool) {
	room := msg["Meetme"]
	if room == "" {
		room = msg["Conference"]
	}
	if room == "" {
		return "", "", false
	}
	ch, err := domain.ParseChannel(msg["Channel"])
	if err != nil {
		return "", "", false
	}
	return domain.RoomNumber(room), ch, true
}

func isYes(v string) bool {
	switch strings.ToLower(v) {
	case "yes", "true", "1", "on":
		return true
	}
	return false
}
