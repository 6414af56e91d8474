package domain

// Event names as the switch reports them.
const (
	EventMeetmeJoin             = "MeetmeJoin"
	EventMeetmeLeave            = "MeetmeLeave"
	EventConfbridgeJoin         = "ConfbridgeJoin"
	EventConfbridgeLeave        = "ConfbridgeLeave"
	EventConfbridgeList         = "ConfbridgeList"
	EventConfbridgeListComplete = "ConfbridgeListComplete"
)

// Event is an already-parsed notification from the switch.
type Event interface {
	EventType() string
}

// MeetmeJoinEvent reports a channel entering a conference room.
// ConfbridgeJoin notifications are delivered as this type too.
type MeetmeJoinEvent struct {
	Meetme  RoomNumber
	Channel Channel
}

func (*MeetmeJoinEvent) EventType() string { return EventMeetmeJoin }

// MeetmeLeaveEvent reports a channel leaving a conference room.
type MeetmeLeaveEvent struct {
	Meetme  RoomNumber
	Channel Channel
}

func (*MeetmeLeaveEvent) EventType() string { return EventMeetmeLeave }

// ConfbridgeListEvent is one row of a ConfbridgeList response.
type ConfbridgeListEvent struct {
	ActionID     string
	Conference   RoomNumber
	Channel      Channel
	CallerIDNum  string
	CallerIDName string
	Admin        bool
	Muted        bool
}

func (*ConfbridgeListEvent) EventType() string { return EventConfbridgeList }

// ConfbridgeListCompleteEvent terminates a ConfbridgeList response.
type ConfbridgeListCompleteEvent struct {
	ActionID  string
	ListItems int
}

func (*ConfbridgeListCompleteEvent) EventType() string { return EventConfbridgeListComplete }

// RawEvent carries an event the adapters do not model.
type RawEvent struct {
	Name   string
	Fields map[string]string
}

func (e *RawEvent) EventType() string { return e.Name }

// ResponseEvents is the batch of events answering one event-generating action.
type ResponseEvents struct {
	ActionID string
	Events   []Event
}
