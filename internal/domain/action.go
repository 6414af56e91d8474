package domain

import (
	"errors"
	"fmt"
)

var ErrActionFailed = errors.New("switch rejected action")

const (
	ActionLogin          = "Login"
	ActionCoreSettings   = "CoreSettings"
	ActionHangup         = "Hangup"
	ActionConfbridgeList = "ConfbridgeList"
)

// Action is a command sent to the switch. Fields are protocol headers other
// than Action and ActionID.
type Action struct {
	Name   string
	Fields map[string]string
}

func NewAction(name string, kv ...string) Action {
	a := Action{Name: name, Fields: make(map[string]string, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		a.Fields[kv[i]] = kv[i+1]
	}
	return a
}

// CompletionEvent names the event that ends the response list of an
// event-generating action.
func (a Action) CompletionEvent() string { return a.Name + "Complete" }

// ActionError is the switch answering an action with Response: Error.
// It matches ErrActionFailed under errors.Is.
type ActionError struct {
	Action  string
	Message string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrActionFailed, e.Message)
}

func (e *ActionError) Unwrap() error { return ErrActionFailed }
