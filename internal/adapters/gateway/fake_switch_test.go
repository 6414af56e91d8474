package gateway

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dkeye/Meetme/internal/domain"
	"github.com/gorilla/websocket"
)

// fakeSwitch is a manager gateway that answers the handful of actions the
// client sends. Options must be set before the client connects.
type fakeSwitch struct {
	server      *httptest.Server
	version     string
	rejectLogin bool
	idle        bool // no conferences running

	// hangups receives every channel the switch was asked to hang up.
	hangups chan string

	mu   sync.Mutex
	conn *websocket.Conn
}

func newFakeSwitch(t *testing.T) *fakeSwitch {
	t.Helper()
	f := &fakeSwitch{version: "Asterisk 16.2.1", hangups: make(chan string, 16)}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeSwitch) url() string {
	return "ws" + strings.TrimPrefix(f.server.URL, "http")
}

func (f *fakeSwitch) serve(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	f.mu.Lock()
	f.conn = conn
	f.mu.Unlock()
	defer conn.Close()

	for {
		var req message
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		f.answer(req)
	}
}

// push sends an unsolicited packet to the client.
func (f *fakeSwitch) push(msg message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.conn.WriteJSON(msg)
}

// drop closes the connection without a close handshake.
func (f *fakeSwitch) drop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conn.Close()
}

func (f *fakeSwitch) answer(req message) {
	id := req["ActionID"]
	success := message{"Response": "Success", "ActionID": id}

	switch req["Action"] {
	case domain.ActionLogin:
		if f.rejectLogin {
			_ = f.push(message{"Response": "Error", "ActionID": id, "Message": "Authentication failed"})
			return
		}
		_ = f.push(success)
	case domain.ActionCoreSettings:
		_ = f.push(message{"Response": "Success", "ActionID": id, "AsteriskVersion": f.version})
	case domain.ActionConfbridgeList:
		if f.idle {
			_ = f.push(message{"Response": "Error", "ActionID": id, "Message": "No active conferences."})
			return
		}
		_ = f.push(message{"Response": "Success", "ActionID": id, "EventList": "start"})
		_ = f.push(message{"Event": "ConfbridgeList", "ActionID": id, "Conference": "5000", "Channel": "SIP/alice-1", "Admin": "Yes", "Muted": "No"})
		_ = f.push(message{"Event": "ConfbridgeList", "ActionID": id, "Conference": "5001", "Channel": "SIP/bob-2", "Admin": "No", "Muted": "Yes"})
		_ = f.push(message{"Event": "ConfbridgeListComplete", "ActionID": id, "ListItems": "2"})
	case domain.ActionHangup:
		select {
		case f.hangups <- req["Channel"]:
		default:
		}
		if req["Channel"] == "SIP/gone-9" {
			_ = f.push(message{"Response": "Error", "ActionID": id, "Message": "No such channel"})
			return
		}
		_ = f.push(success)
	default:
		// left unanswered
	}
}

type recorder chan domain.Event

func (r recorder) Publish(e domain.Event) { r <- e }
