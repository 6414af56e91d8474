package meetme

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dkeye/Meetme/internal/app/feed"
	"github.com/dkeye/Meetme/internal/clock"
	"github.com/dkeye/Meetme/internal/domain"
	"github.com/dkeye/Meetme/internal/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var start = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type owner struct {
	required atomic.Bool
}

func newOwner(required bool) *owner {
	o := &owner{}
	o.required.Store(required)
	return o
}

func (o *owner) IsRoomStillRequired() bool { return o.required.Load() }

func (o *owner) release() { o.required.Store(false) }

type fixture struct {
	control *Control
	sw      *mocks.MockSwitch
	bus     *feed.Bus
	clock   *clock.FakeClock
}

func emptyList() *domain.ResponseEvents {
	return &domain.ResponseEvents{
		ActionID: "probe",
		Events:   []domain.Event{&domain.ConfbridgeListCompleteEvent{ActionID: "probe"}},
	}
}

func expectProbe(sw *mocks.MockSwitch) {
	sw.EXPECT().Version().Return(domain.Version{Major: 16, Minor: 2, Patch: 1}).AnyTimes()
	sw.EXPECT().SendEventGeneratingAction(gomock.Any(), gomock.Any()).Return(emptyList(), nil)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	sw := mocks.NewMockSwitch(ctrl)
	expectProbe(sw)

	bus := feed.NewBus()
	clk := clock.Fake(start)
	c, err := New(context.Background(), sw, bus, Settings{
		BaseAddress: 5000,
		RoomCount:   3,
		Clock:       clk,
	})
	require.NoError(t, err)
	t.Cleanup(c.Stop)

	return &fixture{control: c, sw: sw, bus: bus, clock: clk}
}

func (f *fixture) join(room domain.RoomNumber, channel string) {
	f.bus.Publish(&domain.MeetmeJoinEvent{Meetme: room, Channel: domain.Channel(channel)})
}

func (f *fixture) leave(room domain.RoomNumber, channel string) {
	f.bus.Publish(&domain.MeetmeLeaveEvent{Meetme: room, Channel: domain.Channel(channel)})
}
