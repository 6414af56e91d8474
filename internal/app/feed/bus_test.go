package feed

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dkeye/Meetme/internal/domain"
	"github.com/stretchr/testify/require"
)

func join(room, channel string) *domain.MeetmeJoinEvent {
	return &domain.MeetmeJoinEvent{Meetme: domain.RoomNumber(room), Channel: domain.Channel(channel)}
}

func TestBus_Subscribe(t *testing.T) {
	req := require.New(t)
	bus := NewBus()

	called := false
	id := bus.Subscribe(domain.EventMeetmeJoin, func(domain.Event) { called = true })

	req.NotEmpty(id)
	req.Equal(1, bus.SubscriptionCount())
	req.False(called, "handler must not run before a publish")
}

func TestBus_Publish_RoutesByType(t *testing.T) {
	req := require.New(t)
	bus := NewBus()

	var got domain.Event
	bus.Subscribe(domain.EventMeetmeJoin, func(e domain.Event) { got = e })
	bus.Subscribe(domain.EventMeetmeLeave, func(domain.Event) {
		t.Error("leave handler called for a join event")
	})

	// When a join is published
	bus.Publish(join("5000", "SIP/200-00000001"))

	// Then only the join handler sees it
	req.NotNil(got)
	evt, ok := got.(*domain.MeetmeJoinEvent)
	req.True(ok)
	req.Equal(domain.RoomNumber("5000"), evt.Meetme)
}

func TestBus_Publish_SpecificBeforeWildcard(t *testing.T) {
	req := require.New(t)
	bus := NewBus()

	var order []string
	bus.SubscribeAll(func(domain.Event) { order = append(order, "all") })
	bus.Subscribe(domain.EventMeetmeJoin, func(domain.Event) { order = append(order, "join-1") })
	bus.Subscribe(domain.EventMeetmeJoin, func(domain.Event) { order = append(order, "join-2") })

	bus.Publish(join("5000", "SIP/200-00000001"))

	req.Equal([]string{"join-1", "join-2", "all"}, order)
}

func TestBus_Unsubscribe(t *testing.T) {
	req := require.New(t)
	bus := NewBus()

	calls := 0
	id := bus.Subscribe(domain.EventMeetmeJoin, func(domain.Event) { calls++ })

	req.True(bus.Unsubscribe(id))
	req.False(bus.Unsubscribe(id), "second unsubscribe finds nothing")
	req.Zero(bus.SubscriptionCount())

	bus.Publish(join("5000", "SIP/200-00000001"))
	req.Zero(calls)
}

func TestBus_PanickingHandlerDoesNotStopDelivery(t *testing.T) {
	req := require.New(t)
	bus := NewBus()

	delivered := false
	bus.Subscribe(domain.EventMeetmeJoin, func(domain.Event) { panic("boom") })
	bus.Subscribe(domain.EventMeetmeJoin, func(domain.Event) { delivered = true })

	req.NotPanics(func() { bus.Publish(join("5000", "SIP/200-00000001")) })
	req.True(delivered)
}

func TestBus_ConcurrentPublishers(t *testing.T) {
	bus := NewBus()

	var count atomic.Int64
	bus.Subscribe(domain.EventMeetmeJoin, func(domain.Event) { count.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bus.Publish(join("5000", "SIP/200-00000001"))
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(800), count.Load())
}
