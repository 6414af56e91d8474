// Package clock abstracts the wall clock so staleness decisions can be
// tested without sleeping.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Real returns the system clock.
func Real() Clock { return realClock{} }

// FakeClock only moves when told to.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func Fake(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (f *FakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward by d.
func (f *FakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
