package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFake_Advance(t *testing.T) {
	req := require.New(t)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := Fake(start)

	req.Equal(start, c.Now())

	c.Advance(30 * time.Minute)
	req.Equal(start.Add(30*time.Minute), c.Now())
}

func TestReal_Moves(t *testing.T) {
	before := time.Now()
	require.False(t, Real().Now().Before(before))
}
