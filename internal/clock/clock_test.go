package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManualClockAdvance(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 10, 1, 6, 0, 0, 0, time.UTC)
	c := NewManual(start)
	require.Equal(t, start, c.Now())

	next := c.Advance(90 * time.Minute)
	require.Equal(t, start.Add(90*time.Minute), next)
	require.Equal(t, next, c.Now())

	c.Set(start)
	require.Equal(t, start, c.Now())
}

func TestEveryReturnsCommand(t *testing.T) {
	t.Parallel()

	require.NotNil(t, Every(0, nil))
	require.NotNil(t, Every(time.Minute, Real{}))
}
