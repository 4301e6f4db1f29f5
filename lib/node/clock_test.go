package node

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/council/lib/storage"
)

func TestBlockClock(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	clock, err := NewBlockClock(st, 5, time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, uint64(5), clock.Height())

	height, err := clock.Advance()
	require.NoError(t, err)
	require.Equal(t, uint64(6), height)

	// a restarted clock continues from the stored height
	restarted, err := NewBlockClock(st, 5, time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, uint64(6), restarted.Height())
}

func TestBlockClockRun(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	clock, err := NewBlockClock(st, 1, time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- clock.Run(ctx)
	}()

	deadline := time.Now().Add(time.Second)
	for clock.Height() < 4 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	require.True(t, clock.Height() > 3)
	require.NoError(t, <-done)
}
