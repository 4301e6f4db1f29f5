package outbox

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/council/lib/storage"
)

type testSender struct {
	sync.Mutex
	failures map[uint64]int
	sent     []uint64
	onSend   func(Entry)
}

func (s *testSender) Send(ctx context.Context, e Entry) error {
	s.Lock()
	defer s.Unlock()

	if s.failures[e.Sequence] > 0 {
		s.failures[e.Sequence]--
		return fmt.Errorf("unavailable")
	}

	s.sent = append(s.sent, e.Sequence)
	if s.onSend != nil {
		s.onSend(e)
	}
	return nil
}

func immediately(time.Duration) <-chan time.Time {
	c := make(chan time.Time, 1)
	c <- time.Now()
	return c
}

func TestRelayDeliverInOrder(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := Push(st, 10, "execute_proposal", 1, testMessages(5)...)
	require.NoError(t, err)

	sender := &testSender{failures: map[uint64]int{2: 3}}
	relay := NewRelay(st, sender, WithRelayBatchSize(3))
	relay.afterFunc = immediately

	n, err := relay.deliverPending(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(3), n)
	require.Equal(t, []uint64{1, 2, 3}, sender.sent)

	delivered, err := Delivered(st)
	require.NoError(t, err)
	require.Equal(t, uint64(3), delivered)

	n, err = relay.deliverPending(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(2), n)
	require.Equal(t, []uint64{1, 2, 3, 4, 5}, sender.sent)

	n, err = relay.deliverPending(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(0), n)
}

func TestRelayResume(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := Push(st, 10, "execute_proposal", 1, testMessages(4)...)
	require.NoError(t, err)
	require.NoError(t, SetDelivered(st, 2))

	sender := &testSender{}
	_, err = NewRelay(st, sender).deliverPending(context.Background())
	require.NoError(t, err)
	require.Equal(t, []uint64{3, 4}, sender.sent)
}

func TestRelayRun(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := Push(st, 10, "execute_proposal", 1, testMessages(2)...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	sender := &testSender{
		failures: map[uint64]int{1: 1},
		onSend: func(e Entry) {
			if e.Sequence == 2 {
				cancel()
			}
		},
	}

	relay := NewRelay(st, sender, WithRelayIntervals(time.Millisecond, time.Millisecond))

	done := make(chan error)
	go func() { done <- relay.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("relay did not stop")
	}

	require.Equal(t, []uint64{1, 2}, sender.sent)

	delivered, err := Delivered(st)
	require.NoError(t, err)
	require.Equal(t, uint64(2), delivered)
}

func TestRelayCanceledWhileRetrying(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := Push(st, 10, "execute_proposal", 1, testMessages(1)...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sender := &testSender{failures: map[uint64]int{1: 100}}
	require.NoError(t, NewRelay(st, sender).Run(ctx))
	require.Empty(t, sender.sent)

	delivered, err := Delivered(st)
	require.NoError(t, err)
	require.Equal(t, uint64(0), delivered)
}
