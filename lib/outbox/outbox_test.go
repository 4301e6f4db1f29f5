package outbox

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/council/lib/common/keypair"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/governance"
	"boscoin.io/council/lib/storage"
)

func testMessages(n int) (messages []governance.Message) {
	for i := 0; i < n; i++ {
		messages = append(messages, governance.Message{
			Target: keypair.RandomAddress(),
			Msg:    []byte(fmt.Sprintf(`{"n":%d}`, i)),
		})
	}
	return
}

func TestPushAndList(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	last, err := Last(st)
	require.NoError(t, err)
	require.Equal(t, uint64(0), last)

	entries, err := Push(st, 10, "execute_proposal", 3)
	require.NoError(t, err)
	require.Empty(t, entries)

	messages := testMessages(3)
	entries, err = Push(st, 10, "execute_proposal", 3, messages...)
	require.NoError(t, err)
	require.Equal(t, 3, len(entries))

	more := testMessages(2)
	_, err = Push(st, 11, "end_proposal", 4, more...)
	require.NoError(t, err)

	last, err = Last(st)
	require.NoError(t, err)
	require.Equal(t, uint64(5), last)

	all, err := List(st, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 5, len(all))
	for i, e := range all {
		require.Equal(t, uint64(i+1), e.Sequence)
	}
	require.Equal(t, messages, []governance.Message{all[0].Message, all[1].Message, all[2].Message})
	require.Equal(t, "end_proposal", all[4].Action)
	require.Equal(t, uint64(4), all[4].ProposalID)
	require.Equal(t, uint64(11), all[4].Height)

	page, err := List(st, 3, 2)
	require.NoError(t, err)
	require.Equal(t, 2, len(page))
	require.Equal(t, uint64(3), page[0].Sequence)
	require.Equal(t, uint64(4), page[1].Sequence)

	e, err := Get(st, 2)
	require.NoError(t, err)
	require.Equal(t, messages[1], e.Message)

	_, err = Get(st, 6)
	require.True(t, errors.StorageRecordDoesNotExist.Is(err))
}

func TestPushDiscarded(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	ts, err := st.OpenTransaction()
	require.NoError(t, err)
	_, err = Push(ts, 1, "end_proposal", 1, testMessages(1)...)
	require.NoError(t, err)
	require.NoError(t, ts.Discard())

	last, err := Last(st)
	require.NoError(t, err)
	require.Equal(t, uint64(0), last)
}
