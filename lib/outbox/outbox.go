//
// Package outbox stores the outbound messages emitted by governance
// operations, in emission order, for relayers to pick up.
//
// Entries are written in the same transaction as the operation which
// emitted them, so a discarded operation leaves no entry behind.
//
package outbox

import (
	"github.com/vmihailenco/msgpack"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/governance"
	"boscoin.io/council/lib/storage"
)

const (
	EntryPrefix string = "gov-outbox-entry-"
	SequenceKey string = "gov-outbox-seq"
)

type Entry struct {
	Sequence   uint64             `json:"sequence" msgpack:"sequence"`
	Height     uint64             `json:"height" msgpack:"height"`
	Action     string             `json:"action" msgpack:"action"`
	ProposalID uint64             `json:"proposal_id" msgpack:"proposal_id"`
	Message    governance.Message `json:"message" msgpack:"message"`
	Created    string             `json:"created" msgpack:"created"`
}

func (e Entry) Serialize() ([]byte, error) {
	return msgpack.Marshal(e)
}

func (e *Entry) Deserialize(b []byte) error {
	return msgpack.Unmarshal(b, e)
}

func GetEntryKey(sequence uint64) string {
	b := common.EncodeUint64ToByteSlice(sequence)
	return EntryPrefix + string(b[:])
}

type sequence struct {
	Last uint64 `json:"last"`
}

func getSequence(st *storage.LevelDBBackend) (s sequence, err error) {
	if err = st.Get(SequenceKey, &s); errors.StorageRecordDoesNotExist.Is(err) {
		err = nil
	}

	return
}

//
// Push appends `messages`, in order, and returns the stored entries.
// Sequences start at 1.
//
func Push(st *storage.LevelDBBackend, height uint64, action string, proposalID uint64, messages ...governance.Message) (entries []Entry, err error) {
	if len(messages) < 1 {
		return
	}

	var seq sequence
	if seq, err = getSequence(st); err != nil {
		return
	}

	created := common.NowISO8601()

	var items []storage.Item
	for _, m := range messages {
		seq.Last++
		e := Entry{
			Sequence:   seq.Last,
			Height:     height,
			Action:     action,
			ProposalID: proposalID,
			Message:    m,
			Created:    created,
		}
		entries = append(entries, e)
		items = append(items, storage.Item{Key: GetEntryKey(e.Sequence), Value: e})
	}

	if err = st.News(items...); err != nil {
		return
	}
	if err = st.Put(SequenceKey, seq); err != nil {
		return
	}

	return
}

func Get(st *storage.LevelDBBackend, sequence uint64) (e Entry, err error) {
	var b []byte
	if b, err = st.GetRaw(GetEntryKey(sequence)); err != nil {
		return
	}

	err = e.Deserialize(b)
	return
}

// List returns at most `limit` entries from sequence `start` (inclusive).
func List(st *storage.LevelDBBackend, start, limit uint64) (entries []Entry, err error) {
	option := storage.NewWalkOption(GetEntryKey(start), limit, false)

	err = st.Walk(EntryPrefix, option, func(key, value []byte) (bool, error) {
		var e Entry
		if err := e.Deserialize(value); err != nil {
			return false, err
		}
		entries = append(entries, e)
		return true, nil
	})

	return
}

// Last returns the sequence of the last pushed entry, 0 when empty.
func Last(st *storage.LevelDBBackend) (uint64, error) {
	seq, err := getSequence(st)
	return seq.Last, err
}
