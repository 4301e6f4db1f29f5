package resource

import (
	"encoding/json"

	"github.com/nvellon/hal"

	"boscoin.io/council/lib/outbox"
)

type OutboxEntry struct {
	e outbox.Entry
}

func NewOutboxEntry(e outbox.Entry) *OutboxEntry {
	return &OutboxEntry{e: e}
}

// rawMsg keeps json payloads readable and falls back to bytes.
func rawMsg(b []byte) interface{} {
	if json.Valid(b) {
		return json.RawMessage(b)
	}
	return b
}

func (r OutboxEntry) GetMap() hal.Entry {
	e := r.e
	return hal.Entry{
		"sequence":    e.Sequence,
		"height":      e.Height,
		"action":      e.Action,
		"proposal_id": e.ProposalID,
		"target":      e.Message.Target,
		"msg":         rawMsg(e.Message.Msg),
		"created":     e.Created,
	}
}

func (r OutboxEntry) Resource() *hal.Resource {
	return hal.NewResource(r, r.LinkSelf())
}

func (r OutboxEntry) LinkSelf() string {
	return expand(URLOutboxEntry, "sequence", formatUint(r.e.Sequence))
}
