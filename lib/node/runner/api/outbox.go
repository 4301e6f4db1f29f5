package api

import (
	"net/http"
	"strconv"

	"boscoin.io/council/lib/governance"
	"boscoin.io/council/lib/network/httputils"
	"boscoin.io/council/lib/node/runner/api/resource"
	"boscoin.io/council/lib/outbox"
	"boscoin.io/council/lib/storage"
)

func (api NetworkHandlerAPI) GetOutboxHandler(w http.ResponseWriter, r *http.Request) {
	pq, err := httputils.NewPageQuery(r, httputils.QueryStart)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	start, err := parseUintQuery(pq.Cursor(), httputils.QueryStart)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var from uint64
	if start != nil {
		from = *start
	}

	limit := governance.PageLimit(pq.Limit())

	entries := []outbox.Entry{}
	var last, delivered uint64
	err = api.snapshot(func(st *storage.LevelDBBackend) error {
		var err error
		if last, err = outbox.Last(st); err != nil {
			return err
		}
		if delivered, err = outbox.Delivered(st); err != nil {
			return err
		}
		if limit < 1 {
			return nil
		}

		es, err := outbox.List(st, from, limit)
		entries = append(entries, es...)
		return err
	})
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var rs []resource.Resource
	for _, e := range entries {
		rs = append(rs, resource.NewOutboxEntry(e))
	}

	var next string
	if n := len(entries); n > 0 && uint64(n) == limit {
		next = pq.NextLink(strconv.FormatUint(entries[n-1].Sequence+1, 10))
	}

	list := resource.NewResourceList(rs, pq.SelfLink(), next)
	list.SetExtra("last_sequence", last)
	list.SetExtra("delivered_sequence", delivered)

	setNoCache(w)
	httputils.WriteJSON(w, http.StatusOK, list)
}

func (api NetworkHandlerAPI) GetOutboxEntryHandler(w http.ResponseWriter, r *http.Request) {
	sequence, err := parseUintVar(r, "sequence")
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var e outbox.Entry
	err = api.snapshot(func(st *storage.LevelDBBackend) (err error) {
		e, err = outbox.Get(st, sequence)
		return
	})
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	setImmutable(w)
	httputils.WriteJSON(w, http.StatusOK, resource.NewOutboxEntry(e))
}
