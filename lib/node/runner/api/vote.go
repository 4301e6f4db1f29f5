package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/council/lib/governance"
	"boscoin.io/council/lib/network/httputils"
	"boscoin.io/council/lib/node/runner/api/resource"
	"boscoin.io/council/lib/storage"
)

type CastVoteRequest struct {
	Voter     string                `json:"voter"`
	Vote      governance.VoteOption `json:"vote"`
	Signature string                `json:"signature"`
}

func (api NetworkHandlerAPI) GetProposalVotesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintVar(r, "id")
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	pq, err := httputils.NewPageQuery(r, httputils.QueryStartAfter)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var startAfter *string
	if pq.HasCursor() {
		voter, err := DecodeVoteCursor(pq.Cursor())
		if err != nil {
			httputils.WriteJSONError(w, err)
			return
		}
		startAfter = &voter
	}

	var p governance.Proposal
	var resp governance.ProposalVotesResponse
	err = api.snapshot(func(st *storage.LevelDBBackend) (err error) {
		if p, err = api.proposal(st, id); err != nil {
			return
		}
		resp, err = governance.QueryProposalVotes(st, id, startAfter, pq.Limit())
		return
	})
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var rs []resource.Resource
	for _, v := range resp.Votes {
		rs = append(rs, resource.NewVote(id, v))
	}

	var next string
	if n := len(resp.Votes); n > 0 && uint64(n) == governance.PageLimit(pq.Limit()) {
		next = pq.NextLink(EncodeVoteCursor(resp.Votes[n-1].Voter))
	}

	list := resource.NewResourceList(rs, pq.SelfLink(), next)
	list.SetExtra("proposal_id", resp.ProposalID)

	// votes are only cast on active proposals
	if p.Status.IsTerminal() {
		setImmutable(w)
	} else {
		setNoCache(w)
	}
	httputils.WriteJSON(w, http.StatusOK, list)
}

func (api NetworkHandlerAPI) GetVoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintVar(r, "id")
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	voter := mux.Vars(r)["voter"]

	var v governance.VoterVote
	err = api.snapshot(func(st *storage.LevelDBBackend) (err error) {
		v, err = governance.QueryVote(st, id, voter)
		return
	})
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	setImmutable(w)
	httputils.WriteJSON(w, http.StatusOK, resource.NewVote(id, v))
}

func (api NetworkHandlerAPI) PostVoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintVar(r, "id")
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var req CastVoteRequest
	if err := readJSON(r, &req); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	data := VoteSigningData(api.host.Self(), id, req.Vote)
	if err := verifySignature(req.Voter, data, req.Signature); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	resp, err := api.host.CastVote(req.Voter, id, req.Vote)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	self := resource.NewVote(id, governance.VoterVote{Voter: req.Voter}).LinkSelf()
	httputils.WriteJSON(w, http.StatusCreated, resource.NewOperation(self, resp))
}
