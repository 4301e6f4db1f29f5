package api

import (
	"net/http"
	"strconv"

	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/governance"
	"boscoin.io/council/lib/network/httputils"
	"boscoin.io/council/lib/node/runner/api/resource"
	"boscoin.io/council/lib/storage"
)

// SubmitProposalRequest is sent by the governance token when it receives a
// deposit; `Signature` is made by the token.
type SubmitProposalRequest struct {
	Deposit   governance.Deposit           `json:"deposit"`
	Proposal  governance.SubmitProposalMsg `json:"proposal"`
	Signature string                       `json:"signature"`
}

// proposal returns a terminal proposal from the cache, or reads it from
// `st` and caches it when it is terminal.
func (api NetworkHandlerAPI) proposal(st *storage.LevelDBBackend, id uint64) (governance.Proposal, error) {
	if cached, found := api.terminal.Get(id); found {
		return cached.(governance.Proposal), nil
	}

	p, err := governance.QueryProposal(st, id)
	if err != nil {
		return p, err
	}
	if p.Status.IsTerminal() {
		api.terminal.Add(id, p)
	}

	return p, nil
}

func (api NetworkHandlerAPI) GetProposalHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintVar(r, "id")
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var p governance.Proposal
	err = api.snapshot(func(st *storage.LevelDBBackend) (err error) {
		p, err = api.proposal(st, id)
		return
	})
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	if p.Status.IsTerminal() {
		setImmutable(w)
	} else {
		setNoCache(w)
	}
	httputils.WriteJSON(w, http.StatusOK, resource.NewProposal(p))
}

func (api NetworkHandlerAPI) GetProposalsHandler(w http.ResponseWriter, r *http.Request) {
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

	var resp governance.ProposalsListResponse
	err = api.snapshot(func(st *storage.LevelDBBackend) (err error) {
		resp, err = governance.QueryProposals(st, start, pq.Limit())
		return
	})
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var rs []resource.Resource
	for _, p := range resp.ProposalList {
		rs = append(rs, resource.NewProposal(p))
	}

	var next string
	if n := len(resp.ProposalList); n > 0 && uint64(n) == governance.PageLimit(pq.Limit()) {
		next = pq.NextLink(strconv.FormatUint(resp.ProposalList[n-1].ID+1, 10))
	}

	list := resource.NewResourceList(rs, pq.SelfLink(), next)
	list.SetExtra("proposal_count", resp.ProposalCount)

	setNoCache(w)
	httputils.WriteJSON(w, http.StatusOK, list)
}

func (api NetworkHandlerAPI) PostProposalHandler(w http.ResponseWriter, r *http.Request) {
	var req SubmitProposalRequest
	if err := readJSON(r, &req); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	data, err := SubmitSigningData(api.host.Self(), req.Deposit, req.Proposal)
	if err != nil {
		httputils.WriteJSONError(w, errors.InvalidMessage.Clone().SetData("error", err.Error()))
		return
	}

	// the deposit is vouched by the token which received it; the engine
	// checks that this token is the governance token.
	if err := verifySignature(req.Deposit.Token, data, req.Signature); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	resp, err := api.host.SubmitProposal(req.Deposit, req.Proposal)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	self := api.HandlerURLPattern("/proposals/" + strconv.FormatUint(resp.ProposalID, 10))
	httputils.WriteJSON(w, http.StatusCreated, resource.NewOperation(self, resp.Response).Set("proposal_id", resp.ProposalID))
}

func (api NetworkHandlerAPI) PostEndProposalHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintVar(r, "id")
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	resp, err := api.host.EndProposal(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.WriteJSON(w, http.StatusOK, resource.NewOperation(r.URL.Path, resp.Response).Set("result", resp.Result))
}

func (api NetworkHandlerAPI) PostExecuteProposalHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintVar(r, "id")
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	resp, err := api.host.ExecuteProposal(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.WriteJSON(w, http.StatusOK, resource.NewOperation(r.URL.Path, resp))
}
