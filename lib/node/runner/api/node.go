package api

import (
	"net/http"

	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/governance"
	"boscoin.io/council/lib/network/httputils"
	"boscoin.io/council/lib/node/runner/api/resource"
	"boscoin.io/council/lib/storage"
)

func (api NetworkHandlerAPI) GetNodeInfoHandler(w http.ResponseWriter, r *http.Request) {
	var count uint64
	err := api.snapshot(func(st *storage.LevelDBBackend) error {
		gs, err := governance.GetGlobalState(st)
		if err != nil && !errors.NotInstantiated.Is(err) {
			return err
		}
		count = gs.ProposalCount
		return nil
	})
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	setNoCache(w)
	httputils.WriteJSON(w, http.StatusOK, resource.NewNodeInfo(nodeInfo(api.host, count)))
}

func (api NetworkHandlerAPI) GetConfigHandler(w http.ResponseWriter, r *http.Request) {
	var config governance.Config
	err := api.snapshot(func(st *storage.LevelDBBackend) (err error) {
		config, err = governance.QueryConfig(st)
		return
	})
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	setNoCache(w)
	httputils.WriteJSON(w, http.StatusOK, resource.NewConfig(config))
}
