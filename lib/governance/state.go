package governance

import (
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/storage"
)

// GlobalState is the proposal id generator. Ids are 1-based: the first
// submitted proposal gets id 1.
type GlobalState struct {
	ProposalCount uint64 `json:"proposal_count"`
}

func (g GlobalState) Save(st *storage.LevelDBBackend) error {
	return st.Put(GlobalStateKey, g)
}

// NextProposalID increments the counter and returns the new id. The caller
// saves the state in the same unit of work as the proposal.
func (g *GlobalState) NextProposalID() (uint64, error) {
	if g.ProposalCount == ^uint64(0) {
		return 0, errors.ArithmeticOverflow.Clone().SetData("field", "proposal_count")
	}

	g.ProposalCount++
	return g.ProposalCount, nil
}

func GetGlobalState(st *storage.LevelDBBackend) (g GlobalState, err error) {
	if err = st.Get(GlobalStateKey, &g); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			err = errors.NotInstantiated
		}
		return
	}

	return
}
