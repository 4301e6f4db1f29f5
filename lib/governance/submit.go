package governance

import (
	"fmt"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/storage"
)

// Deposit describes the tokens sent along with a proposal. `Token` is the
// contract which forwarded them, `Submitter` the account they came from and
// `Receipt` the id of the transfer in the token; a receipt funds one
// proposal only.
type Deposit struct {
	Token     string        `json:"token"`
	Submitter string        `json:"sender"`
	Amount    common.Amount `json:"amount"`
	Receipt   string        `json:"receipt"`
}

type depositReceipt struct {
	ProposalID uint64 `json:"proposal_id"`
}

func checkDepositReceipt(st *storage.LevelDBBackend, deposit Deposit) error {
	if len(deposit.Receipt) < 1 {
		return errors.NewInvalidProposal("deposit receipt is missing")
	}

	exists, err := st.Has(GetDepositReceiptKey(deposit.Token, deposit.Receipt))
	if err != nil {
		return err
	}
	if exists {
		return errors.DepositAlreadyUsed.Clone().SetData("receipt", deposit.Receipt)
	}

	return nil
}

type SubmitProposalMsg struct {
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Link         *string       `json:"link,omitempty"`
	ExecuteCalls []ExecuteCall `json:"execute_calls,omitempty"`
}

// Validate checks the text bounds of the proposal; lengths are in bytes.
func (m SubmitProposalMsg) Validate() error {
	if len(m.Title) < MinTitleLength {
		return errors.NewInvalidProposal("title too short")
	}
	if len(m.Title) > MaxTitleLength {
		return errors.NewInvalidProposal("title too long")
	}

	if len(m.Description) < MinDescriptionLength {
		return errors.NewInvalidProposal("description too short")
	}
	if len(m.Description) > MaxDescriptionLength {
		return errors.NewInvalidProposal("description too long")
	}

	if m.Link != nil {
		if len(*m.Link) < MinLinkLength {
			return errors.NewInvalidProposal("link too short")
		}
		if len(*m.Link) > MaxLinkLength {
			return errors.NewInvalidProposal("link too long")
		}
	}

	return nil
}

//
// SubmitProposal creates a new active proposal funded by `deposit`.
//
// The deposit must come from the governance token, be at least the required
// deposit and carry a receipt which funded no other proposal. The voting window starts at the current height and
// lasts `VotingPeriod` blocks.
//
func (e *Engine) SubmitProposal(st *storage.LevelDBBackend, env Env, deposit Deposit, msg SubmitProposalMsg) (resp SubmitProposalResponse, err error) {
	if err = msg.Validate(); err != nil {
		return
	}

	var config Config
	if config, err = GetConfig(st); err != nil {
		return
	}

	var registry AddressRegistry
	if registry, err = e.registry(config); err != nil {
		return
	}

	var addresses []string
	if addresses, err = resolveRoles(registry, RoleGovernanceToken); err != nil {
		return
	}

	if deposit.Token != addresses[0] || deposit.Amount < config.RequiredDeposit {
		err = errors.NewInvalidProposal(
			fmt.Sprintf("must deposit at least %s tokens", config.RequiredDeposit),
		)
		return
	}
	if err = checkDepositReceipt(st, deposit); err != nil {
		return
	}

	var state GlobalState
	if state, err = GetGlobalState(st); err != nil {
		return
	}

	var id uint64
	if id, err = state.NextProposalID(); err != nil {
		return
	}

	for _, c := range msg.ExecuteCalls {
		if err = common.ValidateAddress(c.Target); err != nil {
			return
		}
	}
	if err = common.ValidateAddress(deposit.Submitter); err != nil {
		return
	}

	var endHeight uint64
	if endHeight, err = addHeights(env.Height, config.VotingPeriod); err != nil {
		return
	}

	proposal := Proposal{
		ID:           id,
		Submitter:    deposit.Submitter,
		Status:       StatusActive,
		StartHeight:  env.Height,
		EndHeight:    endHeight,
		Title:        msg.Title,
		Description:  msg.Description,
		Link:         msg.Link,
		ExecuteCalls: msg.ExecuteCalls,
		Deposit:      deposit.Amount,
	}

	if err = state.Save(st); err != nil {
		return
	}
	if err = proposal.Save(st); err != nil {
		return
	}
	if err = st.New(GetDepositReceiptKey(deposit.Token, deposit.Receipt), depositReceipt{ProposalID: id}); err != nil {
		return
	}

	resp.ProposalID = id
	resp.AddAttribute("action", "submit_proposal").
		AddAttribute("proposal_submitter", proposal.Submitter).
		AddAttribute("proposal_id", id).
		AddAttribute("proposal_end_height", endHeight)

	log.Debug("proposal submitted", resp.LogContext()...)

	return
}
