package governance

import (
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/storage"
)

//
// UpdateConfig overwrites the set fields of the stored config.
//
// Only the governance module itself may call it, that is through an
// execute-call of an executed proposal. The merged config is validated as a
// whole; an invalid one leaves the stored config untouched.
//
func (e *Engine) UpdateConfig(st *storage.LevelDBBackend, env Env, sender string, msg CreateOrUpdateConfig) (resp Response, err error) {
	if sender != env.Self {
		err = errors.Unauthorized.Clone().SetData("sender", sender)
		return
	}

	var config Config
	if config, err = GetConfig(st); err != nil {
		return
	}

	updated := msg.Apply(config)
	if msg.AddressProvider != nil {
		if err = common.ValidateAddress(updated.AddressProvider); err != nil {
			return
		}
	}
	if err = updated.Save(st); err != nil {
		return
	}

	resp.AddAttribute("action", "update_config")

	log.Info(
		"config updated",
		"address_provider_address", updated.AddressProvider,
		"proposal_voting_period", updated.VotingPeriod,
		"proposal_effective_delay", updated.EffectiveDelay,
		"proposal_expiration_period", updated.ExpirationPeriod,
		"proposal_required_deposit", updated.RequiredDeposit,
		"proposal_required_quorum", updated.RequiredQuorum,
		"proposal_required_threshold", updated.RequiredThreshold,
	)

	return
}
