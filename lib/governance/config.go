package governance

import (
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/storage"
)

// Config holds the governance parameters.
//
// Heights are counted in blocks. `RequiredQuorum` and `RequiredThreshold`
// are ratios between 0 and 1 inclusive; a `Config` failing `Validate` is
// never stored.
type Config struct {
	AddressProvider   string         `json:"address_provider_address" yaml:"address_provider_address"`
	VotingPeriod      uint64         `json:"proposal_voting_period" yaml:"proposal_voting_period"`
	EffectiveDelay    uint64         `json:"proposal_effective_delay" yaml:"proposal_effective_delay"`
	ExpirationPeriod  uint64         `json:"proposal_expiration_period" yaml:"proposal_expiration_period"`
	RequiredDeposit   common.Amount  `json:"proposal_required_deposit" yaml:"proposal_required_deposit"`
	RequiredQuorum    common.Decimal `json:"proposal_required_quorum" yaml:"proposal_required_quorum"`
	RequiredThreshold common.Decimal `json:"proposal_required_threshold" yaml:"proposal_required_threshold"`
}

func (c Config) Validate() error {
	if c.RequiredQuorum.GT(common.DecimalOne) {
		return errors.InvalidRatio.Clone().
			SetData("field", "proposal_required_quorum").
			SetData("value", c.RequiredQuorum.String())
	}
	if c.RequiredThreshold.GT(common.DecimalOne) {
		return errors.InvalidRatio.Clone().
			SetData("field", "proposal_required_threshold").
			SetData("value", c.RequiredThreshold.String())
	}

	return nil
}

func (c Config) Save(st *storage.LevelDBBackend) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return st.Put(ConfigKey, c)
}

func GetConfig(st *storage.LevelDBBackend) (config Config, err error) {
	if err = st.Get(ConfigKey, &config); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			err = errors.NotInstantiated
		}
		return
	}

	return
}

//
// CreateOrUpdateConfig carries the fields of a `Config` as pointers: all of
// them must be set to instantiate, and the set ones overwrite the stored
// config on update.
//
type CreateOrUpdateConfig struct {
	AddressProvider   *string         `json:"address_provider_address,omitempty" yaml:"address_provider_address"`
	VotingPeriod      *uint64         `json:"proposal_voting_period,omitempty" yaml:"proposal_voting_period"`
	EffectiveDelay    *uint64         `json:"proposal_effective_delay,omitempty" yaml:"proposal_effective_delay"`
	ExpirationPeriod  *uint64         `json:"proposal_expiration_period,omitempty" yaml:"proposal_expiration_period"`
	RequiredDeposit   *common.Amount  `json:"proposal_required_deposit,omitempty" yaml:"proposal_required_deposit"`
	RequiredQuorum    *common.Decimal `json:"proposal_required_quorum,omitempty" yaml:"proposal_required_quorum"`
	RequiredThreshold *common.Decimal `json:"proposal_required_threshold,omitempty" yaml:"proposal_required_threshold"`
}

func (u CreateOrUpdateConfig) IsComplete() bool {
	return u.AddressProvider != nil &&
		u.VotingPeriod != nil &&
		u.EffectiveDelay != nil &&
		u.ExpirationPeriod != nil &&
		u.RequiredDeposit != nil &&
		u.RequiredQuorum != nil &&
		u.RequiredThreshold != nil
}

// Apply returns `base` with the set fields of `u`.
func (u CreateOrUpdateConfig) Apply(base Config) Config {
	if u.AddressProvider != nil {
		base.AddressProvider = *u.AddressProvider
	}
	if u.VotingPeriod != nil {
		base.VotingPeriod = *u.VotingPeriod
	}
	if u.EffectiveDelay != nil {
		base.EffectiveDelay = *u.EffectiveDelay
	}
	if u.ExpirationPeriod != nil {
		base.ExpirationPeriod = *u.ExpirationPeriod
	}
	if u.RequiredDeposit != nil {
		base.RequiredDeposit = *u.RequiredDeposit
	}
	if u.RequiredQuorum != nil {
		base.RequiredQuorum = *u.RequiredQuorum
	}
	if u.RequiredThreshold != nil {
		base.RequiredThreshold = *u.RequiredThreshold
	}

	return base
}

//
// Instantiate stores the initial config and an empty `GlobalState`.
//
// Every field of `msg` must be set. Instantiating an already instantiated
// store fails with `errors.AlreadyInstantiated`.
//
func Instantiate(st *storage.LevelDBBackend, msg CreateOrUpdateConfig) (config Config, err error) {
	if !msg.IsComplete() {
		err = errors.ConfigIncomplete
		return
	}

	var exists bool
	if exists, err = st.Has(ConfigKey); err != nil {
		return
	} else if exists {
		err = errors.AlreadyInstantiated
		return
	}

	config = msg.Apply(Config{})
	if err = common.ValidateAddress(config.AddressProvider); err != nil {
		return
	}
	if err = config.Save(st); err != nil {
		return
	}
	if err = (GlobalState{}).Save(st); err != nil {
		return
	}

	log.Info(
		"governance instantiated",
		"address_provider_address", config.AddressProvider,
		"proposal_voting_period", config.VotingPeriod,
		"proposal_required_quorum", config.RequiredQuorum,
		"proposal_required_threshold", config.RequiredThreshold,
	)

	return
}
