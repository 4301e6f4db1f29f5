package governance

import (
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
)

// Role is a logical contract name resolved by the `AddressRegistry`.
type Role string

const (
	RoleGovernanceToken Role = "governance_token"
	RoleStaking         Role = "staking"
	RoleVotingToken     Role = "voting_token"
)

type AddressRegistry interface {
	Resolve(role Role) (string, error)
}

// BatchResolver is implemented by registries which can resolve several
// roles in one call.
type BatchResolver interface {
	ResolveAll(roles ...Role) ([]string, error)
}

// VotingPowerOracle answers historical balance queries of the voting token.
type VotingPowerOracle interface {
	BalanceAt(address string, height uint64) (common.Amount, error)
	TotalSupplyAt(height uint64) (common.Amount, error)
}

// RegistryFactory returns the registry of the given address provider.
type RegistryFactory func(addressProvider string) (AddressRegistry, error)

// OracleFactory returns the oracle backed by the given voting token
// contract.
type OracleFactory func(votingToken string) (VotingPowerOracle, error)

func collaboratorError(err error, ctx ...interface{}) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*errors.Error); ok {
		return err
	}

	e := errors.CollaboratorError.Clone().SetData("error", err.Error())
	for i := 0; i+1 < len(ctx); i += 2 {
		if k, ok := ctx[i].(string); ok {
			e.SetData(k, ctx[i+1])
		}
	}
	return e
}

// resolveRoles resolves `roles` in order, in one call when the registry
// supports it.
func resolveRoles(registry AddressRegistry, roles ...Role) ([]string, error) {
	if b, ok := registry.(BatchResolver); ok {
		addresses, err := b.ResolveAll(roles...)
		if err != nil {
			return nil, collaboratorError(err, "roles", roles)
		}
		if len(addresses) != len(roles) {
			return nil, errors.CollaboratorError.Clone().SetData("error", "unexpected number of addresses")
		}
		return addresses, nil
	}

	addresses := make([]string, len(roles))
	for i, role := range roles {
		address, err := registry.Resolve(role)
		if err != nil {
			return nil, collaboratorError(err, "role", string(role))
		}
		addresses[i] = address
	}

	return addresses, nil
}
