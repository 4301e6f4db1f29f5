package client

import (
	"context"

	"golang.org/x/sync/errgroup"

	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/governance"
)

// Registry resolves roles through the address provider `Provider`.
type Registry struct {
	client   *Client
	Provider string
}

func NewRegistry(client *Client, provider string) *Registry {
	return &Registry{client: client, Provider: provider}
}

func (r *Registry) resolve(ctx context.Context, role governance.Role) (string, error) {
	var ra RoleAddress
	url := expandURL(UrlRoleAddress, "provider", r.Provider, "role", string(role))
	if err := r.client.Get(ctx, url, nil, &ra); err != nil {
		return "", err
	}
	if len(ra.Address) < 1 {
		return "", errors.RoleNotRegistered.Clone().SetData("role", string(role))
	}

	return ra.Address, nil
}

func (r *Registry) Resolve(role governance.Role) (string, error) {
	return r.resolve(context.Background(), role)
}

// ResolveAll resolves `roles` concurrently; the addresses keep the order of
// `roles`.
func (r *Registry) ResolveAll(roles ...governance.Role) ([]string, error) {
	addresses := make([]string, len(roles))

	g, ctx := errgroup.WithContext(context.Background())
	for i, role := range roles {
		i, role := i, role
		g.Go(func() error {
			address, err := r.resolve(ctx, role)
			if err != nil {
				return err
			}
			addresses[i] = address
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return addresses, nil
}

func NewRegistryFactory(client *Client) governance.RegistryFactory {
	return func(provider string) (governance.AddressRegistry, error) {
		return NewRegistry(client, provider), nil
	}
}
