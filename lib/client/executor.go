package client

import (
	"context"

	"boscoin.io/council/lib/outbox"
)

const UrlMessages = "/messages"

// Executor delivers outbound messages to the executing service, which
// dispatches them to their targets.
type Executor struct {
	client *Client
}

func NewExecutor(client *Client) *Executor {
	return &Executor{client: client}
}

func (e *Executor) Send(ctx context.Context, entry outbox.Entry) error {
	return e.client.Post(ctx, UrlMessages, entry, nil)
}
