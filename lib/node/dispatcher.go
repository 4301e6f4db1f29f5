package node

import (
	"context"

	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/outbox"
)

//
// Dispatcher is the `outbox.Sender` of the node relay. Entries addressed to
// the module itself are applied by the host, the others are handed to
// `external`. Without `external`, an external entry fails and holds back the
// entries behind it.
//
type Dispatcher struct {
	host     *Host
	external outbox.Sender
}

func NewDispatcher(host *Host, external outbox.Sender) *Dispatcher {
	return &Dispatcher{host: host, external: external}
}

func (d *Dispatcher) Send(ctx context.Context, e outbox.Entry) error {
	if e.Message.Target == d.host.Self() {
		return d.host.ApplyInternal(e)
	}

	if d.external == nil {
		return errors.CollaboratorError.Clone().
			SetData("error", "executor is not configured").
			SetData("target", e.Message.Target)
	}

	return d.external.Send(ctx, e)
}
