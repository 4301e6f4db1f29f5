package outbox

import (
	"context"
	"time"

	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/metrics"
	"boscoin.io/council/lib/storage"
)

const (
	DeliveredKey string = "gov-outbox-delivered"

	DefaultRelayBatchSize     uint64        = 100
	DefaultRelayCheckInterval time.Duration = time.Second
	DefaultRelayRetryInterval time.Duration = 5 * time.Second
)

// Sender delivers one entry to the executor of the outbound messages.
type Sender interface {
	Send(ctx context.Context, e Entry) error
}

type delivered struct {
	Sequence uint64 `json:"sequence"`
}

// Delivered returns the sequence of the last delivered entry, 0 when none
// was delivered.
func Delivered(st *storage.LevelDBBackend) (uint64, error) {
	var d delivered
	if err := st.Get(DeliveredKey, &d); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			return 0, nil
		}
		return 0, err
	}

	return d.Sequence, nil
}

// SetDelivered stores `sequence` as the last delivered entry.
func SetDelivered(st *storage.LevelDBBackend, sequence uint64) error {
	return st.Put(DeliveredKey, delivered{Sequence: sequence})
}

//
// Relay hands the entries to a `Sender` strictly in sequence order. The
// last delivered sequence is stored, so a restarted relay resumes after
// it. An entry which fails is retried until it is delivered; later entries
// wait for it.
//
type Relay struct {
	st     *storage.LevelDBBackend
	sender Sender

	batchSize     uint64
	checkInterval time.Duration
	retryInterval time.Duration

	afterFunc func(time.Duration) <-chan time.Time
}

type RelayOption func(r *Relay)

func WithRelayIntervals(check, retry time.Duration) RelayOption {
	return func(r *Relay) {
		r.checkInterval = check
		r.retryInterval = retry
	}
}

func WithRelayBatchSize(size uint64) RelayOption {
	return func(r *Relay) {
		r.batchSize = size
	}
}

func NewRelay(st *storage.LevelDBBackend, sender Sender, opts ...RelayOption) *Relay {
	r := &Relay{
		st:            st,
		sender:        sender,
		batchSize:     DefaultRelayBatchSize,
		checkInterval: DefaultRelayCheckInterval,
		retryInterval: DefaultRelayRetryInterval,
		afterFunc:     time.After,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run delivers the pending entries until `ctx` is done.
func (r *Relay) Run(ctx context.Context) error {
	log.Info("starting relay")
	for {
		n, err := r.deliverPending(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("stopped relay")
				return nil
			}
			return err
		}

		// a full batch means more entries are waiting
		if n == r.batchSize {
			continue
		}

		select {
		case <-ctx.Done():
			log.Info("stopped relay")
			return nil
		case <-r.afterFunc(r.checkInterval):
		}
	}
}

func (r *Relay) deliverPending(ctx context.Context) (uint64, error) {
	last, err := Delivered(r.st)
	if err != nil {
		return 0, err
	}

	entries, err := List(r.st, last+1, r.batchSize)
	if err != nil {
		return 0, err
	}

	for _, e := range entries {
		if err := r.deliver(ctx, e); err != nil {
			return 0, err
		}
		if err := SetDelivered(r.st, e.Sequence); err != nil {
			return 0, err
		}
	}

	return uint64(len(entries)), nil
}

func (r *Relay) deliver(ctx context.Context, e Entry) error {
	for attempt := 1; ; attempt++ {
		err := r.sender.Send(ctx, e)
		if err == nil {
			metrics.Governance.AddRelayed(true)
			log.Debug("delivered", "sequence", e.Sequence, "target", e.Message.Target, "attempt", attempt)
			return nil
		}

		metrics.Governance.AddRelayed(false)
		log.Error("failed to deliver", "sequence", e.Sequence, "target", e.Message.Target, "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.afterFunc(r.retryInterval):
		}
	}
}
