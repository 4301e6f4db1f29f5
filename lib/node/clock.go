package node

import (
	"context"
	"sync/atomic"
	"time"

	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/metrics"
	"boscoin.io/council/lib/storage"
)

const BlockHeightKey string = "node-block-height"

// Clock tells the current block height.
type Clock interface {
	Height() uint64
}

//
// BlockClock produces one block every `interval`. The height is persisted,
// so a restarted node continues from the last produced block.
//
type BlockClock struct {
	st       *storage.LevelDBBackend
	height   uint64
	interval time.Duration
}

type blockHeight struct {
	Height uint64 `json:"height"`
}

// NewBlockClock loads the last height from `st`; a new storage starts at
// `genesis`.
func NewBlockClock(st *storage.LevelDBBackend, genesis uint64, interval time.Duration) (*BlockClock, error) {
	var bh blockHeight
	if err := st.Get(BlockHeightKey, &bh); err != nil {
		if !errors.StorageRecordDoesNotExist.Is(err) {
			return nil, err
		}
		bh.Height = genesis
	}

	c := &BlockClock{
		st:       st,
		height:   bh.Height,
		interval: interval,
	}
	metrics.Governance.SetHeight(bh.Height)

	return c, nil
}

func (c *BlockClock) Height() uint64 {
	return atomic.LoadUint64(&c.height)
}

// Advance produces the next block and returns its height.
func (c *BlockClock) Advance() (uint64, error) {
	height := atomic.AddUint64(&c.height, 1)
	if err := c.st.Put(BlockHeightKey, blockHeight{Height: height}); err != nil {
		return height, err
	}
	metrics.Governance.SetHeight(height)

	return height, nil
}

// Run advances the clock until `ctx` is done.
func (c *BlockClock) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	log.Info("block clock started", "height", c.Height(), "interval", c.interval)
	for {
		select {
		case <-ctx.Done():
			log.Info("block clock stopped", "height", c.Height())
			return nil
		case <-ticker.C:
			height, err := c.Advance()
			if err != nil {
				log.Error("failed to store block height", "height", height, "error", err)
				return err
			}
			log.Debug("new block", "height", height)
		}
	}
}

// FixedClock is a clock which moves only when told to.
type FixedClock struct {
	height uint64
}

func NewFixedClock(height uint64) *FixedClock {
	return &FixedClock{height: height}
}

func (c *FixedClock) Height() uint64 {
	return atomic.LoadUint64(&c.height)
}

func (c *FixedClock) Set(height uint64) {
	atomic.StoreUint64(&c.height, height)
}
