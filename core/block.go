package core

import (
	"context"
	"time"
)

// IBlockService is the block clock: 15-second blocks counted from the
// configured genesis. Accrual deltas and price staleness are measured in
// blocks.
type IBlockService interface {
	CurrentBlock(ctx context.Context) (int64, error)
	GetBlock(ctx context.Context, t time.Time) (int64, error)
}
