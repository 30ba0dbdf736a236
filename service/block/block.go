package block

import (
	"context"
	"time"

	"lendpool/core"
	"lendpool/pkg/lending"
)

type service struct {
	config *core.Config
}

// New new block service
func New(config *core.Config) core.IBlockService {
	return &service{
		config: config,
	}
}

// CurrentBlock current block
func (s *service) CurrentBlock(ctx context.Context) (int64, error) {
	return s.GetBlock(ctx, time.Now())
}

// GetBlock get block by time
func (s *service) GetBlock(ctx context.Context, t time.Time) (int64, error) {
	return lending.GetBlockByTime(time.Unix(s.config.Genesis, 0), t), nil
}
