package interest

import (
	"context"
	"time"

	"lendpool/core"
	"lendpool/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/errgroup"
)

// Worker advances every market's indices to the current block so interest
// keeps compounding even while no ledger operation touches the market.
type Worker struct {
	worker.TickWorker
	MarketStore   core.IMarketStore
	BlockService  core.IBlockService
	MarketService core.IMarketService
	Transactor    core.Transactor
}

// New new interest worker
func New(
	marketStore core.IMarketStore,
	blockSrv core.IBlockService,
	marketSrv core.IMarketService,
	transactor core.Transactor,
) *Worker {
	return &Worker{
		TickWorker: worker.TickWorker{
			Delay:    5 * time.Second,
			ErrDelay: 10 * time.Second,
		},
		MarketStore:   marketStore,
		BlockService:  blockSrv,
		MarketService: marketSrv,
		Transactor:    transactor,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "interest")

	block, err := w.BlockService.CurrentBlock(ctx)
	if err != nil {
		return err
	}

	markets, err := w.MarketStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("fetch all markets failed")
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, m := range markets {
		if m.BlockNumber >= block {
			continue
		}

		market := m
		g.Go(func() error {
			return w.Transactor.Tx(func(tx *db.DB) error {
				if err := w.MarketService.AccrueInterest(ctx, tx, market, block); err != nil {
					log.WithError(err).Errorln("accrue failed:", market.Symbol)
					return err
				}
				return nil
			})
		})
	}

	return g.Wait()
}
