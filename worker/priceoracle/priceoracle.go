package priceoracle

import (
	"context"
	"encoding/json"
	"time"

	"lendpool/core"
	"lendpool/pkg/number"
	"lendpool/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

const checkpointKey = "price_oracle_checkpoint"

// Worker pulls quotes from the price feed and records one observation per
// market per block.
type Worker struct {
	worker.TickWorker
	MarketStore        core.IMarketStore
	PriceStore         core.IPriceStore
	PropertyStore      property.Store
	BlockService       core.IBlockService
	PriceOracleService core.IPriceOracleService
	Transactor         core.Transactor
}

// New new price oracle worker
func New(
	marketStore core.IMarketStore,
	priceStr core.IPriceStore,
	propertyStr property.Store,
	blockSrv core.IBlockService,
	priceSrv core.IPriceOracleService,
	transactor core.Transactor,
) *Worker {
	return &Worker{
		TickWorker: worker.TickWorker{
			Delay:    10 * time.Second,
			ErrDelay: 20 * time.Second,
		},
		MarketStore:        marketStore,
		PriceStore:         priceStr,
		PropertyStore:      propertyStr,
		BlockService:       blockSrv,
		PriceOracleService: priceSrv,
		Transactor:         transactor,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "priceoracle")

	block, err := w.BlockService.GetBlock(ctx, time.Now())
	if err != nil {
		return err
	}

	markets, err := w.MarketStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("fetch all markets failed")
		return err
	}

	if len(markets) == 0 {
		return nil
	}

	for _, m := range markets {
		if err := w.pullMarketPrice(ctx, m, block); err != nil {
			log.WithError(err).Errorln("pull price failed:", m.Symbol)
		}
	}

	return w.PropertyStore.Save(ctx, checkpointKey, block)
}

func (w *Worker) pullMarketPrice(ctx context.Context, market *core.Market, block int64) error {
	latest, err := w.PriceStore.FindLatest(ctx, market.AssetID, block)
	if err != nil {
		return err
	}
	if latest.ID > 0 && latest.BlockNumber == block {
		return nil
	}

	ticker, err := w.PriceOracleService.PullPriceTicker(ctx, market.Symbol, time.Now())
	if err != nil {
		return err
	}
	if ticker.Price.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	price, err := number.ToWad(ticker.Price)
	if err != nil {
		return err
	}

	content, _ := json.Marshal(ticker)
	return w.Transactor.Tx(func(tx *db.DB) error {
		return w.PriceStore.Create(ctx, tx, &core.Price{
			AssetID:     market.AssetID,
			BlockNumber: block,
			Price:       price,
			Content:     content,
		})
	})
}
