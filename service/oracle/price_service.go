package oracle

import (
	"context"
	"fmt"
	"time"

	"lendpool/core"
	"lendpool/pkg/resthttp"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

// PriceService reads oracle observations for the ledger and pulls fresh
// quotes from the configured feed.
type PriceService struct {
	Config       *core.Config
	PriceStore   core.IPriceStore
	MarketStore  core.IMarketStore
	BlockService core.IBlockService

	cache gcache.Cache
}

// New new oracle price service
func New(
	config *core.Config,
	priceStr core.IPriceStore,
	marketStr core.IMarketStore,
	blockSrv core.IBlockService,
) core.IPriceOracleService {
	return &PriceService{
		Config:       config,
		PriceStore:   priceStr,
		MarketStore:  marketStr,
		BlockService: blockSrv,
		cache:        gcache.New(64).LRU().Build(),
	}
}

type cachedPrice struct {
	block int64
	price *uint256.Int
}

// GetPrice returns the wad-scaled price of the asset as observed at or before
// block. Observations older than the staleness bound abort with
// ErrStalePrice, which in turn aborts any ledger operation that needed the
// price.
func (s *PriceService) GetPrice(ctx context.Context, assetID string, block int64) (*uint256.Int, error) {
	if v, err := s.cache.Get(assetID); err == nil {
		if c, ok := v.(*cachedPrice); ok && c.block == block {
			return c.price.Clone(), nil
		}
	}

	price, err := s.PriceStore.FindLatest(ctx, assetID, block)
	if err != nil {
		return nil, err
	}
	if price.ID == 0 {
		return nil, core.ErrPriceNotFound
	}

	if s.Config.PriceStalenessBlocks > 0 && block-price.BlockNumber > s.Config.PriceStalenessBlocks {
		return nil, core.ErrStalePrice
	}

	_ = s.cache.SetWithExpire(assetID, &cachedPrice{block: block, price: price.Price.Clone()}, time.Minute)

	return price.Price.Clone(), nil
}

// PullPriceTicker pull price ticker
func (s *PriceService) PullPriceTicker(ctx context.Context, symbol string, t time.Time) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s?ts=%d", s.Config.PriceOracle.EndPoint, symbol, t.UTC().Unix())
	logger.FromContext(ctx).Debugln("pull price:", url)
	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	var price core.PriceTicker
	if err := resthttp.ParseResponse(resp, &price); err != nil {
		return nil, err
	}

	return &price, nil
}

// PullAllPriceTickers pull price tickers for every listed market
func (s *PriceService) PullAllPriceTickers(ctx context.Context, t time.Time) ([]*core.PriceTicker, error) {
	markets, err := s.MarketStore.All(ctx)
	if err != nil {
		return nil, err
	}

	tickers := make([]*core.PriceTicker, 0, len(markets))
	for _, m := range markets {
		ticker, err := s.PullPriceTicker(ctx, m.Symbol, t)
		if err != nil {
			logger.FromContext(ctx).WithError(err).Errorln("pull price ticker failed:", m.Symbol)
			continue
		}
		tickers = append(tickers, ticker)
	}

	return tickers, nil
}
