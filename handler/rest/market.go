package rest

import (
	"net/http"
	"strings"

	"lendpool/core"
	"lendpool/handler/render"
	"lendpool/handler/views"
	"lendpool/pkg/number"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

func allMarketsHandler(marketStr core.IMarketStore, marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		markets, e := marketStr.All(ctx)
		if e != nil {
			render.BadRequest(w, e)
			return
		}

		marketViews := make([]*views.Market, 0, len(markets))
		for _, m := range markets {
			marketViews = append(marketViews, getMarketView(r, m, marketSrv))
		}

		render.JSON(w, marketViews)
	}
}

func marketHandler(marketStr core.IMarketStore, marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
		market, e := marketStr.FindBySymbol(ctx, symbol)
		if e != nil {
			render.NotFoundRequest(w, core.ErrMarketNotFound)
			return
		}

		render.JSON(w, getMarketView(r, market, marketSrv))
	}
}

func getMarketView(r *http.Request, market *core.Market, marketSrv core.IMarketService) *views.Market {
	ctx := r.Context()

	utilizationRate := decimal.Zero
	if u, e := marketSrv.CurUtilizationRate(ctx, market); e == nil {
		utilizationRate = number.FromWad(u)
	}

	borrowRate := decimal.Zero
	if v, e := marketSrv.CurBorrowRate(ctx, market); e == nil {
		borrowRate = number.FromWad(v)
	}

	supplyRate := decimal.Zero
	if v, e := marketSrv.CurSupplyRate(ctx, market); e == nil {
		supplyRate = number.FromWad(v)
	}

	return &views.Market{
		AssetID:             market.AssetID,
		Symbol:              market.Symbol,
		ShareAssetID:        market.ShareAssetID,
		CollateralFactorBps: market.CollateralFactorBps,
		LiquidationBonusBps: market.LiquidationBonusBps,
		ReserveFactorBps:    market.ReserveFactorBps,
		CloseFactorBps:      market.CloseFactorBps,
		Active:              market.Active,
		BorrowEnabled:       market.BorrowEnabled,
		TotalDeposits:       number.FromWad(market.TotalDeposits),
		TotalBorrows:        number.FromWad(market.TotalBorrows),
		TotalShares:         number.FromWad(market.TotalShares),
		Reserves:            number.FromWad(market.Reserves),
		BorrowCap:           number.FromWad(market.BorrowCap),
		UtilizationRate:     utilizationRate,
		BorrowRate:          borrowRate,
		SupplyRate:          supplyRate,
		BlockNumber:         market.BlockNumber,
	}
}
