package rest

import (
	"net/http"

	"lendpool/core"
	"lendpool/handler/render"
	"lendpool/handler/views"
	"lendpool/pkg/fixnum"
	"lendpool/pkg/lending"
	"lendpool/pkg/number"

	"github.com/go-chi/chi"
)

func accountHandler(marketStr core.IMarketStore, positionStr core.IPositionStore, accountSrv core.IAccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := chi.URLParam(r, "user_id")
		positions, e := positionStr.FindByUser(ctx, userID)
		if e != nil {
			render.BadRequest(w, e)
			return
		}

		markets, e := marketStr.AllAsMap(ctx)
		if e != nil {
			render.BadRequest(w, e)
			return
		}

		account := views.Account{
			UserID:    userID,
			Positions: make([]*views.Position, 0, len(positions)),
		}

		for _, p := range positions {
			market, ok := markets[p.AssetID]
			if !ok {
				continue
			}

			view := &views.Position{
				AssetID:       p.AssetID,
				Symbol:        market.Symbol,
				DepositShares: number.FromWad(p.DepositShares),
			}
			if balance, err := lending.ConvertToAssets(market, p.DepositShares); err == nil {
				view.DepositBalance = number.FromWad(balance)
			}
			if debt, err := lending.BorrowBalance(p, market); err == nil {
				view.BorrowBalance = number.FromWad(debt)
			}
			account.Positions = append(account.Positions, view)
		}

		hf, e := accountSrv.GetHealthFactor(ctx, userID)
		if e != nil {
			render.BadRequest(w, e)
			return
		}

		account.Solvent = lending.IsHealthy(hf)
		if hf.Cmp(fixnum.Max()) != 0 {
			account.HealthFactor = number.FromWad(hf)
		}

		render.JSON(w, account)
	}
}
