package rest

import (
	"net/http"

	"lendpool/core"
	"lendpool/handler/param"
	"lendpool/handler/render"
	"lendpool/pkg/number"
)

func depositHandler(supplySrv core.ISupplyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID     string `json:"user_id" valid:"required"`
			OnBehalfOf string `json:"on_behalf_of"`
			AssetID    string `json:"asset_id" valid:"required"`
			Amount     string `json:"amount" valid:"required"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := number.ToWad(number.Decimal(params.Amount))
		if err != nil {
			render.BadRequest(w, core.ErrInvalidAmount)
			return
		}

		shares, err := supplySrv.Deposit(ctx, params.UserID, params.OnBehalfOf, params.AssetID, amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{"shares": number.FromWad(shares)})
	}
}

func withdrawHandler(supplySrv core.ISupplyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID  string `json:"user_id" valid:"required"`
			AssetID string `json:"asset_id" valid:"required"`
			Shares  string `json:"shares" valid:"required"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		shares, err := number.ToWad(number.Decimal(params.Shares))
		if err != nil {
			render.BadRequest(w, core.ErrInvalidAmount)
			return
		}

		amount, err := supplySrv.Withdraw(ctx, params.UserID, params.AssetID, shares)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{"amount": number.FromWad(amount)})
	}
}
