package rest

import (
	"net/http"

	"lendpool/core"
	"lendpool/handler/param"
	"lendpool/handler/render"
	"lendpool/pkg/number"
)

func borrowHandler(borrowSrv core.IBorrowService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID  string `json:"user_id" valid:"required"`
			AssetID string `json:"asset_id" valid:"required"`
			Amount  string `json:"amount" valid:"required"`
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

		if err := borrowSrv.Borrow(ctx, params.UserID, params.AssetID, amount); err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func repayHandler(borrowSrv core.IBorrowService) http.HandlerFunc {
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

		applied, err := borrowSrv.Repay(ctx, params.UserID, params.OnBehalfOf, params.AssetID, amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{"applied": number.FromWad(applied)})
	}
}
