package rest

import (
	"net/http"

	"lendpool/core"
	"lendpool/handler/param"
	"lendpool/handler/render"
	"lendpool/pkg/number"
)

func liquidationHandler(liquidationSrv core.ILiquidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			LiquidatorID      string `json:"liquidator_id" valid:"required"`
			BorrowerID        string `json:"borrower_id" valid:"required"`
			DebtAssetID       string `json:"debt_asset_id" valid:"required"`
			CollateralAssetID string `json:"collateral_asset_id" valid:"required"`
			RepayAmount       string `json:"repay_amount" valid:"required"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := number.ToWad(number.Decimal(params.RepayAmount))
		if err != nil {
			render.BadRequest(w, core.ErrInvalidAmount)
			return
		}

		result, err := liquidationSrv.Liquidate(ctx, params.LiquidatorID, params.BorrowerID, params.DebtAssetID, params.CollateralAssetID, amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{
			"repaid": number.FromWad(result.Repaid),
			"seized": number.FromWad(result.Seized),
		})
	}
}
