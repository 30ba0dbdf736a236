package rest

import (
	"net/http"

	"lendpool/core"
	"lendpool/handler/param"
	"lendpool/handler/render"
	"lendpool/handler/views"
	"lendpool/pkg/number"
)

func transactionsHandler(transactionStr core.ITransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			From  uint64 `json:"from"`
			Limit int    `json:"limit"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Limit <= 0 || params.Limit > 500 {
			params.Limit = 100
		}

		transactions, e := transactionStr.List(ctx, params.From, params.Limit)
		if e != nil {
			render.BadRequest(w, e)
			return
		}

		transactionViews := make([]*views.Transaction, 0, len(transactions))
		for _, t := range transactions {
			transactionViews = append(transactionViews, &views.Transaction{
				Transaction: *t,
				Amount:      number.FromWad(t.Amount),
			})
		}

		render.JSON(w, transactionViews)
	}
}
