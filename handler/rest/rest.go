package rest

import (
	"errors"
	"net/http"

	"lendpool/core"
	"lendpool/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	marketStore core.IMarketStore,
	positionStore core.IPositionStore,
	transactionStore core.ITransactionStore,
	marketSrv core.IMarketService,
	accountSrv core.IAccountService,
	supplySrv core.ISupplyService,
	borrowSrv core.IBorrowService,
	liquidationSrv core.ILiquidationService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/markets", allMarketsHandler(marketStore, marketSrv))
	router.Get("/markets/{symbol}", marketHandler(marketStore, marketSrv))
	router.Get("/accounts/{user_id}", accountHandler(marketStore, positionStore, accountSrv))
	router.Get("/transactions", transactionsHandler(transactionStore))

	router.Post("/deposits", depositHandler(supplySrv))
	router.Post("/withdrawals", withdrawHandler(supplySrv))
	router.Post("/borrows", borrowHandler(borrowSrv))
	router.Post("/repayments", repayHandler(borrowSrv))
	router.Post("/liquidations", liquidationHandler(liquidationSrv))

	return router
}
