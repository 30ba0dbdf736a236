package borrow

import (
	"context"

	"lendpool/core"
	"lendpool/pkg/fixnum"
	"lendpool/pkg/lending"

	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
	"github.com/holiman/uint256"
)

type borrowService struct {
	marketStore    core.IMarketStore
	positionStore  core.IPositionStore
	transactionStr core.ITransactionStore
	marketSrv      core.IMarketService
	accountSrv     core.IAccountService
	blockSrv       core.IBlockService
	transferSrv    core.ITransferService
	transactor     core.Transactor
}

// New new borrow service
func New(
	marketStr core.IMarketStore,
	positionStr core.IPositionStore,
	transactionStr core.ITransactionStore,
	marketSrv core.IMarketService,
	accountSrv core.IAccountService,
	blockSrv core.IBlockService,
	transferSrv core.ITransferService,
	transactor core.Transactor,
) core.IBorrowService {
	return &borrowService{
		marketStore:    marketStr,
		positionStore:  positionStr,
		transactionStr: transactionStr,
		marketSrv:      marketSrv,
		accountSrv:     accountSrv,
		blockSrv:       blockSrv,
		transferSrv:    transferSrv,
		transactor:     transactor,
	}
}

// Borrow lends amount to the caller against their collateral. The tentative
// debt is written first and the post-state health factor validated before the
// payout, so a failed gate rolls the whole mutation back.
func (s *borrowService) Borrow(ctx context.Context, userID, assetID string, amount *uint256.Int) error {
	if fixnum.IsZero(amount) {
		return core.ErrInvalidAmount
	}

	market, err := s.marketStore.Find(ctx, assetID)
	if err != nil {
		return core.ErrMarketNotFound
	}
	if !market.Active {
		return core.ErrMarketInactive
	}
	if !market.BorrowEnabled {
		return core.ErrBorrowDisabled
	}

	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return err
	}

	return s.transactor.Tx(func(tx *db.DB) error {
		if err := s.marketSrv.AccrueInterest(ctx, tx, market, block); err != nil {
			return err
		}

		if amount.Cmp(lending.AvailableLiquidity(market)) > 0 {
			return core.ErrInsufficientLiquidity
		}

		newBorrows, err := fixnum.Add(market.TotalBorrows, amount)
		if err != nil {
			return core.ErrArithmeticOverflow
		}
		if !fixnum.IsZero(market.BorrowCap) && newBorrows.Cmp(market.BorrowCap) > 0 {
			return core.ErrBorrowCapReached
		}

		position, err := s.positionStore.Find(ctx, userID, assetID)
		if err != nil {
			return err
		}

		// fold accrued interest into the principal and re-snapshot the index
		debt, err := lending.BorrowBalance(position, market)
		if err != nil {
			return core.ErrArithmeticOverflow
		}
		if position.BorrowPrincipal, err = fixnum.Add(debt, amount); err != nil {
			return core.ErrArithmeticOverflow
		}
		position.BorrowIndex = market.BorrowIndex.Clone()
		market.TotalBorrows = newBorrows

		hf, err := s.accountSrv.HealthFactorAfter(ctx, userID, position, map[string]*core.Market{assetID: market})
		if err != nil {
			return err
		}
		if !lending.IsHealthy(hf) {
			return core.ErrInsufficientCollateral
		}

		if err := s.marketStore.Update(ctx, tx, market); err != nil {
			return err
		}
		if err := s.positionStore.Save(ctx, tx, position); err != nil {
			return err
		}

		if err := s.transferSrv.TransferOut(ctx, tx, userID, assetID, amount); err != nil {
			return err
		}

		return s.transactionStr.Create(ctx, tx, &core.Transaction{
			TraceID: uuid.New(),
			UserID:  userID,
			Action:  core.ActionBorrow,
			AssetID: assetID,
			Amount:  amount.Clone(),
			Extra:   core.NewTransactionExtra().Format(),
		})
	})
}

// Repay pays down onBehalfOf's debt with the caller's funds. Overpayment is
// clamped to the outstanding debt; the amount applied is returned.
func (s *borrowService) Repay(ctx context.Context, userID, onBehalfOf, assetID string, amount *uint256.Int) (*uint256.Int, error) {
	if fixnum.IsZero(amount) {
		return nil, core.ErrInvalidAmount
	}
	if onBehalfOf == "" {
		onBehalfOf = userID
	}

	market, err := s.marketStore.Find(ctx, assetID)
	if err != nil {
		return nil, core.ErrMarketNotFound
	}
	if !market.Active {
		return nil, core.ErrMarketInactive
	}

	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return nil, err
	}

	var applied *uint256.Int
	err = s.transactor.Tx(func(tx *db.DB) error {
		if err := s.marketSrv.AccrueInterest(ctx, tx, market, block); err != nil {
			return err
		}

		position, err := s.positionStore.Find(ctx, onBehalfOf, assetID)
		if err != nil {
			return err
		}

		debt, err := lending.BorrowBalance(position, market)
		if err != nil {
			return core.ErrArithmeticOverflow
		}
		if debt.IsZero() {
			return core.ErrNoOutstandingDebt
		}

		applied = fixnum.Min(amount, debt)

		if position.BorrowPrincipal, err = fixnum.Sub(debt, applied); err != nil {
			return core.ErrArithmeticOverflow
		}
		position.BorrowIndex = market.BorrowIndex.Clone()

		// the pool's debt total never goes below zero even when per-position
		// rounding left it behind the sum of positions
		if applied.Cmp(market.TotalBorrows) >= 0 {
			market.TotalBorrows = fixnum.Zero()
		} else if market.TotalBorrows, err = fixnum.Sub(market.TotalBorrows, applied); err != nil {
			return core.ErrArithmeticOverflow
		}

		if err := s.marketStore.Update(ctx, tx, market); err != nil {
			return err
		}
		if err := s.positionStore.Save(ctx, tx, position); err != nil {
			return err
		}

		if err := s.transferSrv.TransferIn(ctx, tx, userID, assetID, applied); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put("on_behalf_of", onBehalfOf)
		extra.Put("requested", amount.Dec())
		return s.transactionStr.Create(ctx, tx, &core.Transaction{
			TraceID: uuid.New(),
			UserID:  userID,
			Action:  core.ActionRepay,
			AssetID: assetID,
			Amount:  applied.Clone(),
			Extra:   extra.Format(),
		})
	})
	if err != nil {
		return nil, err
	}

	return applied, nil
}

// GetBorrowBalance reconciles the user's debt to the current borrow index.
func (s *borrowService) GetBorrowBalance(ctx context.Context, userID, assetID string) (*uint256.Int, error) {
	market, err := s.marketStore.Find(ctx, assetID)
	if err != nil {
		return nil, core.ErrMarketNotFound
	}

	position, err := s.positionStore.Find(ctx, userID, assetID)
	if err != nil {
		return nil, err
	}

	debt, err := lending.BorrowBalance(position, market)
	if err != nil {
		return nil, core.ErrArithmeticOverflow
	}
	return debt, nil
}
