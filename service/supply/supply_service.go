package supply

import (
	"context"

	"lendpool/core"
	"lendpool/pkg/fixnum"
	"lendpool/pkg/lending"

	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
	"github.com/holiman/uint256"
)

type supplyService struct {
	marketStore    core.IMarketStore
	positionStore  core.IPositionStore
	transactionStr core.ITransactionStore
	marketSrv      core.IMarketService
	accountSrv     core.IAccountService
	blockSrv       core.IBlockService
	transferSrv    core.ITransferService
	tokenSrv       core.ITokenService
	transactor     core.Transactor
}

// New new supply service
func New(
	marketStr core.IMarketStore,
	positionStr core.IPositionStore,
	transactionStr core.ITransactionStore,
	marketSrv core.IMarketService,
	accountSrv core.IAccountService,
	blockSrv core.IBlockService,
	transferSrv core.ITransferService,
	tokenSrv core.ITokenService,
	transactor core.Transactor,
) core.ISupplyService {
	return &supplyService{
		marketStore:    marketStr,
		positionStore:  positionStr,
		transactionStr: transactionStr,
		marketSrv:      marketSrv,
		accountSrv:     accountSrv,
		blockSrv:       blockSrv,
		transferSrv:    transferSrv,
		tokenSrv:       tokenSrv,
		transactor:     transactor,
	}
}

// Deposit moves amount into the pool and mints proportional claim-shares to
// onBehalfOf. The ledger mutates before the transfer and mint so the external
// calls observe settled state.
func (s *supplyService) Deposit(ctx context.Context, userID, onBehalfOf, assetID string, amount *uint256.Int) (*uint256.Int, error) {
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

	var shares *uint256.Int
	err = s.transactor.Tx(func(tx *db.DB) error {
		if err := s.marketSrv.AccrueInterest(ctx, tx, market, block); err != nil {
			return err
		}

		if shares, err = lending.ConvertToShares(market, amount); err != nil {
			return core.ErrArithmeticOverflow
		}
		if fixnum.IsZero(shares) {
			return core.ErrInvalidAmount
		}

		position, err := s.positionStore.Find(ctx, onBehalfOf, assetID)
		if err != nil {
			return err
		}

		if fixnum.IsZero(position.DepositShares) {
			count, err := s.positionStore.CountCollateralAssets(ctx, onBehalfOf)
			if err != nil {
				return err
			}
			if count >= core.MaxCollateralAssets {
				return core.ErrCollateralBasketFull
			}
		}

		if market.TotalDeposits, err = fixnum.Add(market.TotalDeposits, amount); err != nil {
			return core.ErrArithmeticOverflow
		}
		if market.TotalShares, err = fixnum.Add(market.TotalShares, shares); err != nil {
			return core.ErrArithmeticOverflow
		}
		if err := s.marketStore.Update(ctx, tx, market); err != nil {
			return err
		}

		if position.DepositShares, err = fixnum.Add(position.DepositShares, shares); err != nil {
			return core.ErrArithmeticOverflow
		}
		if err := s.positionStore.Save(ctx, tx, position); err != nil {
			return err
		}

		if err := s.transferSrv.TransferIn(ctx, tx, userID, assetID, amount); err != nil {
			return err
		}
		if err := s.tokenSrv.Mint(ctx, tx, onBehalfOf, market.ShareAssetID, shares); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put("on_behalf_of", onBehalfOf)
		extra.Put("shares", shares.Dec())
		return s.transactionStr.Create(ctx, tx, &core.Transaction{
			TraceID: uuid.New(),
			UserID:  userID,
			Action:  core.ActionDeposit,
			AssetID: assetID,
			Amount:  amount.Clone(),
			Extra:   extra.Format(),
		})
	})
	if err != nil {
		return nil, err
	}

	return shares, nil
}

// Withdraw burns shares and pays out the underlying they are worth. A
// withdrawal that would drop the account below the solvency boundary aborts
// whole.
func (s *supplyService) Withdraw(ctx context.Context, userID, assetID string, shares *uint256.Int) (*uint256.Int, error) {
	if fixnum.IsZero(shares) {
		return nil, core.ErrInvalidAmount
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

	var amount *uint256.Int
	err = s.transactor.Tx(func(tx *db.DB) error {
		if err := s.marketSrv.AccrueInterest(ctx, tx, market, block); err != nil {
			return err
		}

		position, err := s.positionStore.Find(ctx, userID, assetID)
		if err != nil {
			return err
		}
		if position.DepositShares.Cmp(shares) < 0 {
			return core.ErrInsufficientShares
		}

		if amount, err = lending.ConvertToAssets(market, shares); err != nil {
			return core.ErrArithmeticOverflow
		}
		if amount.Cmp(lending.AvailableLiquidity(market)) > 0 {
			return core.ErrInsufficientLiquidity
		}

		if market.TotalDeposits, err = fixnum.Sub(market.TotalDeposits, amount); err != nil {
			return core.ErrArithmeticOverflow
		}
		if market.TotalShares, err = fixnum.Sub(market.TotalShares, shares); err != nil {
			return core.ErrArithmeticOverflow
		}
		if position.DepositShares, err = fixnum.Sub(position.DepositShares, shares); err != nil {
			return core.ErrArithmeticOverflow
		}

		hf, err := s.accountSrv.HealthFactorAfter(ctx, userID, position, map[string]*core.Market{assetID: market})
		if err != nil {
			return err
		}
		if !lending.IsHealthy(hf) {
			return core.ErrWouldBecomeUnhealthy
		}

		if err := s.marketStore.Update(ctx, tx, market); err != nil {
			return err
		}
		if err := s.positionStore.Save(ctx, tx, position); err != nil {
			return err
		}

		if err := s.tokenSrv.Burn(ctx, tx, userID, market.ShareAssetID, shares); err != nil {
			return err
		}
		if err := s.transferSrv.TransferOut(ctx, tx, userID, assetID, amount); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put("shares", shares.Dec())
		return s.transactionStr.Create(ctx, tx, &core.Transaction{
			TraceID: uuid.New(),
			UserID:  userID,
			Action:  core.ActionWithdraw,
			AssetID: assetID,
			Amount:  amount.Clone(),
			Extra:   extra.Format(),
		})
	})
	if err != nil {
		return nil, err
	}

	return amount, nil
}

// GetDepositBalance values the user's shares in underlying units at the
// current exchange rate.
func (s *supplyService) GetDepositBalance(ctx context.Context, userID, assetID string) (*uint256.Int, error) {
	market, err := s.marketStore.Find(ctx, assetID)
	if err != nil {
		return nil, core.ErrMarketNotFound
	}

	position, err := s.positionStore.Find(ctx, userID, assetID)
	if err != nil {
		return nil, err
	}

	amount, err := lending.ConvertToAssets(market, position.DepositShares)
	if err != nil {
		return nil, core.ErrArithmeticOverflow
	}
	return amount, nil
}
