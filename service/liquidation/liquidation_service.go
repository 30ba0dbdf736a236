package liquidation

import (
	"context"

	"lendpool/core"
	"lendpool/pkg/fixnum"
	"lendpool/pkg/lending"

	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
	"github.com/holiman/uint256"
)

type liquidationService struct {
	marketStore    core.IMarketStore
	positionStore  core.IPositionStore
	transactionStr core.ITransactionStore
	marketSrv      core.IMarketService
	accountSrv     core.IAccountService
	blockSrv       core.IBlockService
	priceSrv       core.IPriceOracleService
	transferSrv    core.ITransferService
	tokenSrv       core.ITokenService
	transactor     core.Transactor
}

// New new liquidation service
func New(
	marketStr core.IMarketStore,
	positionStr core.IPositionStore,
	transactionStr core.ITransactionStore,
	marketSrv core.IMarketService,
	accountSrv core.IAccountService,
	blockSrv core.IBlockService,
	priceSrv core.IPriceOracleService,
	transferSrv core.ITransferService,
	tokenSrv core.ITokenService,
	transactor core.Transactor,
) core.ILiquidationService {
	return &liquidationService{
		marketStore:    marketStr,
		positionStore:  positionStr,
		transactionStr: transactionStr,
		marketSrv:      marketSrv,
		accountSrv:     accountSrv,
		blockSrv:       blockSrv,
		priceSrv:       priceSrv,
		transferSrv:    transferSrv,
		tokenSrv:       tokenSrv,
		transactor:     transactor,
	}
}

// Liquidate repays part of an unhealthy borrower's debt from the liquidator's
// funds and hands them discounted collateral in exchange. The repay is
// clamped to the close factor, so a deep liquidation takes several calls,
// each re-checking eligibility against the freshly accrued state.
func (s *liquidationService) Liquidate(ctx context.Context, liquidatorID, borrowerID, debtAssetID, collateralAssetID string, repayAmount *uint256.Int) (*core.LiquidationResult, error) {
	if fixnum.IsZero(repayAmount) {
		return nil, core.ErrInvalidAmount
	}
	if liquidatorID == borrowerID {
		return nil, core.ErrOperationForbidden
	}

	debtMarket, err := s.marketStore.Find(ctx, debtAssetID)
	if err != nil {
		return nil, core.ErrMarketNotFound
	}
	if !debtMarket.Active {
		return nil, core.ErrMarketInactive
	}

	collateralMarket := debtMarket
	if collateralAssetID != debtAssetID {
		if collateralMarket, err = s.marketStore.Find(ctx, collateralAssetID); err != nil {
			return nil, core.ErrMarketNotFound
		}
		if !collateralMarket.Active {
			return nil, core.ErrMarketInactive
		}
	}

	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return nil, err
	}

	var result *core.LiquidationResult
	err = s.transactor.Tx(func(tx *db.DB) error {
		if err := s.marketSrv.AccrueInterest(ctx, tx, debtMarket, block); err != nil {
			return err
		}
		if collateralMarket != debtMarket {
			if err := s.marketSrv.AccrueInterest(ctx, tx, collateralMarket, block); err != nil {
				return err
			}
		}

		accrued := map[string]*core.Market{
			debtAssetID:       debtMarket,
			collateralAssetID: collateralMarket,
		}
		hf, err := s.accountSrv.HealthFactorAfter(ctx, borrowerID, nil, accrued)
		if err != nil {
			return err
		}
		if lending.IsHealthy(hf) {
			return core.ErrNotLiquidatable
		}

		debtPosition, err := s.positionStore.Find(ctx, borrowerID, debtAssetID)
		if err != nil {
			return err
		}
		debt, err := lending.BorrowBalance(debtPosition, debtMarket)
		if err != nil {
			return core.ErrArithmeticOverflow
		}
		if debt.IsZero() {
			return core.ErrNoOutstandingDebt
		}

		repaid, err := lending.MaxCloseRepay(debtMarket, debt, repayAmount)
		if err != nil {
			return core.ErrArithmeticOverflow
		}

		debtPrice, err := s.priceSrv.GetPrice(ctx, debtAssetID, block)
		if err != nil {
			return err
		}
		collateralPrice, err := s.priceSrv.GetPrice(ctx, collateralAssetID, block)
		if err != nil {
			return err
		}

		seized, err := lending.SeizeCollateral(collateralMarket, repaid, debtPrice, collateralPrice)
		if err != nil {
			return core.ErrArithmeticOverflow
		}

		collateralPosition := debtPosition
		if collateralAssetID != debtAssetID {
			if collateralPosition, err = s.positionStore.Find(ctx, borrowerID, collateralAssetID); err != nil {
				return err
			}
		}

		collateralBalance, err := lending.ConvertToAssets(collateralMarket, collateralPosition.DepositShares)
		if err != nil {
			return core.ErrArithmeticOverflow
		}
		if seized.Cmp(collateralBalance) > 0 {
			return core.ErrInsufficientCollateralToSeize
		}

		// burn rounds up against the borrower, clamped to what they hold
		sharesBurned, err := lending.SharesForAssets(collateralMarket, seized)
		if err != nil {
			return core.ErrArithmeticOverflow
		}
		sharesBurned = fixnum.Min(sharesBurned, collateralPosition.DepositShares)

		if debtPosition.BorrowPrincipal, err = fixnum.Sub(debt, repaid); err != nil {
			return core.ErrArithmeticOverflow
		}
		debtPosition.BorrowIndex = debtMarket.BorrowIndex.Clone()

		if repaid.Cmp(debtMarket.TotalBorrows) >= 0 {
			debtMarket.TotalBorrows = fixnum.Zero()
		} else if debtMarket.TotalBorrows, err = fixnum.Sub(debtMarket.TotalBorrows, repaid); err != nil {
			return core.ErrArithmeticOverflow
		}

		if collateralPosition.DepositShares, err = fixnum.Sub(collateralPosition.DepositShares, sharesBurned); err != nil {
			return core.ErrArithmeticOverflow
		}
		if collateralMarket.TotalShares, err = fixnum.Sub(collateralMarket.TotalShares, sharesBurned); err != nil {
			return core.ErrArithmeticOverflow
		}
		if collateralMarket.TotalDeposits, err = fixnum.Sub(collateralMarket.TotalDeposits, seized); err != nil {
			return core.ErrArithmeticOverflow
		}

		if err := s.marketStore.Update(ctx, tx, debtMarket); err != nil {
			return err
		}
		if collateralMarket != debtMarket {
			if err := s.marketStore.Update(ctx, tx, collateralMarket); err != nil {
				return err
			}
		}

		if err := s.positionStore.Save(ctx, tx, debtPosition); err != nil {
			return err
		}
		if collateralPosition != debtPosition {
			if err := s.positionStore.Save(ctx, tx, collateralPosition); err != nil {
				return err
			}
		}

		if err := s.transferSrv.TransferIn(ctx, tx, liquidatorID, debtAssetID, repaid); err != nil {
			return err
		}
		if !sharesBurned.IsZero() {
			if err := s.tokenSrv.Burn(ctx, tx, borrowerID, collateralMarket.ShareAssetID, sharesBurned); err != nil {
				return err
			}
		}
		if err := s.transferSrv.TransferOut(ctx, tx, liquidatorID, collateralAssetID, seized); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put("borrower", borrowerID)
		extra.Put("collateral_asset_id", collateralAssetID)
		extra.Put("seized", seized.Dec())
		extra.Put("shares_burned", sharesBurned.Dec())
		if err := s.transactionStr.Create(ctx, tx, &core.Transaction{
			TraceID: uuid.New(),
			UserID:  liquidatorID,
			Action:  core.ActionLiquidate,
			AssetID: debtAssetID,
			Amount:  repaid.Clone(),
			Extra:   extra.Format(),
		}); err != nil {
			return err
		}

		result = &core.LiquidationResult{Repaid: repaid, Seized: seized}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
