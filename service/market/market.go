package market

import (
	"context"

	"lendpool/core"
	"lendpool/pkg/fixnum"
	"lendpool/pkg/lending"

	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
	"github.com/holiman/uint256"
)

type service struct {
	config          *core.Config
	marketStore     core.IMarketStore
	transactionStr  core.ITransactionStore
	walletSrv       core.ITransferService
	blockSrv        core.IBlockService
	transactor      core.Transactor
}

// New new market service
func New(
	config *core.Config,
	marketStr core.IMarketStore,
	transactionStr core.ITransactionStore,
	walletSrv core.ITransferService,
	blockSrv core.IBlockService,
	transactor core.Transactor,
) core.IMarketService {
	return &service{
		config:         config,
		marketStore:    marketStr,
		transactionStr: transactionStr,
		walletSrv:      walletSrv,
		blockSrv:       blockSrv,
		transactor:     transactor,
	}
}

// AccrueInterest advances the market to block and persists it. It runs at the
// head of every ledger mutation on the market and from the interest worker.
func (s *service) AccrueInterest(ctx context.Context, tx *db.DB, market *core.Market, block int64) error {
	if err := lending.Accrue(market, block); err != nil {
		return core.ErrArithmeticOverflow
	}

	return s.marketStore.Update(ctx, tx, market)
}

func (s *service) CurUtilizationRate(ctx context.Context, market *core.Market) (*uint256.Int, error) {
	return lending.UtilizationRate(market.TotalBorrows, market.TotalDeposits)
}

func (s *service) CurBorrowRatePerBlock(ctx context.Context, market *core.Market) (*uint256.Int, error) {
	u, err := s.CurUtilizationRate(ctx, market)
	if err != nil {
		return nil, err
	}
	return lending.BorrowRatePerBlock(u, market.BaseRate, market.Multiplier, market.JumpMultiplier, market.Kink)
}

func (s *service) CurSupplyRatePerBlock(ctx context.Context, market *core.Market) (*uint256.Int, error) {
	u, err := s.CurUtilizationRate(ctx, market)
	if err != nil {
		return nil, err
	}
	borrowRate, err := lending.BorrowRatePerBlock(u, market.BaseRate, market.Multiplier, market.JumpMultiplier, market.Kink)
	if err != nil {
		return nil, err
	}
	return lending.SupplyRate(u, borrowRate, market.ReserveFactorBps)
}

// CurBorrowRate current yearly borrow rate
func (s *service) CurBorrowRate(ctx context.Context, market *core.Market) (*uint256.Int, error) {
	u, err := s.CurUtilizationRate(ctx, market)
	if err != nil {
		return nil, err
	}
	return lending.BorrowRate(u, market.BaseRate, market.Multiplier, market.JumpMultiplier, market.Kink)
}

// CurSupplyRate current yearly supply rate
func (s *service) CurSupplyRate(ctx context.Context, market *core.Market) (*uint256.Int, error) {
	u, err := s.CurUtilizationRate(ctx, market)
	if err != nil {
		return nil, err
	}
	borrowRate, err := lending.BorrowRate(u, market.BaseRate, market.Multiplier, market.JumpMultiplier, market.Kink)
	if err != nil {
		return nil, err
	}
	return lending.SupplyRate(u, borrowRate, market.ReserveFactorBps)
}

func validateConfig(market *core.Market) error {
	if market.AssetID == "" || market.Symbol == "" || market.ShareAssetID == "" {
		return core.ErrInvalidMarketConfig
	}

	if market.CollateralFactorBps > lending.MaxCollateralFactorBps ||
		market.ReserveFactorBps > lending.MaxReserveFactorBps {
		return core.ErrInvalidMarketConfig
	}

	if market.CloseFactorBps < lending.MinCloseFactorBps ||
		market.CloseFactorBps > lending.MaxCloseFactorBps {
		return core.ErrInvalidMarketConfig
	}

	if market.LiquidationBonusBps < lending.MinLiquidationBonusBps ||
		market.LiquidationBonusBps > lending.MaxLiquidationBonusBps {
		return core.ErrInvalidMarketConfig
	}

	if market.Kink.Cmp(fixnum.Wad()) > 0 {
		return core.ErrInvalidMarketConfig
	}

	return nil
}

func (s *service) CreateMarket(ctx context.Context, operatorID string, market *core.Market) error {
	if !s.config.IsOperator(operatorID) {
		return core.ErrOperationForbidden
	}

	market.Normalize()
	if err := validateConfig(market); err != nil {
		return err
	}

	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return err
	}
	market.BlockNumber = block

	return s.transactor.Tx(func(tx *db.DB) error {
		return s.marketStore.Create(ctx, tx, market)
	})
}

func (s *service) UpdateMarketConfig(ctx context.Context, operatorID, assetID string, collateralFactorBps uint64, borrowCap *uint256.Int) error {
	if !s.config.IsOperator(operatorID) {
		return core.ErrOperationForbidden
	}

	if collateralFactorBps > lending.MaxCollateralFactorBps {
		return core.ErrInvalidMarketConfig
	}

	market, err := s.marketStore.Find(ctx, assetID)
	if err != nil {
		return core.ErrMarketNotFound
	}

	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return err
	}

	return s.transactor.Tx(func(tx *db.DB) error {
		// settle outstanding interest under the old parameters first
		if err := s.AccrueInterest(ctx, tx, market, block); err != nil {
			return err
		}

		market.CollateralFactorBps = collateralFactorBps
		market.BorrowCap = fixnum.Clone(borrowCap)

		return s.marketStore.Update(ctx, tx, market)
	})
}

func (s *service) WithdrawReserves(ctx context.Context, operatorID, assetID string, amount *uint256.Int, to string) error {
	if !s.config.IsOperator(operatorID) {
		return core.ErrOperationForbidden
	}

	if fixnum.IsZero(amount) {
		return core.ErrInvalidAmount
	}

	market, err := s.marketStore.Find(ctx, assetID)
	if err != nil {
		return core.ErrMarketNotFound
	}

	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return err
	}

	return s.transactor.Tx(func(tx *db.DB) error {
		if err := s.AccrueInterest(ctx, tx, market, block); err != nil {
			return err
		}

		if amount.Cmp(market.Reserves) > 0 {
			return core.ErrInsufficientBalance
		}

		if market.Reserves, err = fixnum.Sub(market.Reserves, amount); err != nil {
			return core.ErrArithmeticOverflow
		}

		if err := s.marketStore.Update(ctx, tx, market); err != nil {
			return err
		}

		if err := s.walletSrv.TransferOut(ctx, tx, to, assetID, amount); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put("to", to)
		return s.transactionStr.Create(ctx, tx, &core.Transaction{
			TraceID: uuid.New(),
			UserID:  operatorID,
			Action:  core.ActionWithdrawReserves,
			AssetID: assetID,
			Amount:  amount.Clone(),
			Extra:   extra.Format(),
		})
	})
}
