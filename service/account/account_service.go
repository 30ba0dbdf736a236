package account

import (
	"context"

	"lendpool/core"
	"lendpool/pkg/fixnum"
	"lendpool/pkg/lending"

	"github.com/holiman/uint256"
)

type accountService struct {
	marketStore   core.IMarketStore
	positionStore core.IPositionStore
	priceSrv      core.IPriceOracleService
	blockSrv      core.IBlockService
}

// New new account service
func New(
	marketStr core.IMarketStore,
	positionStr core.IPositionStore,
	priceSrv core.IPriceOracleService,
	blockSrv core.IBlockService,
) core.IAccountService {
	return &accountService{
		marketStore:   marketStr,
		positionStore: positionStr,
		priceSrv:      priceSrv,
		blockSrv:      blockSrv,
	}
}

func (s *accountService) GetHealthFactor(ctx context.Context, userID string) (*uint256.Int, error) {
	return s.HealthFactorAfter(ctx, userID, nil, nil)
}

// HealthFactorAfter walks the user's positions with the tentative position
// and market rows overlaid on the stored ones. Collateral value rounds down
// and debt value rounds up, so the boundary errs toward treating the account
// as unhealthy.
func (s *accountService) HealthFactorAfter(ctx context.Context, userID string, position *core.Position, markets map[string]*core.Market) (*uint256.Int, error) {
	positions, err := s.positionStore.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if position != nil {
		replaced := false
		for i, p := range positions {
			if p.AssetID == position.AssetID {
				positions[i] = position
				replaced = true
				break
			}
		}
		if !replaced {
			positions = append(positions, position)
		}
	}

	stored, err := s.marketStore.AllAsMap(ctx)
	if err != nil {
		return nil, err
	}
	for assetID, m := range markets {
		stored[assetID] = m
	}

	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return nil, err
	}

	collateralValue := fixnum.Zero()
	debtValue := fixnum.Zero()

	for _, p := range positions {
		if fixnum.IsZero(p.DepositShares) && fixnum.IsZero(p.BorrowPrincipal) {
			continue
		}

		market, ok := stored[p.AssetID]
		if !ok {
			return nil, core.ErrMarketNotFound
		}

		price, err := s.priceSrv.GetPrice(ctx, p.AssetID, block)
		if err != nil {
			return nil, err
		}

		if !fixnum.IsZero(p.DepositShares) && market.CollateralFactorBps > 0 {
			amount, err := lending.ConvertToAssets(market, p.DepositShares)
			if err != nil {
				return nil, core.ErrArithmeticOverflow
			}
			value, err := fixnum.WadMulDown(amount, price)
			if err != nil {
				return nil, core.ErrArithmeticOverflow
			}
			weighted, err := fixnum.MulDivDown(value, fixnum.New(market.CollateralFactorBps), lending.BpsBase)
			if err != nil {
				return nil, core.ErrArithmeticOverflow
			}
			if collateralValue, err = fixnum.Add(collateralValue, weighted); err != nil {
				return nil, core.ErrArithmeticOverflow
			}
		}

		if !fixnum.IsZero(p.BorrowPrincipal) {
			debt, err := lending.BorrowBalance(p, market)
			if err != nil {
				return nil, core.ErrArithmeticOverflow
			}
			value, err := fixnum.WadMulUp(debt, price)
			if err != nil {
				return nil, core.ErrArithmeticOverflow
			}
			if debtValue, err = fixnum.Add(debtValue, value); err != nil {
				return nil, core.ErrArithmeticOverflow
			}
		}
	}

	hf, err := lending.HealthFactor(collateralValue, debtValue)
	if err != nil {
		return nil, core.ErrArithmeticOverflow
	}
	return hf, nil
}
