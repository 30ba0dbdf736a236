package lending

import (
	"lendpool/core"
	"lendpool/pkg/fixnum"

	"github.com/holiman/uint256"
)

// DustDebtThreshold lets a liquidator close a position entirely once the
// close-factor clamp would leave debt too small to be worth another pass.
var DustDebtThreshold = uint256.NewInt(1000)

// MaxCloseRepay clamps a requested repay to the close factor of the debt
// market. Debt at or below the dust threshold may be closed in full.
func MaxCloseRepay(market *core.Market, debt, requested *uint256.Int) (*uint256.Int, error) {
	if debt.Cmp(DustDebtThreshold) <= 0 {
		return fixnum.Min(requested, debt), nil
	}

	maxClose, err := fixnum.MulDivDown(debt, fixnum.New(market.CloseFactorBps), BpsBase)
	if err != nil {
		return nil, err
	}
	return fixnum.Min(requested, maxClose), nil
}

// SeizeCollateral converts repaid debt value into collateral units with the
// liquidation bonus applied, both steps rounding down so the liquidator never
// captures value the borrower did not owe.
//
//	seized = repaid * debtPrice * (1 + bonus) / collateralPrice
func SeizeCollateral(collateral *core.Market, repaid, debtPrice, collateralPrice *uint256.Int) (*uint256.Int, error) {
	repaidValue, err := fixnum.WadMulDown(repaid, debtPrice)
	if err != nil {
		return nil, err
	}

	bonusBps, err := fixnum.Add(BpsBase, fixnum.New(collateral.LiquidationBonusBps))
	if err != nil {
		return nil, err
	}
	seizeValue, err := fixnum.MulDivDown(repaidValue, bonusBps, BpsBase)
	if err != nil {
		return nil, err
	}

	return fixnum.WadDivDown(seizeValue, collateralPrice)
}
