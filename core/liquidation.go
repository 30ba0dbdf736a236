package core

import (
	"context"

	"github.com/holiman/uint256"
)

// LiquidationResult reports what one liquidation settled.
type LiquidationResult struct {
	// Repaid is the debt actually covered after the close-factor clamp
	Repaid *uint256.Int `json:"repaid"`
	// Seized is the collateral transferred to the liquidator, bonus included
	Seized *uint256.Int `json:"seized"`
}

// ILiquidationService validates and settles liquidations of undercollateralized
// positions. The debt transfer in, collateral transfer out and both position
// mutations commit as one atomic unit.
type ILiquidationService interface {
	Liquidate(ctx context.Context, liquidatorID, borrowerID, debtAssetID, collateralAssetID string, repayAmount *uint256.Int) (*LiquidationResult, error)
}
