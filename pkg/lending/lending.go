// Package lending holds the pure market math: rate curves, index accrual,
// share conversion, debt reconciliation and liquidation arithmetic. Nothing
// here touches storage; services feed it current state and persist the
// result.
package lending

import (
	"github.com/holiman/uint256"
)

var (
	// SecondsPerBlock seconds per block
	SecondsPerBlock int64 = 15
	// BlocksPerYear blocks per year at 15-second blocks
	BlocksPerYear = uint256.NewInt(2102400)

	// BpsBase basis point denominator
	BpsBase = uint256.NewInt(10000)

	// MaxCollateralFactorBps upper bound for a market's collateral factor
	MaxCollateralFactorBps uint64 = 10000
	// MinCloseFactorBps / MaxCloseFactorBps valid close factor range
	MinCloseFactorBps uint64 = 500
	MaxCloseFactorBps uint64 = 9000
	// MinLiquidationBonusBps / MaxLiquidationBonusBps valid bonus range
	MinLiquidationBonusBps uint64 = 100
	MaxLiquidationBonusBps uint64 = 9000
	// MaxReserveFactorBps upper bound for the reserve skim
	MaxReserveFactorBps uint64 = 5000
)
