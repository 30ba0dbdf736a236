package lending

import (
	"lendpool/pkg/fixnum"

	"github.com/holiman/uint256"
)

// UtilizationRate returns total borrows over total deposits, wad scaled,
// zero when the pool is empty.
func UtilizationRate(totalBorrows, totalDeposits *uint256.Int) (*uint256.Int, error) {
	if fixnum.IsZero(totalDeposits) {
		return fixnum.Zero(), nil
	}

	return fixnum.WadDivDown(totalBorrows, totalDeposits)
}

// BorrowRate maps utilization to the yearly borrow rate (wad). The curve is
// linear up to the kink and picks up the jump multiplier for the excess
// beyond it.
func BorrowRate(utilization, baseRate, multiplier, jumpMultiplier, kink *uint256.Int) (*uint256.Int, error) {
	if kink.IsZero() || utilization.Cmp(kink) <= 0 {
		slope, err := fixnum.WadMulDown(multiplier, utilization)
		if err != nil {
			return nil, err
		}
		return fixnum.Add(baseRate, slope)
	}

	slope, err := fixnum.WadMulDown(multiplier, kink)
	if err != nil {
		return nil, err
	}
	normal, err := fixnum.Add(baseRate, slope)
	if err != nil {
		return nil, err
	}

	excess, err := fixnum.Sub(utilization, kink)
	if err != nil {
		return nil, err
	}
	jump, err := fixnum.WadMulDown(jumpMultiplier, excess)
	if err != nil {
		return nil, err
	}

	return fixnum.Add(normal, jump)
}

// BorrowRatePerBlock is BorrowRate scaled down to one block.
func BorrowRatePerBlock(utilization, baseRate, multiplier, jumpMultiplier, kink *uint256.Int) (*uint256.Int, error) {
	yearly, err := BorrowRate(utilization, baseRate, multiplier, jumpMultiplier, kink)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).Div(yearly, BlocksPerYear), nil
}

// SupplyRate is the rate accruing to depositors: the borrow rate weighted by
// utilization, net of the reserve factor. The result is at the same time
// scale as borrowRate.
func SupplyRate(utilization, borrowRate *uint256.Int, reserveFactorBps uint64) (*uint256.Int, error) {
	netBps, err := fixnum.Sub(BpsBase, fixnum.New(reserveFactorBps))
	if err != nil {
		return nil, err
	}
	rateToPool, err := fixnum.MulDivDown(borrowRate, netBps, BpsBase)
	if err != nil {
		return nil, err
	}
	return fixnum.WadMulDown(utilization, rateToPool)
}

// SupplyRatePerBlock is SupplyRate scaled down to one block.
func SupplyRatePerBlock(utilization, borrowRate *uint256.Int, reserveFactorBps uint64) (*uint256.Int, error) {
	yearly, err := SupplyRate(utilization, borrowRate, reserveFactorBps)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).Div(yearly, BlocksPerYear), nil
}
