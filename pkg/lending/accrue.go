package lending

import (
	"lendpool/core"
	"lendpool/pkg/fixnum"
)

// Accrue rolls market state forward to block. It compounds the borrow side at
// the per-block rate over the elapsed blocks, skims the reserve factor off the
// interest, distributes the remainder to depositors through the supply index
// and refreshes the cached rate fields. Calling it twice at the same height is
// a no-op beyond the rate refresh.
func Accrue(market *core.Market, block int64) error {
	delta := block - market.BlockNumber
	if delta < 0 {
		// never rewind; refresh the cached rates only
		delta = 0
	}

	utilization, err := UtilizationRate(market.TotalBorrows, market.TotalDeposits)
	if err != nil {
		return err
	}
	borrowRate, err := BorrowRatePerBlock(utilization, market.BaseRate, market.Multiplier, market.JumpMultiplier, market.Kink)
	if err != nil {
		return err
	}

	if delta > 0 && fixnum.IsZero(market.TotalBorrows) {
		// nothing to compound on
		market.BlockNumber = block
		delta = 0
	}

	if delta > 0 {
		factor, err := fixnum.Mul(borrowRate, fixnum.New(uint64(delta)))
		if err != nil {
			return err
		}

		interest, err := fixnum.WadMulDown(market.TotalBorrows, factor)
		if err != nil {
			return err
		}
		reserveCut, err := fixnum.MulDivDown(interest, fixnum.New(market.ReserveFactorBps), BpsBase)
		if err != nil {
			return err
		}
		supplyInterest, err := fixnum.Sub(interest, reserveCut)
		if err != nil {
			return err
		}

		// Debt reconciliation rounds against the borrower, so the index
		// advances rounded up.
		indexGrowth, err := fixnum.WadMulUp(market.BorrowIndex, factor)
		if err != nil {
			return err
		}
		if market.BorrowIndex, err = fixnum.Add(market.BorrowIndex, indexGrowth); err != nil {
			return err
		}

		if !fixnum.IsZero(market.TotalDeposits) {
			supplyGrowth, err := fixnum.MulDivDown(market.SupplyIndex, supplyInterest, market.TotalDeposits)
			if err != nil {
				return err
			}
			if market.SupplyIndex, err = fixnum.Add(market.SupplyIndex, supplyGrowth); err != nil {
				return err
			}
		}

		if market.TotalBorrows, err = fixnum.Add(market.TotalBorrows, interest); err != nil {
			return err
		}
		if market.TotalDeposits, err = fixnum.Add(market.TotalDeposits, supplyInterest); err != nil {
			return err
		}
		if market.Reserves, err = fixnum.Add(market.Reserves, reserveCut); err != nil {
			return err
		}

		market.BlockNumber = block

		// interest moved the pool, recompute before caching
		if utilization, err = UtilizationRate(market.TotalBorrows, market.TotalDeposits); err != nil {
			return err
		}
		if borrowRate, err = BorrowRatePerBlock(utilization, market.BaseRate, market.Multiplier, market.JumpMultiplier, market.Kink); err != nil {
			return err
		}
	}

	supplyRate, err := SupplyRate(utilization, borrowRate, market.ReserveFactorBps)
	if err != nil {
		return err
	}

	market.UtilizationRate = utilization
	market.BorrowRatePerBlock = borrowRate
	market.SupplyRatePerBlock = supplyRate

	return nil
}
