package lending

import (
	"lendpool/core"
	"lendpool/pkg/fixnum"

	"github.com/holiman/uint256"
)

// BorrowBalance reconciles a position's stored principal to the market's
// current borrow index, rounding up against the borrower. A position written
// before the index existed reads as snapshotted at 1.0.
func BorrowBalance(position *core.Position, market *core.Market) (*uint256.Int, error) {
	if fixnum.IsZero(position.BorrowPrincipal) {
		return fixnum.Zero(), nil
	}

	snapshot := position.BorrowIndex
	if fixnum.IsZero(snapshot) {
		snapshot = fixnum.Wad()
	}

	return fixnum.MulDivUp(position.BorrowPrincipal, market.BorrowIndex, snapshot)
}

// AvailableLiquidity is the cash the pool can actually pay out to borrowers
// and withdrawers: total deposits minus what is already lent out. Reserves
// never enter it, the reserve skim is excluded from deposits at accrual time.
func AvailableLiquidity(market *core.Market) *uint256.Int {
	if market.TotalBorrows.Cmp(market.TotalDeposits) >= 0 {
		return fixnum.Zero()
	}
	liquidity, _ := fixnum.Sub(market.TotalDeposits, market.TotalBorrows)
	return liquidity
}
