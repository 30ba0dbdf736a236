package lending

import (
	"lendpool/core"
	"lendpool/pkg/fixnum"

	"github.com/holiman/uint256"
)

// ConvertToShares prices a deposit in claim shares at the current exchange
// rate, rounding down so a depositor can never mint more than their pro-rata
// claim. An empty pool bootstraps at 1:1.
func ConvertToShares(market *core.Market, amount *uint256.Int) (*uint256.Int, error) {
	if fixnum.IsZero(market.TotalShares) || fixnum.IsZero(market.TotalDeposits) {
		return amount.Clone(), nil
	}
	return fixnum.MulDivDown(amount, market.TotalShares, market.TotalDeposits)
}

// ConvertToAssets prices shares back into the underlying, rounding down so a
// withdrawal can never drain more than the claim is worth.
func ConvertToAssets(market *core.Market, shares *uint256.Int) (*uint256.Int, error) {
	if fixnum.IsZero(market.TotalShares) {
		return fixnum.Zero(), nil
	}
	return fixnum.MulDivDown(shares, market.TotalDeposits, market.TotalShares)
}

// SharesForAssets returns the shares that must be burned to release amount of
// the underlying, rounding up against the withdrawer.
func SharesForAssets(market *core.Market, amount *uint256.Int) (*uint256.Int, error) {
	if fixnum.IsZero(market.TotalShares) || fixnum.IsZero(market.TotalDeposits) {
		return amount.Clone(), nil
	}
	return fixnum.MulDivUp(amount, market.TotalShares, market.TotalDeposits)
}
