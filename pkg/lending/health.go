package lending

import (
	"lendpool/pkg/fixnum"

	"github.com/holiman/uint256"
)

// HealthFactor is weighted collateral value over debt value, wad scaled.
// With no debt the account is infinitely solvent and the max value serves as
// the sentinel.
func HealthFactor(collateralValue, debtValue *uint256.Int) (*uint256.Int, error) {
	if fixnum.IsZero(debtValue) {
		return fixnum.Max(), nil
	}
	return fixnum.WadDivDown(collateralValue, debtValue)
}

// IsHealthy reports whether a health factor clears the solvency boundary.
func IsHealthy(healthFactor *uint256.Int) bool {
	return healthFactor.Cmp(fixnum.Wad()) >= 0
}
