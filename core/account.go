package core

import (
	"context"

	"github.com/holiman/uint256"
)

// MaxCollateralAssets bounds the number of distinct assets one account may
// hold deposit shares in, keeping the health factor scan cost predictable.
const MaxCollateralAssets = 16

// Account aggregates a user's positions with the resulting solvency ratio.
type Account struct {
	UserID string `json:"user_id"`
	// HealthFactor is wad scaled; 1e18 is the solvency boundary
	HealthFactor *uint256.Int `json:"health_factor"`
	Positions    []*Position  `json:"positions"`
}

// IAccountService computes account solvency.
type IAccountService interface {
	// GetHealthFactor returns the wad-scaled ratio of risk-adjusted
	// collateral value to debt value, or the max sentinel when the account
	// owes nothing. Stale prices abort the call.
	GetHealthFactor(ctx context.Context, userID string) (*uint256.Int, error)

	// HealthFactorAfter evaluates the health factor as if the given position
	// and market rows replaced the stored ones. Withdraw, borrow and
	// liquidation use it to validate their tentative mutation before commit.
	HealthFactorAfter(ctx context.Context, userID string, position *Position, markets map[string]*Market) (*uint256.Int, error)
}
