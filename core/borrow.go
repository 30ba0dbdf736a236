package core

import (
	"context"

	"github.com/holiman/uint256"
)

// IBorrowService is the borrow side of the ledger.
type IBorrowService interface {
	// Borrow lends amount to the caller, subject to the market borrow cap,
	// pool liquidity and the post-borrow health factor
	Borrow(ctx context.Context, userID, assetID string, amount *uint256.Int) error

	// Repay pays down onBehalfOf's debt with the caller's funds. Requests
	// above the outstanding debt are clamped; the amount actually applied is
	// returned and is never silently absorbed.
	Repay(ctx context.Context, userID, onBehalfOf, assetID string, amount *uint256.Int) (*uint256.Int, error)

	// GetBorrowBalance reconciles the user's debt to the current borrow index
	GetBorrowBalance(ctx context.Context, userID, assetID string) (*uint256.Int, error)
}
