package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/holiman/uint256"
)

// Position is the per (user, asset) ledger record: the deposit claim in
// shares and the borrow principal with its index snapshot. A position is
// zeroed when fully unwound but never deleted, so the audit history stays
// reconstructible.
type Position struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID  string `sql:"size:36;unique_index:position_idx" json:"user_id"`
	AssetID string `sql:"size:36;unique_index:position_idx" json:"asset_id"`

	DepositShares   *uint256.Int `sql:"type:varchar(80)" json:"deposit_shares"`
	BorrowPrincipal *uint256.Int `sql:"type:varchar(80)" json:"borrow_principal"`
	// BorrowIndex is the market borrow index observed when the borrow side
	// was last touched; debt owed = principal * currentIndex / BorrowIndex
	BorrowIndex *uint256.Int `sql:"type:varchar(80)" json:"borrow_index"`

	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Normalize fills nil amount fields on rows loaded from storage.
func (p *Position) Normalize() {
	if p.DepositShares == nil {
		p.DepositShares = uint256.NewInt(0)
	}
	if p.BorrowPrincipal == nil {
		p.BorrowPrincipal = uint256.NewInt(0)
	}
	if p.BorrowIndex == nil {
		p.BorrowIndex = uint256.NewInt(0)
	}
}

// IPositionStore position store interface. Find returns an empty record
// (ID == 0) when no row exists yet.
type IPositionStore interface {
	Find(ctx context.Context, userID, assetID string) (*Position, error)
	FindByUser(ctx context.Context, userID string) ([]*Position, error)
	FindByAsset(ctx context.Context, assetID string) ([]*Position, error)
	// CountCollateralAssets counts the user's assets with nonzero deposit
	// shares, enforcing the collateral basket bound
	CountCollateralAssets(ctx context.Context, userID string) (int64, error)
	Save(ctx context.Context, tx *db.DB, position *Position) error
}
