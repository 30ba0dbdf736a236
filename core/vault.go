package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/holiman/uint256"
)

// VaultUserID is the account the pooled underlying balances sit on.
const VaultUserID = "vault"

// WalletBalance is one (user, asset) balance row in the vault book. The
// claim-share token balances live in the same book under the market's
// ShareAssetID.
type WalletBalance struct {
	ID        uint64       `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID    string       `sql:"size:36;unique_index:wallet_idx" json:"user_id"`
	AssetID   string       `sql:"size:36;unique_index:wallet_idx" json:"asset_id"`
	Balance   *uint256.Int `sql:"type:varchar(80)" json:"balance"`
	Version   int64        `sql:"default:0" json:"version"`
	CreatedAt time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IWalletStore wallet balance store interface. Find returns an empty record
// (ID == 0) when no row exists yet.
type IWalletStore interface {
	Find(ctx context.Context, userID, assetID string) (*WalletBalance, error)
	FindByUser(ctx context.Context, userID string) ([]*WalletBalance, error)
	Save(ctx context.Context, tx *db.DB, balance *WalletBalance) error
}

// ITransferService moves underlying assets between a user and the vault.
// Both calls must run inside the ledger mutation's transaction so the
// transfer commits or aborts with it.
type ITransferService interface {
	TransferIn(ctx context.Context, tx *db.DB, fromUserID, assetID string, amount *uint256.Int) error
	TransferOut(ctx context.Context, tx *db.DB, toUserID, assetID string, amount *uint256.Int) error
}

// ITokenService is the narrow capability handle on the claim-share token.
// Failures must surface as errors and abort the calling ledger operation.
type ITokenService interface {
	Mint(ctx context.Context, tx *db.DB, holderID, shareAssetID string, amount *uint256.Int) error
	Burn(ctx context.Context, tx *db.DB, holderID, shareAssetID string, amount *uint256.Int) error
}
