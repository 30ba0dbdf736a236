package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/holiman/uint256"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// Price is one oracle observation: the wad-scaled underlying price of an
// asset as of a block.
type Price struct {
	ID          uint64       `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	AssetID     string       `sql:"size:36;unique_index:idx_prices" json:"asset_id,omitempty"`
	BlockNumber int64        `sql:"default:0;unique_index:idx_prices" json:"block_number,omitempty"`
	Price       *uint256.Int `sql:"type:varchar(80)" json:"price,omitempty"`
	Content     types.JSONText `sql:"type:varchar(1024)" json:"content,omitempty"`
	CreatedAt   time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
}

// PriceTicker is a raw feed quote before it is converted to wad scale.
type PriceTicker struct {
	Provider string          `json:"provider,omitempty"`
	Symbol   string          `json:"symbol,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`
}

// IPriceStore price store interface
type IPriceStore interface {
	Create(ctx context.Context, tx *db.DB, price *Price) error
	// FindLatest returns the newest observation at or before maxBlock, or an
	// empty record (ID == 0) when none exists
	FindLatest(ctx context.Context, assetID string, maxBlock int64) (*Price, error)
}

// IPriceOracleService is the boundary to the price oracle collaborator.
type IPriceOracleService interface {
	// GetPrice returns the wad-scaled price of the asset, rejecting with
	// ErrStalePrice when the newest observation is older than the configured
	// staleness bound relative to block
	GetPrice(ctx context.Context, assetID string, block int64) (*uint256.Int, error)
	// PullPriceTicker fetches a quote for one symbol from the feed
	PullPriceTicker(ctx context.Context, symbol string, t time.Time) (*PriceTicker, error)
	// PullAllPriceTickers fetches quotes for every listed market
	PullAllPriceTickers(ctx context.Context, t time.Time) ([]*PriceTicker, error)
}
