package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/holiman/uint256"
)

// Market carries both the governance-owned configuration and the accounting
// state of one asset pool. Amount columns are 256-bit integers persisted as
// decimal strings; index columns are wad (1e18) scaled.
type Market struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:asset_idx" json:"asset_id"`
	Symbol  string `sql:"size:20;unique_index:symbol_idx" json:"symbol"`
	// ShareAssetID identifies the claim-share token minted against deposits
	ShareAssetID string `sql:"size:36;unique_index:share_asset_idx" json:"share_asset_id"`

	// governance-owned configuration
	CollateralFactorBps uint64       `sql:"default:0" json:"collateral_factor_bps"`
	LiquidationBonusBps uint64       `sql:"default:0" json:"liquidation_bonus_bps"`
	ReserveFactorBps    uint64       `sql:"default:0" json:"reserve_factor_bps"`
	CloseFactorBps      uint64       `sql:"default:5000" json:"close_factor_bps"`
	BorrowCap           *uint256.Int `sql:"type:varchar(80)" json:"borrow_cap"`
	Active              bool         `sql:"default:0" json:"active"`
	BorrowEnabled       bool         `sql:"default:0" json:"borrow_enabled"`

	// interest rate model, wad-scaled yearly rates
	BaseRate       *uint256.Int `sql:"type:varchar(80)" json:"base_rate"`
	Multiplier     *uint256.Int `sql:"type:varchar(80)" json:"multiplier"`
	JumpMultiplier *uint256.Int `sql:"type:varchar(80)" json:"jump_multiplier"`
	Kink           *uint256.Int `sql:"type:varchar(80)" json:"kink"`

	// accounting state, mutated only by accrual and the ledger entrypoints
	TotalDeposits *uint256.Int `sql:"type:varchar(80)" json:"total_deposits"`
	TotalBorrows  *uint256.Int `sql:"type:varchar(80)" json:"total_borrows"`
	TotalShares   *uint256.Int `sql:"type:varchar(80)" json:"total_shares"`
	Reserves      *uint256.Int `sql:"type:varchar(80)" json:"reserves"`
	BorrowIndex   *uint256.Int `sql:"type:varchar(80)" json:"borrow_index"`
	SupplyIndex   *uint256.Int `sql:"type:varchar(80)" json:"supply_index"`
	// BlockNumber is the block the indices were last advanced at
	BlockNumber int64 `sql:"default:0" json:"block_number"`

	// cached at accrual time for cheap reads
	UtilizationRate    *uint256.Int `sql:"type:varchar(80)" json:"utilization_rate"`
	BorrowRatePerBlock *uint256.Int `sql:"type:varchar(80)" json:"borrow_rate_per_block"`
	SupplyRatePerBlock *uint256.Int `sql:"type:varchar(80)" json:"supply_rate_per_block"`

	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Normalize fills nil amount fields and bootstraps indices at 1.0 so rows
// loaded from storage are always safe to compute with.
func (m *Market) Normalize() {
	wad := uint256.MustFromDecimal("1000000000000000000")

	for _, v := range []**uint256.Int{
		&m.BorrowCap, &m.BaseRate, &m.Multiplier, &m.JumpMultiplier, &m.Kink,
		&m.TotalDeposits, &m.TotalBorrows, &m.TotalShares, &m.Reserves,
		&m.UtilizationRate, &m.BorrowRatePerBlock, &m.SupplyRatePerBlock,
	} {
		if *v == nil {
			*v = uint256.NewInt(0)
		}
	}

	if m.BorrowIndex == nil || m.BorrowIndex.IsZero() {
		m.BorrowIndex = wad.Clone()
	}
	if m.SupplyIndex == nil || m.SupplyIndex.IsZero() {
		m.SupplyIndex = wad.Clone()
	}
}

// IMarketStore market store interface
type IMarketStore interface {
	Create(ctx context.Context, tx *db.DB, market *Market) error
	Find(ctx context.Context, assetID string) (*Market, error)
	FindBySymbol(ctx context.Context, symbol string) (*Market, error)
	All(ctx context.Context) ([]*Market, error)
	AllAsMap(ctx context.Context) (map[string]*Market, error)
	Update(ctx context.Context, tx *db.DB, market *Market) error
}

// IMarketService market service interface
type IMarketService interface {
	// AccrueInterest advances the market indices to the given block; it is
	// idempotent and is the only mutation path for MarketState
	AccrueInterest(ctx context.Context, tx *db.DB, market *Market, block int64) error
	CurUtilizationRate(ctx context.Context, market *Market) (*uint256.Int, error)
	CurBorrowRatePerBlock(ctx context.Context, market *Market) (*uint256.Int, error)
	CurSupplyRatePerBlock(ctx context.Context, market *Market) (*uint256.Int, error)
	CurBorrowRate(ctx context.Context, market *Market) (*uint256.Int, error)
	CurSupplyRate(ctx context.Context, market *Market) (*uint256.Int, error)

	// governance-gated operations
	CreateMarket(ctx context.Context, operatorID string, market *Market) error
	UpdateMarketConfig(ctx context.Context, operatorID, assetID string, collateralFactorBps uint64, borrowCap *uint256.Int) error
	WithdrawReserves(ctx context.Context, operatorID, assetID string, amount *uint256.Int, to string) error
}
