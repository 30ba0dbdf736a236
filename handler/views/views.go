// Package views shapes internal ledger records into API payloads. Wad-scaled
// integers are rendered as decimals so clients never deal with the 1e18
// scale.
package views

import (
	"lendpool/core"

	"github.com/shopspring/decimal"
)

// Market market view
type Market struct {
	AssetID             string `json:"asset_id"`
	Symbol              string `json:"symbol"`
	ShareAssetID        string `json:"share_asset_id"`
	CollateralFactorBps uint64 `json:"collateral_factor_bps"`
	LiquidationBonusBps uint64 `json:"liquidation_bonus_bps"`
	ReserveFactorBps    uint64 `json:"reserve_factor_bps"`
	CloseFactorBps      uint64 `json:"close_factor_bps"`
	Active              bool   `json:"active"`
	BorrowEnabled       bool   `json:"borrow_enabled"`

	TotalDeposits   decimal.Decimal `json:"total_deposits"`
	TotalBorrows    decimal.Decimal `json:"total_borrows"`
	TotalShares     decimal.Decimal `json:"total_shares"`
	Reserves        decimal.Decimal `json:"reserves"`
	BorrowCap       decimal.Decimal `json:"borrow_cap"`
	UtilizationRate decimal.Decimal `json:"utilization_rate"`
	BorrowRate      decimal.Decimal `json:"borrow_rate"`
	SupplyRate      decimal.Decimal `json:"supply_rate"`
	BlockNumber     int64           `json:"block_number"`
}

// Position position view
type Position struct {
	AssetID        string          `json:"asset_id"`
	Symbol         string          `json:"symbol"`
	DepositShares  decimal.Decimal `json:"deposit_shares"`
	DepositBalance decimal.Decimal `json:"deposit_balance"`
	BorrowBalance  decimal.Decimal `json:"borrow_balance"`
}

// Account account view
type Account struct {
	UserID string `json:"user_id"`
	// HealthFactor is empty for an account with no debt
	HealthFactor decimal.Decimal `json:"health_factor,omitempty"`
	Solvent      bool            `json:"solvent"`
	Positions    []*Position     `json:"positions"`
}

// Transaction transaction view
type Transaction struct {
	core.Transaction
	Amount decimal.Decimal `json:"amount"`
}
