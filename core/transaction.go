package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/holiman/uint256"
	"github.com/jmoiron/sqlx/types"
)

// Transaction action names recorded in the audit trail.
const (
	ActionDeposit          = "deposit"
	ActionWithdraw         = "withdraw"
	ActionBorrow           = "borrow"
	ActionRepay            = "repay"
	ActionLiquidate        = "liquidate"
	ActionWithdrawReserves = "withdraw_reserves"
)

// Transaction is an append-only audit record of one committed ledger
// operation.
type Transaction struct {
	ID        uint64         `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string         `sql:"size:36;unique_index:trace_idx" json:"trace_id"`
	UserID    string         `sql:"size:36;index:user_idx" json:"user_id"`
	Action    string         `sql:"size:32" json:"action"`
	AssetID   string         `sql:"size:36" json:"asset_id"`
	Amount    *uint256.Int   `sql:"type:varchar(80)" json:"amount"`
	Extra     types.JSONText `sql:"type:varchar(2048)" json:"extra"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TransactionExtra collects auxiliary values for the audit payload.
type TransactionExtra map[string]interface{}

// NewTransactionExtra new extra
func NewTransactionExtra() TransactionExtra {
	return make(TransactionExtra)
}

// Put set a key
func (e TransactionExtra) Put(key string, value interface{}) {
	e[key] = value
}

// Format marshal to the stored JSON payload
func (e TransactionExtra) Format() types.JSONText {
	if len(e) == 0 {
		return types.JSONText("{}")
	}

	data, err := json.Marshal(e)
	if err != nil {
		return types.JSONText("{}")
	}
	return types.JSONText(data)
}

// ITransactionStore transaction store interface
type ITransactionStore interface {
	Create(ctx context.Context, tx *db.DB, transaction *Transaction) error
	FindByTraceID(ctx context.Context, traceID string) (*Transaction, error)
	List(ctx context.Context, fromID uint64, limit int) ([]*Transaction, error)
}
