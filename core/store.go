package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Transactor runs fn inside one database transaction; every state-changing
// ledger entrypoint wraps its whole mutate-then-validate sequence in one so
// either all effects commit or none do. *db.DB satisfies it.
type Transactor interface {
	Tx(fn func(tx *db.DB) error) error
}
