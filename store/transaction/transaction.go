package transaction

import (
	"context"

	"lendpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type transactionStore struct {
	db *db.DB
}

// New new transaction store
func New(db *db.DB) core.ITransactionStore {
	return &transactionStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transaction{})
		if err := tx.AutoMigrate(core.Transaction{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *transactionStore) Create(ctx context.Context, tx *db.DB, transaction *core.Transaction) error {
	return tx.Update().Create(transaction).Error
}

func (s *transactionStore) FindByTraceID(ctx context.Context, traceID string) (*core.Transaction, error) {
	var transaction core.Transaction
	err := s.db.View().Where("trace_id=?", traceID).First(&transaction).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Transaction{}, nil
		}
		return nil, err
	}

	return &transaction, nil
}

func (s *transactionStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.Transaction, error) {
	var transactions []*core.Transaction
	err := s.db.View().
		Where("id > ?", fromID).
		Order("id asc").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
