package wallet

import (
	"context"

	"lendpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/holiman/uint256"
	"github.com/jinzhu/gorm"
)

type walletStore struct {
	db *db.DB
}

// New new wallet balance store
func New(db *db.DB) core.IWalletStore {
	return &walletStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.WalletBalance{})
		if err := tx.AutoMigrate(core.WalletBalance{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *walletStore) Find(ctx context.Context, userID, assetID string) (*core.WalletBalance, error) {
	var balance core.WalletBalance
	err := s.db.View().Where("user_id=? and asset_id=?", userID, assetID).First(&balance).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.WalletBalance{UserID: userID, AssetID: assetID, Balance: uint256.NewInt(0)}, nil
		}
		return nil, err
	}

	if balance.Balance == nil {
		balance.Balance = uint256.NewInt(0)
	}
	return &balance, nil
}

func (s *walletStore) FindByUser(ctx context.Context, userID string) ([]*core.WalletBalance, error) {
	var balances []*core.WalletBalance
	if err := s.db.View().Where("user_id=?", userID).Find(&balances).Error; err != nil {
		return nil, err
	}

	return balances, nil
}

func (s *walletStore) Save(ctx context.Context, tx *db.DB, balance *core.WalletBalance) error {
	if balance.ID == 0 {
		return tx.Update().Create(balance).Error
	}

	version := balance.Version
	balance.Version++
	return tx.Update().Model(core.WalletBalance{}).
		Where("id=? and version=?", balance.ID, version).
		Update(balance).Error
}
