package price

import (
	"context"

	"lendpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type priceStore struct {
	db *db.DB
}

// New new price store
func New(db *db.DB) core.IPriceStore {
	return &priceStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Price{})
		if err := tx.AutoMigrate(core.Price{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *priceStore) Create(ctx context.Context, tx *db.DB, price *core.Price) error {
	return tx.Update().Where("asset_id=? and block_number=?", price.AssetID, price.BlockNumber).
		FirstOrCreate(price).Error
}

func (s *priceStore) FindLatest(ctx context.Context, assetID string, maxBlock int64) (*core.Price, error) {
	var price core.Price
	err := s.db.View().
		Where("asset_id=? and block_number<=?", assetID, maxBlock).
		Order("block_number desc").
		First(&price).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Price{AssetID: assetID}, nil
		}
		return nil, err
	}

	return &price, nil
}
