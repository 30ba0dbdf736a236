package position

import (
	"context"

	"lendpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type positionStore struct {
	db *db.DB
}

// New new position store
func New(db *db.DB) core.IPositionStore {
	return &positionStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Position{})
		if err := tx.AutoMigrate(core.Position{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *positionStore) Find(ctx context.Context, userID, assetID string) (*core.Position, error) {
	var position core.Position
	err := s.db.View().Where("user_id=? and asset_id=?", userID, assetID).First(&position).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			position = core.Position{UserID: userID, AssetID: assetID}
			position.Normalize()
			return &position, nil
		}
		return nil, err
	}

	position.Normalize()
	return &position, nil
}

func (s *positionStore) FindByUser(ctx context.Context, userID string) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Where("user_id=?", userID).Find(&positions).Error; err != nil {
		return nil, err
	}

	for _, p := range positions {
		p.Normalize()
	}
	return positions, nil
}

func (s *positionStore) FindByAsset(ctx context.Context, assetID string) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Where("asset_id=?", assetID).Find(&positions).Error; err != nil {
		return nil, err
	}

	for _, p := range positions {
		p.Normalize()
	}
	return positions, nil
}

func (s *positionStore) CountCollateralAssets(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.View().Model(core.Position{}).
		Where("user_id=? and deposit_shares<>'0'", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *positionStore) Save(ctx context.Context, tx *db.DB, position *core.Position) error {
	if position.ID == 0 {
		return tx.Update().Create(position).Error
	}

	version := position.Version
	position.Version++
	return tx.Update().Model(core.Position{}).
		Where("id=? and version=?", position.ID, version).
		Update(position).Error
}
