package implementation

import (
	"context"
	"errors"
	"time"

	"asset-selector-be/internal/model"
	"asset-selector-be/internal/repository/contract"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecencySnapshotRepositoryImpl struct {
	db *gorm.DB
}

func NewRecencySnapshotRepository(db *gorm.DB) contract.RecencySnapshotRepository {
	return &RecencySnapshotRepositoryImpl{db: db}
}

func (r *RecencySnapshotRepositoryImpl) FindPayload(ctx context.Context, key string) ([]byte, error) {
	var m model.RecencySnapshot
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(m.Payload), nil
}

func (r *RecencySnapshotRepositoryImpl) SavePayload(ctx context.Context, key string, payload []byte, at time.Time) error {
	m := model.RecencySnapshot{
		Key:       key,
		Payload:   datatypes.JSON(payload),
		UpdatedAt: at,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&m).Error
}
