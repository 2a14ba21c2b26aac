package implementation

import (
	"context"
	"errors"

	"asset-selector-be/internal/entity"
	"asset-selector-be/internal/mapper"
	"asset-selector-be/internal/model"
	"asset-selector-be/internal/repository/contract"
	"asset-selector-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MediaAssetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MediaAssetMapper
}

func NewMediaAssetRepository(db *gorm.DB) contract.MediaAssetRepository {
	return &MediaAssetRepositoryImpl{
		db:     db,
		mapper: mapper.NewMediaAssetMapper(),
	}
}

func (r *MediaAssetRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Upsert inserts the asset or refreshes the row that already owns its url.
func (r *MediaAssetRepositoryImpl) Upsert(ctx context.Context, asset *entity.MediaAsset) error {
	m := r.mapper.ToModel(asset)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{"sentiment", "category", "description", "keywords", "is_active", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*asset = *r.mapper.ToEntity(m)
	return nil
}

func (r *MediaAssetRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MediaAsset, error) {
	var m model.MediaAsset
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MediaAssetRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MediaAsset, error) {
	var models []model.MediaAsset
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.MediaAsset, len(models))
	for i := range models {
		entities[i] = r.mapper.ToEntity(&models[i])
	}
	return entities, nil
}

func (r *MediaAssetRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.MediaAsset{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Deactivate hides matching rows from selection. At least one spec is required.
func (r *MediaAssetRepositoryImpl) Deactivate(ctx context.Context, specs ...specification.Specification) (int64, error) {
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.MediaAsset{}), specs...)
	res := query.Update("is_active", false)
	return res.RowsAffected, res.Error
}
