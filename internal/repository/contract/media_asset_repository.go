package contract

import (
	"context"

	"asset-selector-be/internal/entity"
	"asset-selector-be/internal/repository/specification"
)

type MediaAssetRepository interface {
	Upsert(ctx context.Context, asset *entity.MediaAsset) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MediaAsset, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MediaAsset, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Deactivate(ctx context.Context, specs ...specification.Specification) (int64, error)
}
