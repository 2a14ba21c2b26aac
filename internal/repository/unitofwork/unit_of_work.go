package unitofwork

import (
	"context"

	"asset-selector-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	MediaAssetRepository() contract.MediaAssetRepository
	RecencySnapshotRepository() contract.RecencySnapshotRepository
}
