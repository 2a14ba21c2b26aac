package persistence

import (
	"context"
	"fmt"

	"asset-selector-be/internal/entity"
	"asset-selector-be/internal/repository/contract"
)

// GormStore is a durable tier backed by the recency_snapshots table.
type GormStore struct {
	repo contract.RecencySnapshotRepository
	key  string
}

func NewGormStore(repo contract.RecencySnapshotRepository, key string) *GormStore {
	if key == "" {
		key = DefaultStateKey
	}
	return &GormStore{repo: repo, key: key}
}

func (s *GormStore) Name() string { return "postgres" }

func (s *GormStore) Load(ctx context.Context) (*entity.RecencySnapshot, error) {
	data, err := s.repo.FindPayload(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %s: %w", s.key, err)
	}
	if data == nil {
		return nil, nil
	}
	return decode(data)
}

func (s *GormStore) Save(ctx context.Context, snap *entity.RecencySnapshot) error {
	data, err := encode(snap)
	if err != nil {
		return err
	}
	if err := s.repo.SavePayload(ctx, s.key, data, snap.LastUpdated); err != nil {
		return fmt.Errorf("saving snapshot %s: %w", s.key, err)
	}
	return nil
}
