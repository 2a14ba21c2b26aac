package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"asset-selector-be/internal/entity"
)

// DefaultStateKey names the snapshot in shared stores.
const DefaultStateKey = "asset_selector:recency_state"

// Store is one persistence tier. Load returns nil, nil when nothing is stored.
type Store interface {
	Name() string
	Load(ctx context.Context) (*entity.RecencySnapshot, error)
	Save(ctx context.Context, snap *entity.RecencySnapshot) error
}

func encode(snap *entity.RecencySnapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encoding recency snapshot: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*entity.RecencySnapshot, error) {
	var snap entity.RecencySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding recency snapshot: %w", err)
	}
	if snap.PerCategoryRecent == nil {
		snap.PerCategoryRecent = make(map[string][]string)
	}
	return &snap, nil
}

func clone(snap *entity.RecencySnapshot) *entity.RecencySnapshot {
	if snap == nil {
		return nil
	}
	out := &entity.RecencySnapshot{
		LastUpdated:       snap.LastUpdated,
		GlobalRecent:      append([]string{}, snap.GlobalRecent...),
		PerCategoryRecent: make(map[string][]string, len(snap.PerCategoryRecent)),
	}
	for c, urls := range snap.PerCategoryRecent {
		out.PerCategoryRecent[c] = append([]string{}, urls...)
	}
	return out
}
