package persistence

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"asset-selector-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const localCacheKey = "recency_state"

// LocalStore is the fast tier: an in-process cache in front of a JSON file in
// a scratch directory. Both may disappear whenever the host recycles.
type LocalStore struct {
	cache *cache.Cache
	path  string
}

// NewLocalStore keeps the file under dir; an empty dir means the OS temp dir.
func NewLocalStore(dir string, ttl time.Duration) *LocalStore {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "asset-selector")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &LocalStore{
		cache: cache.New(ttl, 10*time.Minute),
		path:  filepath.Join(dir, "recency_state.json"),
	}
}

func (s *LocalStore) Name() string { return "local" }

func (s *LocalStore) Path() string { return s.path }

func (s *LocalStore) Load(ctx context.Context) (*entity.RecencySnapshot, error) {
	if x, found := s.cache.Get(localCacheKey); found {
		return clone(x.(*entity.RecencySnapshot)), nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	snap, err := decode(data)
	if err != nil {
		return nil, err
	}
	s.cache.Set(localCacheKey, clone(snap), cache.DefaultExpiration)
	return snap, nil
}

func (s *LocalStore) Save(ctx context.Context, snap *entity.RecencySnapshot) error {
	s.cache.Set(localCacheKey, clone(snap), cache.DefaultExpiration)

	data, err := encode(snap)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// Forget drops the in-process copy, leaving only the file.
func (s *LocalStore) Forget() {
	s.cache.Delete(localCacheKey)
}
