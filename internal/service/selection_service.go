package service

import (
	"context"
	"errors"
	"net/url"
	"path"
	"path/filepath"
	"sync"
	"time"

	"asset-selector-be/internal/entity"
	"asset-selector-be/internal/pkg/logger"
	"asset-selector-be/pkg/catalog"
	"asset-selector-be/pkg/events"
	"asset-selector-be/pkg/matcher"
	"asset-selector-be/pkg/persistence"
	"asset-selector-be/pkg/recency"
	"asset-selector-be/pkg/selector"
)

const engineModule = "ENGINE"

var ErrNoCatalogSource = errors.New("no catalog source configured")

// SelectionResult is a selection plus how it was reached.
type SelectionResult struct {
	Asset     entity.SelectedAsset `json:"asset"`
	Sentiment entity.Sentiment     `json:"sentiment"`
	Stage     matcher.Stage        `json:"stage"`
}

type ISelectionService interface {
	Initialize(ctx context.Context, source catalog.Source) error
	Select(ctx context.Context, title, sentimentHint string) entity.SelectedAsset
	SelectDetailed(ctx context.Context, title, sentimentHint string) SelectionResult
	Reload(ctx context.Context) error
	RecencySnapshot() *entity.RecencySnapshot
	CatalogStats() catalog.Stats
	Flush(ctx context.Context) error
}

type selectionService struct {
	// mu guards catalog, source and tracker. Every selection reads the
	// candidates, decides and records under it.
	mu      sync.Mutex
	catalog *catalog.Catalog
	source  catalog.Source
	tracker *recency.Tracker

	matcher     *matcher.Matcher
	selector    *selector.Selector
	persistence *persistence.Adapter
	publisher   IPublisherService
	logger      logger.ILogger

	defaults      []entity.Asset
	assetLocalDir string
}

// NewSelectionService builds the engine. persistence and publisher may be nil.
func NewSelectionService(
	m *matcher.Matcher,
	sel *selector.Selector,
	tracker *recency.Tracker,
	persistenceAdapter *persistence.Adapter,
	publisher IPublisherService,
	log logger.ILogger,
	assetLocalDir string,
) ISelectionService {
	return &selectionService{
		tracker:       tracker,
		matcher:       m,
		selector:      sel,
		persistence:   persistenceAdapter,
		publisher:     publisher,
		logger:        log,
		defaults:      catalog.DefaultAssets(),
		assetLocalDir: assetLocalDir,
	}
}

// Initialize builds the catalog from source and hydrates the recency state.
// A failing source leaves the engine on the built-in catalog; the error is
// returned for the caller to report, the engine stays usable either way.
func (s *selectionService) Initialize(ctx context.Context, source catalog.Source) error {
	var state *recency.State
	if s.persistence != nil {
		if snap := s.persistence.Load(ctx); snap != nil {
			st := recency.FromSnapshot(snap)
			state = &st
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.source = source
	loadErr := s.rebuildLocked(ctx)

	if state != nil {
		s.tracker.Restore(*state)
		s.logger.Info(engineModule, "Recency state restored", map[string]interface{}{
			"global": s.tracker.Size(recency.Global),
		})
	}
	return loadErr
}

func (s *selectionService) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return ErrNoCatalogSource
	}
	return s.rebuildLocked(ctx)
}

// rebuildLocked swaps in a freshly built catalog. On source failure an
// existing catalog is kept; without one the defaults are used.
func (s *selectionService) rebuildLocked(ctx context.Context) error {
	var (
		assets []entity.Asset
		err    error
	)
	if s.source != nil {
		assets, err = s.source.Load(ctx)
	}
	if err != nil {
		s.logger.Error(engineModule, "Failed to load catalog source", map[string]interface{}{
			"error": err.Error(),
		})
		if s.catalog != nil {
			return err
		}
		assets = nil
	}

	built, buildErr := catalog.Build(assets, s.defaults)
	if buildErr != nil {
		// Only reachable with an empty defaults set.
		return buildErr
	}
	if len(assets) > 0 && built.Len() < len(assets) {
		s.logger.Warn(engineModule, "Skipped unusable or duplicate catalog records", map[string]interface{}{
			"received": len(assets),
			"indexed":  built.Len(),
		})
	}

	s.catalog = built
	s.logger.Info(engineModule, "Catalog built", map[string]interface{}{
		"assets":     built.Len(),
		"categories": len(built.Categories()),
	})
	return err
}

func (s *selectionService) Select(ctx context.Context, title, sentimentHint string) entity.SelectedAsset {
	return s.SelectDetailed(ctx, title, sentimentHint).Asset
}

func (s *selectionService) SelectDetailed(ctx context.Context, title, sentimentHint string) SelectionResult {
	s.mu.Lock()
	if s.catalog == nil {
		s.logger.Warn(engineModule, "Select called before Initialize, using built-in catalog", nil)
		s.catalog = catalog.MustBuildDefault()
	}

	sentiment := s.matcher.ResolveSentiment(title, sentimentHint)
	candidates, stage := s.matcher.MatchWithStage(title, sentiment, s.catalog)
	if len(candidates) == 0 {
		candidates = s.poolFallbackLocked()
		stage = matcher.StageFallback
	}

	chosen := s.selector.Select(candidates, title, s.tracker)
	selectedAt, _ := s.tracker.LastUsedAt(chosen.URL)
	snap := recency.ToSnapshot(s.tracker.Snapshot(), selectedAt)
	s.mu.Unlock()

	result := SelectionResult{
		Asset:     s.toSelected(chosen),
		Sentiment: sentiment,
		Stage:     stage,
	}

	s.logger.Info(engineModule, "Asset selected", map[string]interface{}{
		"title":     title,
		"sentiment": sentiment,
		"stage":     stage,
		"url":       chosen.URL,
		"category":  chosen.Category,
	})

	if s.persistence != nil {
		s.persistence.SaveAsync(snap)
	}
	s.publish(ctx, title, result, selectedAt)

	return result
}

// poolFallbackLocked is used when the sentiment pool itself is empty.
func (s *selectionService) poolFallbackLocked() []entity.Asset {
	if pool := s.catalog.BySentiment(entity.SentimentNeutral); len(pool) > 0 {
		return pool
	}
	return s.catalog.All()
}

func (s *selectionService) publish(ctx context.Context, title string, result SelectionResult, at time.Time) {
	if s.publisher == nil {
		return
	}
	evt := events.NewAssetSelected(title, result.Sentiment, string(result.Stage), result.Asset, at)
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn(engineModule, "Failed to publish selection event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *selectionService) toSelected(a entity.Asset) entity.SelectedAsset {
	return entity.SelectedAsset{
		URL:       a.URL,
		LocalPath: localPath(s.assetLocalDir, a.URL),
		Metadata: entity.AssetMetadata{
			Sentiment:   a.Sentiment,
			Category:    a.Category,
			Description: a.Description,
		},
	}
}

// localPath maps an asset url to its file name under dir.
func localPath(dir, rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	name := path.Base(p)
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

func (s *selectionService) RecencySnapshot() *entity.RecencySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return recency.ToSnapshot(s.tracker.Snapshot(), time.Now())
}

func (s *selectionService) CatalogStats() catalog.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog == nil {
		return catalog.Stats{}
	}
	return s.catalog.Stats()
}

func (s *selectionService) Flush(ctx context.Context) error {
	if s.persistence == nil {
		return nil
	}
	return s.persistence.Flush(ctx)
}
