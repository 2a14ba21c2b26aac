package persistence

import (
	"context"
	"sync"
	"time"

	"asset-selector-be/internal/entity"
	"asset-selector-be/internal/pkg/logger"
)

const (
	logModule = "PERSISTENCE"

	DefaultTimeout = 3 * time.Second
)

// Adapter loads and saves recency snapshots across a fast tier and an
// optional durable tier. Every failure is logged and swallowed.
type Adapter struct {
	fast    *tier
	durable *tier
	timeout time.Duration
	logger  logger.ILogger

	wg sync.WaitGroup
}

// tier serializes writes to one store and drops snapshots older than the
// last one written.
type tier struct {
	store       Store
	mu          sync.Mutex
	lastWritten time.Time
}

// NewAdapter wires the tiers. durable may be nil.
func NewAdapter(fast, durable Store, timeout time.Duration, log logger.ILogger) *Adapter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	a := &Adapter{timeout: timeout, logger: log}
	if fast != nil {
		a.fast = &tier{store: fast}
	}
	if durable != nil {
		a.durable = &tier{store: durable}
	}
	return a
}

// Load returns the freshest available snapshot, or nil when no tier has one
// or every tier failed. A durable hit is copied into the fast tier.
func (a *Adapter) Load(ctx context.Context) *entity.RecencySnapshot {
	if snap := a.loadFrom(ctx, a.fast); snap != nil {
		return snap
	}

	snap := a.loadFrom(ctx, a.durable)
	if snap == nil {
		a.logger.Info(logModule, "No prior recency state, starting empty", nil)
		return nil
	}

	if a.fast != nil {
		if err := a.write(ctx, a.fast, snap); err != nil {
			a.logger.Warn(logModule, "Failed to warm fast tier", map[string]interface{}{
				"store": a.fast.store.Name(),
				"error": err.Error(),
			})
		}
	}
	return snap
}

func (a *Adapter) loadFrom(ctx context.Context, t *tier) *entity.RecencySnapshot {
	if t == nil {
		return nil
	}

	var (
		snap *entity.RecencySnapshot
		err  error
	)
	for attempt := 0; attempt < 2; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, a.timeout)
		snap, err = t.store.Load(attemptCtx)
		cancel()
		if err == nil {
			break
		}
	}
	if err != nil {
		a.logger.Warn(logModule, "Failed to load recency state", map[string]interface{}{
			"store": t.store.Name(),
			"error": err.Error(),
		})
		return nil
	}
	if snap != nil {
		a.logger.Debug(logModule, "Loaded recency state", map[string]interface{}{
			"store":        t.store.Name(),
			"global":       len(snap.GlobalRecent),
			"categories":   len(snap.PerCategoryRecent),
			"last_updated": snap.LastUpdated,
		})
	}
	return snap
}

// SaveAsync writes snap to both tiers in the background and returns at once.
func (a *Adapter) SaveAsync(snap *entity.RecencySnapshot) {
	if snap == nil {
		return
	}
	for _, t := range []*tier{a.fast, a.durable} {
		if t == nil {
			continue
		}
		a.wg.Add(1)
		go func(t *tier, snap *entity.RecencySnapshot) {
			defer a.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
			defer cancel()
			if err := a.write(ctx, t, snap); err != nil {
				a.logger.Warn(logModule, "Failed to save recency state", map[string]interface{}{
					"store": t.store.Name(),
					"error": err.Error(),
				})
			}
		}(t, clone(snap))
	}
}

func (a *Adapter) write(ctx context.Context, t *tier, snap *entity.RecencySnapshot) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if snap.LastUpdated.Before(t.lastWritten) {
		return nil
	}

	var err error
	for attempt := 0; attempt < 2; attempt++ {
		if err = t.store.Save(ctx, snap); err == nil {
			t.lastWritten = snap.LastUpdated
			return nil
		}
		if ctx.Err() != nil {
			break
		}
	}
	return err
}

// Flush waits for in-flight saves or for ctx to end.
func (a *Adapter) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
