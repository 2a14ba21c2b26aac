package selector

import (
	"time"

	"asset-selector-be/internal/entity"
	"asset-selector-be/pkg/recency"
)

// Selector picks one asset from a candidate list, steering away from
// recently used assets, and records the pick in the tracker.
type Selector struct {
	strategy Strategy
	now      func() time.Time
}

type Option func(*Selector)

func WithStrategy(s Strategy) Option {
	return func(sel *Selector) {
		if s != nil {
			sel.strategy = s
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(sel *Selector) {
		if now != nil {
			sel.now = now
		}
	}
}

func New(opts ...Option) *Selector {
	s := &Selector{
		strategy: TimeHashStrategy{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type group struct {
	category string
	assets   []entity.Asset
}

// Select chooses and records one asset. candidates must not be empty; the
// caller guarantees a non-empty pool, so an empty one panics.
func (s *Selector) Select(candidates []entity.Asset, title string, tracker *recency.Tracker) entity.Asset {
	if len(candidates) == 0 {
		panic("selector: empty candidate set")
	}

	now := s.now()
	factor := s.strategy.Factor(title, now)
	chosen := s.choose(candidates, factor, tracker)
	tracker.Record(chosen, now)
	return chosen
}

func (s *Selector) choose(candidates []entity.Asset, factor uint64, tracker *recency.Tracker) entity.Asset {
	var withRoom []group
	for _, g := range partition(candidates) {
		if tracker.Size(recency.Category(g.category)) < len(g.assets) {
			withRoom = append(withRoom, g)
		}
	}

	if len(withRoom) > 0 {
		n := uint64(len(withRoom))
		g := withRoom[factor%n]

		pool := unseen(g.assets, recency.Category(g.category), tracker)
		if len(pool) == 0 {
			// Only reachable when candidates repeat a url.
			pool = g.assets
		}
		return pool[(factor/n)%uint64(len(pool))]
	}

	if pool := unseen(candidates, recency.Global, tracker); len(pool) > 0 {
		return pool[factor%uint64(len(pool))]
	}
	return leastRecentlyUsed(candidates, tracker)
}

// partition groups candidates by category, in order of first appearance.
func partition(candidates []entity.Asset) []group {
	idx := make(map[string]int)
	var groups []group
	for _, a := range candidates {
		i, ok := idx[a.Category]
		if !ok {
			i = len(groups)
			idx[a.Category] = i
			groups = append(groups, group{category: a.Category})
		}
		groups[i].assets = append(groups[i].assets, a)
	}
	return groups
}

func unseen(assets []entity.Asset, id recency.SetID, tracker *recency.Tracker) []entity.Asset {
	var out []entity.Asset
	for _, a := range assets {
		if !tracker.Contains(id, a.URL) {
			out = append(out, a)
		}
	}
	return out
}

// leastRecentlyUsed returns the asset with the oldest use time. Assets never
// used count as oldest; ties go to the first candidate.
func leastRecentlyUsed(candidates []entity.Asset, tracker *recency.Tracker) entity.Asset {
	best := candidates[0]
	bestAt, bestSeen := tracker.LastUsedAt(best.URL)
	for _, a := range candidates[1:] {
		if !bestSeen {
			break
		}
		at, seen := tracker.LastUsedAt(a.URL)
		if !seen || at.Before(bestAt) {
			best, bestAt, bestSeen = a, at, seen
		}
	}
	return best
}
