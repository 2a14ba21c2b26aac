package selector

import (
	"fmt"
	"testing"
	"time"

	"asset-selector-be/internal/entity"
	"asset-selector-be/pkg/recency"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedStrategy uint64

func (f fixedStrategy) Factor(string, time.Time) uint64 { return uint64(f) }

// steppingClock advances one second per call.
func steppingClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func asset(url, category string) entity.Asset {
	return entity.Asset{URL: url, Sentiment: entity.SentimentBullish, Category: category}
}

func threeByTwo() []entity.Asset {
	return []entity.Asset{
		asset("a1", "a"), asset("a2", "a"),
		asset("b1", "b"), asset("b2", "b"),
		asset("c1", "c"), asset("c2", "c"),
	}
}

func TestSelect_FactorIndexesCategoryThenAsset(t *testing.T) {
	tests := []struct {
		factor uint64
		want   string
	}{
		{0, "a1"},
		{1, "b1"},
		{2, "c1"},
		{3, "a2"},
		{4, "b2"},
		{6, "a1"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("factor %d", tt.factor), func(t *testing.T) {
			sel := New(WithStrategy(fixedStrategy(tt.factor)))
			got := sel.Select(threeByTwo(), "title", recency.NewTracker(50, 10))
			assert.Equal(t, tt.want, got.URL)
		})
	}
}

func TestSelect_RecordsPick(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	sel := New(WithClock(func() time.Time { return at }))
	tr := recency.NewTracker(50, 10)

	got := sel.Select(threeByTwo(), "Bulls On Parade", tr)

	assert.True(t, tr.Contains(recency.Global, got.URL))
	assert.True(t, tr.Contains(recency.Category(got.Category), got.URL))
	used, ok := tr.LastUsedAt(got.URL)
	require.True(t, ok)
	assert.Equal(t, at, used)
}

func TestSelect_NoImmediateRepeat(t *testing.T) {
	sel := New(WithClock(steppingClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))))
	tr := recency.NewTracker(50, 10)

	titles := []string{"Stocks rally", "Bulls return", "Record close", "Tech leads", "Dow jumps", "Gains extend", "Futures up"}
	prev := ""
	for _, title := range titles {
		got := sel.Select(threeByTwo(), title, tr)
		assert.NotEqual(t, prev, got.URL, title)
		prev = got.URL
	}
}

func TestSelect_ScenarioExhaustsCategoriesBeforeRepeating(t *testing.T) {
	candidates := []entity.Asset{
		asset("moon-1", "to_the_moon"), asset("moon-2", "to_the_moon"), asset("moon-3", "to_the_moon"),
		asset("parade-1", "bulls_on_parade"), asset("parade-2", "bulls_on_parade"), asset("parade-3", "bulls_on_parade"),
	}

	for _, strategy := range []Strategy{TimeHashStrategy{}, NewRandomStrategy(7), fixedStrategy(0)} {
		t.Run(fmt.Sprintf("%T", strategy), func(t *testing.T) {
			sel := New(
				WithStrategy(strategy),
				WithClock(steppingClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))),
			)
			tr := recency.NewTracker(50, 10)

			seen := make(map[string]bool)
			for i := 0; i < 6; i++ {
				got := sel.Select(candidates, "Bulls On Parade", tr)
				assert.False(t, seen[got.URL], "repeated %s at call %d", got.URL, i+1)
				seen[got.URL] = true
			}
			assert.Equal(t, 3, tr.Size(recency.Category("to_the_moon")))
			assert.Equal(t, 3, tr.Size(recency.Category("bulls_on_parade")))
		})
	}
}

func TestSelect_GlobalUnseenWhenCategoriesFull(t *testing.T) {
	tr := recency.NewTracker(50, 10)
	tr.Insert(recency.Category("x"), "x1")
	tr.Insert(recency.Category("x"), "x2")
	tr.Insert(recency.Global, "x1")

	got := New().Select([]entity.Asset{asset("x1", "x"), asset("x2", "x")}, "title", tr)
	assert.Equal(t, "x2", got.URL)
}

func TestSelect_ExhaustionReturnsLeastRecentlyUsed(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	candidates := []entity.Asset{asset("x1", "x"), asset("x2", "x"), asset("x3", "x")}

	tr := recency.NewTracker(50, 10)
	tr.Record(candidates[0], base.Add(2*time.Minute))
	tr.Record(candidates[1], base)
	tr.Record(candidates[2], base.Add(time.Minute))

	got := New(WithClock(func() time.Time { return base.Add(time.Hour) })).Select(candidates, "title", tr)
	assert.Equal(t, "x2", got.URL)
}

func TestSelect_ExhaustionPrefersNeverUsed(t *testing.T) {
	candidates := []entity.Asset{asset("x1", "x"), asset("x2", "x")}
	tr := recency.NewTracker(50, 10)
	tr.Record(candidates[0], time.Now())
	// Restored state: present in the sets but with no recorded use time.
	tr.Insert(recency.Global, "x2")
	tr.Insert(recency.Category("x"), "x2")

	got := New().Select(candidates, "title", tr)
	assert.Equal(t, "x2", got.URL)
}

func TestSelect_ExhaustionTieGoesToFirst(t *testing.T) {
	candidates := []entity.Asset{asset("x1", "x"), asset("x2", "x")}
	tr := recency.NewTracker(50, 10)
	tr.Restore(recency.State{
		GlobalRecent:      []string{"x2", "x1"},
		PerCategoryRecent: map[string][]string{"x": {"x2", "x1"}},
	})

	got := New().Select(candidates, "title", tr)
	assert.Equal(t, "x1", got.URL)
}

func TestSelect_StaysBounded(t *testing.T) {
	var candidates []entity.Asset
	for i := 0; i < 80; i++ {
		candidates = append(candidates, asset(fmt.Sprintf("u%d", i), fmt.Sprintf("cat%d", i%4)))
	}

	sel := New(WithClock(steppingClock(time.Now())))
	tr := recency.NewTracker(recency.DefaultGlobalCapacity, recency.DefaultCategoryCapacity)
	for i := 0; i < 300; i++ {
		got := sel.Select(candidates, fmt.Sprintf("headline %d", i), tr)
		require.NotEmpty(t, got.URL)

		require.LessOrEqual(t, tr.Size(recency.Global), recency.DefaultGlobalCapacity)
		for c := 0; c < 4; c++ {
			require.LessOrEqual(t, tr.Size(recency.Category(fmt.Sprintf("cat%d", c))), recency.DefaultCategoryCapacity)
		}
	}
}

func TestSelect_SingleCandidate(t *testing.T) {
	sel := New(WithClock(steppingClock(time.Now())))
	tr := recency.NewTracker(50, 10)
	only := []entity.Asset{asset("solo", "x")}

	for i := 0; i < 3; i++ {
		assert.Equal(t, "solo", sel.Select(only, "title", tr).URL)
	}
}

func TestSelect_EmptyCandidatesPanics(t *testing.T) {
	assert.Panics(t, func() {
		New().Select(nil, "title", recency.NewTracker(50, 10))
	})
}
