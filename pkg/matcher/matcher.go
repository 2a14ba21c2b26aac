package matcher

import (
	"sort"
	"strings"

	"asset-selector-be/internal/entity"
	"asset-selector-be/pkg/catalog"
	"asset-selector-be/pkg/utils"
)

type Stage string

const (
	StageKeyword  Stage = "keyword"
	StageCategory Stage = "category"
	StageFallback Stage = "fallback"
)

const (
	scoreAlias       = 5
	scoreCategory    = 4
	scoreDescription = 3
	scoreKeyword     = 2
)

// Matcher narrows a sentiment pool to the assets that fit a title. It holds
// no mutable state.
type Matcher struct {
	tables *Tables
}

func New(tables *Tables) *Matcher {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Matcher{tables: tables}
}

func (m *Matcher) Tables() *Tables {
	return m.tables
}

// Match returns the candidates for title within the sentiment pool.
func (m *Matcher) Match(title string, sentiment entity.Sentiment, c *catalog.Catalog) []entity.Asset {
	assets, _ := m.MatchWithStage(title, sentiment, c)
	return assets
}

// MatchWithStage also reports which stage of the waterfall produced the result.
func (m *Matcher) MatchWithStage(title string, sentiment entity.Sentiment, c *catalog.Catalog) ([]entity.Asset, Stage) {
	pool := c.BySentiment(sentiment)

	if hits := m.keywordStage(title, pool); len(hits) > 0 {
		return hits, StageKeyword
	}
	if hits := m.categoryStage(title, pool); len(hits) > 0 {
		return hits, StageCategory
	}
	return pool, StageFallback
}

type scored struct {
	asset entity.Asset
	score int
}

func (m *Matcher) keywordStage(title string, pool []entity.Asset) []entity.Asset {
	tokens := utils.Tokenize(title)
	if len(tokens) == 0 {
		return nil
	}

	var hits []scored
	for _, a := range pool {
		if s := m.Score(tokens, a); s > 0 {
			hits = append(hits, scored{asset: a, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	out := make([]entity.Asset, len(hits))
	for i, h := range hits {
		out[i] = h.asset
	}
	return out
}

// Score sums the keyword-stage points of tokens against a.
func (m *Matcher) Score(tokens []string, a entity.Asset) int {
	url := strings.ToLower(a.URL)
	category := strings.ToLower(a.Category)
	description := strings.ToLower(a.Description)

	score := 0
	for _, tok := range tokens {
		if phrase, ok := m.tables.Aliases[tok]; ok && strings.Contains(url, phrase) {
			score += scoreAlias
		}
		if strings.Contains(category, tok) {
			score += scoreCategory
		}
		if strings.Contains(description, tok) {
			score += scoreDescription
		}
		for _, kw := range a.Keywords {
			if kw == tok {
				score += scoreKeyword
				break
			}
		}
	}
	return score
}

func (m *Matcher) categoryStage(title string, pool []entity.Asset) []entity.Asset {
	wanted := m.MappedCategories(title)
	if len(wanted) == 0 {
		return nil
	}

	var out []entity.Asset
	for _, a := range pool {
		if wanted[a.Category] {
			out = append(out, a)
		}
	}
	return out
}

// MappedCategories returns the canonical categories the title words point to,
// from both the direct table and the semantic buckets.
func (m *Matcher) MappedCategories(title string) map[string]bool {
	wanted := make(map[string]bool)
	for _, w := range utils.Words(title) {
		if c, ok := m.tables.Categories[w]; ok {
			wanted[c] = true
		}
		for _, c := range m.tables.bucketIndex[w] {
			wanted[c] = true
		}
	}
	return wanted
}
