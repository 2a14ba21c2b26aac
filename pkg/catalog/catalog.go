package catalog

import (
	"errors"
	"path"
	"sort"
	"strings"

	"asset-selector-be/internal/entity"
	"asset-selector-be/pkg/utils"
)

// DefaultCategory is assigned to assets that arrive without a category.
const DefaultCategory = "general"

var ErrEmptyCatalog = errors.New("catalog: no usable assets and no defaults supplied")

// Catalog is a read-only index over a set of assets. It is never mutated
// after Build; a rebuild produces a new value.
type Catalog struct {
	all         []entity.Asset
	bySentiment map[entity.Sentiment][]entity.Asset
	byCategory  map[string][]entity.Asset
	byURL       map[string]entity.Asset
}

// Build indexes assets. When no usable asset remains, defaults are indexed
// instead; ErrEmptyCatalog is returned only if defaults is empty too.
func Build(assets []entity.Asset, defaults []entity.Asset) (*Catalog, error) {
	c := index(assets)
	if len(c.all) > 0 {
		return c, nil
	}
	c = index(defaults)
	if len(c.all) == 0 {
		return nil, ErrEmptyCatalog
	}
	return c, nil
}

// MustBuildDefault returns a catalog holding only the built-in assets.
func MustBuildDefault() *Catalog {
	c, err := Build(nil, DefaultAssets())
	if err != nil {
		panic(err)
	}
	return c
}

func index(assets []entity.Asset) *Catalog {
	c := &Catalog{
		bySentiment: make(map[entity.Sentiment][]entity.Asset),
		byCategory:  make(map[string][]entity.Asset),
		byURL:       make(map[string]entity.Asset),
	}
	for _, raw := range assets {
		a, ok := normalize(raw)
		if !ok {
			continue
		}
		if _, dup := c.byURL[a.URL]; dup {
			continue
		}
		c.byURL[a.URL] = a
		c.all = append(c.all, a)
		c.bySentiment[a.Sentiment] = append(c.bySentiment[a.Sentiment], a)
		c.byCategory[a.Category] = append(c.byCategory[a.Category], a)
	}
	return c
}

func normalize(a entity.Asset) (entity.Asset, bool) {
	a.URL = strings.TrimSpace(a.URL)
	if a.URL == "" {
		return a, false
	}
	a.Sentiment = entity.NormalizeSentiment(string(a.Sentiment))
	a.Category = strings.ToLower(strings.TrimSpace(a.Category))
	if a.Category == "" {
		a.Category = DefaultCategory
	}
	a.Description = strings.TrimSpace(a.Description)

	if len(a.Keywords) == 0 {
		a.Keywords = DeriveKeywords(a.URL, a.Description)
	} else {
		kw := make([]string, 0, len(a.Keywords))
		for _, k := range a.Keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" {
				kw = append(kw, k)
			}
		}
		a.Keywords = kw
	}
	return a, true
}

// DeriveKeywords builds keywords from the file name of url and the description.
func DeriveKeywords(url, description string) []string {
	name := path.Base(url)
	name = strings.TrimSuffix(name, path.Ext(name))
	return utils.UniqueTokens(name, description)
}

// All returns every asset in insertion order.
func (c *Catalog) All() []entity.Asset {
	return c.all
}

// BySentiment returns the sentiment pool in catalog order.
func (c *Catalog) BySentiment(s entity.Sentiment) []entity.Asset {
	return c.bySentiment[s]
}

func (c *Catalog) ByCategory(category string) []entity.Asset {
	return c.byCategory[category]
}

func (c *Catalog) Lookup(url string) (entity.Asset, bool) {
	a, ok := c.byURL[url]
	return a, ok
}

func (c *Catalog) Len() int {
	return len(c.all)
}

// Categories returns the sorted category names.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.byCategory))
	for k := range c.byCategory {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

type Stats struct {
	Total       int                      `json:"total"`
	BySentiment map[entity.Sentiment]int `json:"bySentiment"`
	ByCategory  map[string]int           `json:"byCategory"`
}

func (c *Catalog) Stats() Stats {
	st := Stats{
		Total:       len(c.all),
		BySentiment: make(map[entity.Sentiment]int, len(c.bySentiment)),
		ByCategory:  make(map[string]int, len(c.byCategory)),
	}
	for s, pool := range c.bySentiment {
		st.BySentiment[s] = len(pool)
	}
	for cat, pool := range c.byCategory {
		st.ByCategory[cat] = len(pool)
	}
	return st
}
