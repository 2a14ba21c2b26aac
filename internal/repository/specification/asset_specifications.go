package specification

import (
	"asset-selector-be/internal/entity"

	"gorm.io/gorm"
)

// ActiveOnly keeps assets that are enabled for selection.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type BySentiment struct {
	Sentiment entity.Sentiment
}

func (s BySentiment) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sentiment = ?", string(s.Sentiment))
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type ByURL struct {
	URL string
}

func (s ByURL) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("url = ?", s.URL)
}

// OrderByCreated keeps catalog order stable between loads.
type OrderByCreated struct{}

func (s OrderByCreated) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("url ASC")
}

// URLNotIn matches rows whose url is outside urls.
type URLNotIn struct {
	URLs []string
}

func (s URLNotIn) Apply(db *gorm.DB) *gorm.DB {
	if len(s.URLs) == 0 {
		return db.Where("1 = 1")
	}
	return db.Where("url NOT IN ?", s.URLs)
}
