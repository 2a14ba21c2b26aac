package entity

import (
	"time"

	"github.com/google/uuid"
)

// MediaAsset is a catalog row as stored in the database.
type MediaAsset struct {
	Id          uuid.UUID
	URL         string
	Sentiment   Sentiment
	Category    string
	Description string
	Keywords    []string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (m *MediaAsset) ToAsset() Asset {
	return Asset{
		URL:         m.URL,
		Sentiment:   m.Sentiment,
		Category:    m.Category,
		Description: m.Description,
		Keywords:    m.Keywords,
	}
}
