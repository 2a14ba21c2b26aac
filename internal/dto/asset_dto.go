package dto

import (
	"time"

	"asset-selector-be/internal/entity"
)

type SelectAssetRequest struct {
	Title     string `json:"title" validate:"required,max=500"`
	Sentiment string `json:"sentiment" validate:"omitempty,oneof=bullish bearish neutral volatile"`
}

type SelectAssetResponse struct {
	Url       string               `json:"url"`
	LocalPath string               `json:"localPath"`
	Metadata  entity.AssetMetadata `json:"metadata"`
	Sentiment entity.Sentiment     `json:"resolvedSentiment"`
	Stage     string               `json:"matchStage"`
}

type RecencyResponse struct {
	LastUpdated       time.Time           `json:"lastUpdated"`
	GlobalRecent      []string            `json:"globalRecent"`
	PerCategoryRecent map[string][]string `json:"perCategoryRecent"`
}

type CatalogStatsResponse struct {
	Total       int                      `json:"total"`
	BySentiment map[entity.Sentiment]int `json:"bySentiment"`
	ByCategory  map[string]int           `json:"byCategory"`
}
