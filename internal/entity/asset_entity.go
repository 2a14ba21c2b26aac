package entity

import (
	"strings"
	"time"
)

type Sentiment string

const (
	SentimentBullish  Sentiment = "bullish"
	SentimentBearish  Sentiment = "bearish"
	SentimentNeutral  Sentiment = "neutral"
	SentimentVolatile Sentiment = "volatile"
)

// AllSentiments returns the known sentiments in canonical order.
func AllSentiments() []Sentiment {
	return []Sentiment{SentimentBullish, SentimentBearish, SentimentNeutral, SentimentVolatile}
}

// ParseSentiment reports whether raw names a known sentiment.
func ParseSentiment(raw string) (Sentiment, bool) {
	s := Sentiment(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case SentimentBullish, SentimentBearish, SentimentNeutral, SentimentVolatile:
		return s, true
	}
	return SentimentNeutral, false
}

// NormalizeSentiment maps unknown input to neutral.
func NormalizeSentiment(raw string) Sentiment {
	s, _ := ParseSentiment(raw)
	return s
}

type Asset struct {
	URL         string    `json:"url" yaml:"url"`
	Sentiment   Sentiment `json:"sentiment" yaml:"sentiment"`
	Category    string    `json:"category" yaml:"category"`
	Description string    `json:"description" yaml:"description"`
	Keywords    []string  `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

type AssetMetadata struct {
	Sentiment   Sentiment `json:"sentiment"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
}

// SelectedAsset is what the engine hands to publishing code.
type SelectedAsset struct {
	URL       string        `json:"url"`
	LocalPath string        `json:"localPath"`
	Metadata  AssetMetadata `json:"metadata"`
}

// RecencySnapshot is the persisted shape of the recency state.
type RecencySnapshot struct {
	LastUpdated       time.Time           `json:"lastUpdated"`
	GlobalRecent      []string            `json:"globalRecent"`
	PerCategoryRecent map[string][]string `json:"perCategoryRecent"`
}
