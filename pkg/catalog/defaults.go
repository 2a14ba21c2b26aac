package catalog

import "asset-selector-be/internal/entity"

// DefaultAssets is the built-in fallback set, one asset per sentiment.
func DefaultAssets() []entity.Asset {
	return []entity.Asset{
		{
			URL:         "defaults/bullish/to_the_moon.jpg",
			Sentiment:   entity.SentimentBullish,
			Category:    "to_the_moon",
			Description: "Rocket lifting off toward the moon",
			Keywords:    []string{"rocket", "moon", "rally"},
		},
		{
			URL:         "defaults/bearish/bears_in_control.jpg",
			Sentiment:   entity.SentimentBearish,
			Category:    "bears_in_control",
			Description: "Grizzly bear standing over a falling chart",
			Keywords:    []string{"bear", "falling", "chart"},
		},
		{
			URL:         "defaults/neutral/just_wait.jpg",
			Sentiment:   entity.SentimentNeutral,
			Category:    "just_wait",
			Description: "Trader waiting calmly at a quiet desk",
			Keywords:    []string{"wait", "calm", "desk"},
		},
		{
			URL:         "defaults/volatile/roller_coaster.jpg",
			Sentiment:   entity.SentimentVolatile,
			Category:    "roller_coaster",
			Description: "Roller coaster plunging after a steep climb",
			Keywords:    []string{"roller", "coaster", "swing"},
		},
	}
}
