package matcher

import (
	"testing"

	"asset-selector-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTitle(t *testing.T) {
	m := New(DefaultTables())

	tests := []struct {
		title string
		want  entity.Sentiment
	}{
		{"Stocks rally to record high", entity.SentimentBullish},
		{"Markets crash as recession fears grow", entity.SentimentBearish},
		{"VIX spikes amid uncertainty", entity.SentimentVolatile},
		{"Markets flat ahead of Fed", entity.SentimentNeutral},
		{"Bulls and bears fight it out", entity.SentimentNeutral},
		{"Company announces quarterly earnings", entity.SentimentNeutral},
		{"", entity.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, m.ClassifyTitle(tt.title))
		})
	}
}

func TestResolveSentiment(t *testing.T) {
	m := New(DefaultTables())

	assert.Equal(t, entity.SentimentBearish, m.ResolveSentiment("Stocks rally", "BEARISH"))
	assert.Equal(t, entity.SentimentBullish, m.ResolveSentiment("Stocks rally", "sideways"))
	assert.Equal(t, entity.SentimentBullish, m.ResolveSentiment("Stocks rally", ""))
	assert.Equal(t, entity.SentimentNeutral, m.ResolveSentiment("Earnings today", ""))
}
