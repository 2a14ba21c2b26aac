package mapper

import (
	"testing"
	"time"

	"asset-selector-be/internal/entity"
	"asset-selector-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestMediaAssetMapper_ToModel(t *testing.T) {
	m := NewMediaAssetMapper()
	id := uuid.New()

	got := m.ToModel(&entity.MediaAsset{
		Id:        id,
		URL:       "a.jpg",
		Sentiment: entity.SentimentBearish,
		Category:  "bears_in_control",
		Keywords:  []string{"bear", "red"},
		IsActive:  true,
	})

	require.NotNil(t, got)
	assert.Equal(t, id, got.Id)
	assert.Equal(t, "a.jpg", got.Url)
	assert.Equal(t, "bearish", got.Sentiment)
	assert.JSONEq(t, `["bear","red"]`, string(got.Keywords))
	assert.True(t, got.UpdatedAt.IsZero())

	empty := m.ToModel(&entity.MediaAsset{URL: "b.jpg"})
	assert.Nil(t, empty.Keywords)
	assert.Nil(t, m.ToModel(nil))
}

func TestMediaAssetMapper_ToEntity(t *testing.T) {
	m := NewMediaAssetMapper()
	updated := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		row          model.MediaAsset
		wantKeywords []string
		wantSent     entity.Sentiment
	}{
		{"valid keywords", model.MediaAsset{Url: "a.jpg", Sentiment: "volatile", Keywords: datatypes.JSON(`["wild"]`), UpdatedAt: updated}, []string{"wild"}, entity.SentimentVolatile},
		{"malformed keywords", model.MediaAsset{Url: "a.jpg", Sentiment: "Bullish", Keywords: datatypes.JSON(`{bad`)}, nil, entity.SentimentBullish},
		{"unknown sentiment", model.MediaAsset{Url: "a.jpg", Sentiment: "euphoric"}, nil, entity.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.ToEntity(&tt.row)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantKeywords, got.Keywords)
			assert.Equal(t, tt.wantSent, got.Sentiment)
			require.NotNil(t, got.UpdatedAt)
			assert.Equal(t, tt.row.UpdatedAt, *got.UpdatedAt)
		})
	}

	assert.Nil(t, m.ToEntity(nil))
}
