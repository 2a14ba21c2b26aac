package mapper

import (
	"encoding/json"

	"asset-selector-be/internal/entity"
	"asset-selector-be/internal/model"

	"gorm.io/datatypes"
)

type MediaAssetMapper struct{}

func NewMediaAssetMapper() *MediaAssetMapper {
	return &MediaAssetMapper{}
}

func (m *MediaAssetMapper) ToEntity(a *model.MediaAsset) *entity.MediaAsset {
	if a == nil {
		return nil
	}

	var keywords []string
	if len(a.Keywords) > 0 {
		// Malformed keyword JSON degrades to derived keywords at index time.
		_ = json.Unmarshal(a.Keywords, &keywords)
	}

	updatedAt := a.UpdatedAt
	return &entity.MediaAsset{
		Id:          a.Id,
		URL:         a.Url,
		Sentiment:   entity.NormalizeSentiment(a.Sentiment),
		Category:    a.Category,
		Description: a.Description,
		Keywords:    keywords,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   &updatedAt,
	}
}

func (m *MediaAssetMapper) ToModel(a *entity.MediaAsset) *model.MediaAsset {
	if a == nil {
		return nil
	}

	var keywords datatypes.JSON
	if len(a.Keywords) > 0 {
		raw, _ := json.Marshal(a.Keywords)
		keywords = datatypes.JSON(raw)
	}

	res := &model.MediaAsset{
		Id:          a.Id,
		Url:         a.URL,
		Sentiment:   string(a.Sentiment),
		Category:    a.Category,
		Description: a.Description,
		Keywords:    keywords,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
	}
	if a.UpdatedAt != nil {
		res.UpdatedAt = *a.UpdatedAt
	}
	return res
}
