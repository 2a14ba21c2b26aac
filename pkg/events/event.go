package events

import (
	"time"

	"asset-selector-be/internal/entity"

	"github.com/google/uuid"
)

const TypeAssetSelected = "ASSET_SELECTED"

// Event is anything published on the selection bus.
type Event interface {
	EventID() string
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	ID         string
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventID() string {
	return e.ID
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewAssetSelected describes one completed selection.
func NewAssetSelected(title string, sentiment entity.Sentiment, stage string, asset entity.SelectedAsset, at time.Time) BaseEvent {
	return BaseEvent{
		ID:   uuid.NewString(),
		Type: TypeAssetSelected,
		Data: map[string]interface{}{
			"title":       title,
			"sentiment":   string(sentiment),
			"match_stage": stage,
			"url":         asset.URL,
			"local_path":  asset.LocalPath,
			"category":    asset.Metadata.Category,
			"occurred_at": at.UTC().Format(time.RFC3339),
		},
		OccurredAt: at,
	}
}
