package model

import (
	"time"

	"gorm.io/datatypes"
)

// RecencySnapshot holds one serialized recency state per key.
type RecencySnapshot struct {
	Key       string         `gorm:"type:varchar(150);primaryKey"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (RecencySnapshot) TableName() string {
	return "recency_snapshots"
}
