package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MediaAsset struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Url         string         `gorm:"type:text;uniqueIndex;not null"`
	Sentiment   string         `gorm:"type:varchar(20);not null;default:'neutral';index"`
	Category    string         `gorm:"type:varchar(100);not null;default:'general';index"`
	Description string         `gorm:"type:text"`
	Keywords    datatypes.JSON `gorm:"type:jsonb"`
	IsActive    bool           `gorm:"default:true;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (MediaAsset) TableName() string {
	return "media_assets"
}
