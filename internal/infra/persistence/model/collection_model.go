// Package model holds the GORM table definitions.
package model

import (
	"time"

	"github.com/google/uuid"
)

// CollectionModel is the GORM-specific struct for the 'collections' table.
// The transient abandonment marker has no column.
type CollectionModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	GeneratorID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CollectorID *uuid.UUID `gorm:"type:uuid;index"`
	Status      string     `gorm:"type:varchar(20);not null;index"`

	Material     string   `gorm:"type:varchar(40);not null"`
	Title        string   `gorm:"type:varchar(255)"`
	Description  string   `gorm:"type:text"`
	Notes        string   `gorm:"type:text"`
	Priority     string   `gorm:"type:varchar(10)"`
	WeightKg     float64  `gorm:"not null"`
	Latitude     float64  `gorm:"not null"`
	Longitude    float64  `gorm:"not null"`
	Address      string   `gorm:"type:varchar(255)"`
	Neighborhood string   `gorm:"type:varchar(120)"`
	City         string   `gorm:"type:varchar(120)"`
	PhotoURLs    []string `gorm:"column:photo_urls;serializer:json;type:text"`

	ConfirmationCode string `gorm:"type:varchar(6)"`

	RequestedAt time.Time  `gorm:"not null;index"`
	AcceptedAt  *time.Time
	EnRouteAt   *time.Time
	ArrivedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
	ExpiresAt   *time.Time `gorm:"index"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime:false"`

	Version int64 `gorm:"not null;default:1"`
}

// TableName explicitly sets the table name for GORM.
func (CollectionModel) TableName() string {
	return "collections"
}
