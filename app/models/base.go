package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogBase is embedded by every catalog entity.
//
// LiveKey holds a digest of the entity's uniqueness tuple while the row is live
// and is cleared on soft delete, so the unique index only covers live rows.
type CatalogBase struct {
	ID        string     `gorm:"size:36;not null;primaryKey" json:"id"`
	LiveKey   *string    `gorm:"size:64;uniqueIndex" json:"-"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `gorm:"index" json:"deletedAt,omitempty"`
}

func (b *CatalogBase) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

func (b *CatalogBase) GetID() string { return b.ID }

func (b *CatalogBase) SetID(id string) { b.ID = id }

func (b *CatalogBase) SetLiveKey(key *string) { b.LiveKey = key }

// Record is implemented by every model embedding CatalogBase.
type Record interface {
	GetID() string
	SetID(id string)
	SetLiveKey(key *string)
}
