package models

import "time"

type Promotion struct {
	CatalogBase
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"size:255;not null" json:"description"`
	StartDay    *time.Time `json:"startDay,omitempty"`
	EndDay      *time.Time `json:"endDay,omitempty"`
}
