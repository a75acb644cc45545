package models

type Gender struct {
	CatalogBase
	Name       string     `gorm:"size:255;not null" json:"name"`
	Categories []Category `gorm:"foreignKey:GenderID" json:"categories,omitempty"`
}
