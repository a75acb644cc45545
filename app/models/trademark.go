package models

type Trademark struct {
	CatalogBase
	Name string `gorm:"size:255;not null" json:"name"`
}
