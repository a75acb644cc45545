package models

type Category struct {
	CatalogBase
	Name             string           `gorm:"size:255;not null" json:"name"`
	GenderID         string           `gorm:"size:36;not null;index" json:"genderId"`
	Gender           *Gender          `gorm:"foreignKey:GenderID" json:"gender,omitempty"`
	DetailCategories []DetailCategory `gorm:"foreignKey:CategoryID" json:"detailCategories,omitempty"`
}

type DetailCategory struct {
	CatalogBase
	Name       string    `gorm:"size:255;not null" json:"name"`
	CategoryID string    `gorm:"size:36;not null;index" json:"categoryId"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
