package migrations

import (
	"github.com/Rakhulsr/clothing-catalog-admin/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Gender{},
		&models.Category{},
		&models.DetailCategory{},
		&models.Promotion{},
		&models.Trademark{},
		&models.Product{},
		&models.ProductImage{},
	)
}
