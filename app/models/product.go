package models

import (
	"time"

	"github.com/Rakhulsr/clothing-catalog-admin/app/helpers"
	"github.com/Rakhulsr/clothing-catalog-admin/app/utils/calc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	CatalogBase
	Name             string          `gorm:"size:255;not null" json:"name"`
	Slug             string          `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description      string          `gorm:"type:text" json:"description"`
	Price            decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Cost             decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"cost"`
	Discount         decimal.Decimal `gorm:"type:decimal(5,2);default:0.00" json:"discount"`
	Quantity         int             `gorm:"not null" json:"quantity"`
	Origin           string          `gorm:"size:100" json:"origin"`
	Thumbnail        string          `gorm:"type:text" json:"thumbnail"`
	GenderID         string          `gorm:"size:36;not null;index" json:"genderId"`
	Gender           *Gender         `gorm:"foreignKey:GenderID" json:"gender,omitempty"`
	CategoryID       string          `gorm:"size:36;not null;index" json:"categoryId"`
	Category         *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	DetailCategoryID string          `gorm:"size:36;not null;index" json:"detailCategoryId"`
	DetailCategory   *DetailCategory `gorm:"foreignKey:DetailCategoryID" json:"detailCategory,omitempty"`
	TrademarkID      *string         `gorm:"size:36;index" json:"trademarkId,omitempty"`
	Trademark        *Trademark      `gorm:"foreignKey:TrademarkID" json:"trademark,omitempty"`
	Promotions       []Promotion     `gorm:"many2many:product_promotions;" json:"promotions,omitempty"`
	Images           []ProductImage  `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	PriceLabel       string          `gorm:"-" json:"priceLabel,omitempty"`
}

// BeforeCreate assigns the id first so the slug can carry its prefix.
func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if err = p.CatalogBase.BeforeCreate(tx); err != nil {
		return
	}
	if p.Slug == "" {
		suffix := p.ID
		if len(suffix) > 8 {
			suffix = suffix[:8]
		}
		p.Slug = helpers.GenerateSlug(p.Name) + "-" + suffix
	}
	return
}

// DiscountedPrice is the price after the percentage discount.
func (p *Product) DiscountedPrice() decimal.Decimal {
	return calc.DiscountedPrice(p.Price, p.Discount)
}

type ProductImage struct {
	ID        string    `gorm:"size:36;not null;primaryKey" json:"id"`
	ProductID string    `gorm:"size:36;not null;index" json:"productId"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (pi *ProductImage) BeforeCreate(tx *gorm.DB) (err error) {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return
}
