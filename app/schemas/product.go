package schemas

import (
	"strings"

	"github.com/Rakhulsr/clothing-catalog-admin/app/helpers"
	"github.com/Rakhulsr/clothing-catalog-admin/app/models"
	"github.com/Rakhulsr/clothing-catalog-admin/app/utils/calc"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type GenderRef struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}

type CategoryRef struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name"`
	GenderID string `json:"genderId" validate:"required"`
}

type DetailCategoryRef struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name"`
	CategoryID string `json:"categoryId" validate:"required"`
}

type ProductForm struct {
	Name           string            `json:"name" validate:"required,min=6,max=32"`
	Description    string            `json:"description" validate:"required,min=6,max=150"`
	Origin         string            `json:"origin" validate:"required,min=6,max=32"`
	Price          decimal.Decimal   `json:"price"`
	Cost           decimal.Decimal   `json:"cost"`
	Discount       decimal.Decimal   `json:"discount"`
	Quantity       int               `json:"quantity" validate:"required,gte=1"`
	Thumbnail      string            `json:"thumbnail" validate:"required,url"`
	Images         []string          `json:"images" validate:"required,min=1,dive,required,url"`
	Gender         GenderRef         `json:"gender"`
	Category       CategoryRef       `json:"category"`
	DetailCategory DetailCategoryRef `json:"detailCategory"`
	TrademarkID    string            `json:"trademarkId"`
	PromotionIDs   []string          `json:"promotionIds" validate:"omitempty,dive,required"`
}

var hundred = decimal.NewFromInt(100)

func refineProduct(f *ProductForm) helpers.FieldErrors {
	errs := helpers.FieldErrors{}
	if !f.Price.IsPositive() {
		errs["price"] = "price must be a positive number."
	}
	if !f.Cost.IsPositive() {
		errs["cost"] = "cost must be a positive number."
	}
	if f.Discount.IsNegative() || f.Discount.GreaterThan(hundred) {
		errs["discount"] = "discount must be between 0 and 100."
	}
	if len(errs) == 0 {
		if f.Price.LessThan(f.Cost) {
			errs["price"] = "price must not be lower than cost."
		} else if calc.DiscountedPrice(f.Price, f.Discount).LessThan(f.Cost) {
			errs["discount"] = "discounted price must not be lower than cost (no loss allowed)."
		}
	}
	if f.Category.GenderID != f.Gender.ID {
		errs["category"] = "category does not belong to the selected gender."
	}
	if f.DetailCategory.CategoryID != f.Category.ID {
		errs["detailCategory"] = "detail category does not belong to the selected category."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func NewProductSchema(v *validator.Validate) *FormSchema[ProductForm, models.Product] {
	return &FormSchema[ProductForm, models.Product]{
		Validate: v,
		Normalize: func(f *ProductForm) {
			f.Name = helpers.CollapseSpaces(f.Name)
			f.Description = strings.TrimSpace(f.Description)
			f.Origin = helpers.CollapseSpaces(f.Origin)
			f.Thumbnail = strings.TrimSpace(f.Thumbnail)
			f.TrademarkID = strings.TrimSpace(f.TrademarkID)
			images := make([]string, len(f.Images))
			for i, url := range f.Images {
				images[i] = strings.TrimSpace(url)
			}
			f.Images = images
			f.PromotionIDs = dedupe(f.PromotionIDs)
		},
		Refine: refineProduct,
		Build: func(f *ProductForm) *models.Product {
			p := &models.Product{
				Name:             f.Name,
				Description:      f.Description,
				Origin:           f.Origin,
				Price:            f.Price,
				Cost:             f.Cost,
				Discount:         f.Discount,
				Quantity:         f.Quantity,
				Thumbnail:        f.Thumbnail,
				GenderID:         f.Gender.ID,
				CategoryID:       f.Category.ID,
				DetailCategoryID: f.DetailCategory.ID,
			}
			if f.TrademarkID != "" {
				id := f.TrademarkID
				p.TrademarkID = &id
			}
			for _, id := range f.PromotionIDs {
				p.Promotions = append(p.Promotions, models.Promotion{CatalogBase: models.CatalogBase{ID: id}})
			}
			for i, url := range f.Images {
				p.Images = append(p.Images, models.ProductImage{URL: url, Position: i})
			}
			return p
		},
		Fields: []string{
			"Name", "Description", "Origin", "Price", "Cost", "Discount", "Quantity",
			"Thumbnail", "GenderID", "CategoryID", "DetailCategoryID", "TrademarkID",
		},
	}
}

// dedupe trims ids and drops blanks and repeats, keeping the first occurrence.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
