package services

import (
	"context"
	"sort"

	"github.com/Rakhulsr/clothing-catalog-admin/app/cache"
	"github.com/Rakhulsr/clothing-catalog-admin/app/models"
	"github.com/Rakhulsr/clothing-catalog-admin/app/schemas"
	"github.com/Rakhulsr/clothing-catalog-admin/app/utils/format"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var productIncludes = []string{"Gender", "Category", "DetailCategory", "Trademark", "Promotions", "Images"}

func ProductOptions(v *validator.Validate) CrudOptions[models.Product] {
	return CrudOptions[models.Product]{
		Kind:            models.KindProduct,
		Schema:          schemas.NewProductSchema(v),
		RevalidatePath:  CatalogPath,
		UniqueFields:    []string{"Name"},
		SoftDeleteField: "DeletedAt",
		Include:         productIncludes,
		References: []Reference[models.Product]{
			{
				Field: "gender",
				Model: &models.Gender{},
				IDs:   func(p *models.Product) []string { return []string{p.GenderID} },
			},
			{
				Field: "category",
				Model: &models.Category{},
				IDs:   func(p *models.Product) []string { return []string{p.CategoryID} },
				Match: func(p *models.Product) map[string]any { return map[string]any{"gender_id": p.GenderID} },
			},
			{
				Field: "detailCategory",
				Model: &models.DetailCategory{},
				IDs:   func(p *models.Product) []string { return []string{p.DetailCategoryID} },
				Match: func(p *models.Product) map[string]any { return map[string]any{"category_id": p.CategoryID} },
			},
			{
				Field: "trademarkId",
				Model: &models.Trademark{},
				IDs: func(p *models.Product) []string {
					if p.TrademarkID == nil {
						return nil
					}
					return []string{*p.TrademarkID}
				},
			},
			{
				Field: "promotionIds",
				Model: &models.Promotion{},
				IDs: func(p *models.Product) []string {
					ids := make([]string, 0, len(p.Promotions))
					for _, promo := range p.Promotions {
						ids = append(ids, promo.ID)
					}
					return ids
				},
			},
		},
		OnDelete:          DeleteOrphan,
		OmitOnCreate:      []string{"Promotions.*"},
		OwnedAssociations: []string{"Images", "Promotions"},
	}
}

// ProductFilters narrows GetAllProducts. Empty fields are ignored.
type ProductFilters struct {
	GenderID         string
	CategoryID       string
	DetailCategoryID string
	TrademarkID      string
}

func (f ProductFilters) params() GetParams {
	filters := map[string]any{}
	for key, value := range map[string]string{
		"genderId":         f.GenderID,
		"categoryId":       f.CategoryID,
		"detailCategoryId": f.DetailCategoryID,
		"trademarkId":      f.TrademarkID,
	} {
		if value != "" {
			filters[key] = value
		}
	}
	return GetParams{Filters: filters}
}

type ProductServiceImpl interface {
	CreateProduct(ctx context.Context, input any) Result[*models.Product]
	GetProductByID(ctx context.Context, id string) Result[*models.Product]
	GetAllProducts(ctx context.Context, filters ProductFilters) Result[[]models.Product]
	DeleteProduct(ctx context.Context, ids []string, policy ...DeletePolicy) Result[[]string]
}

type ProductService struct {
	Products *Crud[models.Product]
	prices   *format.PriceFormatter
}

func NewProductService(db *gorm.DB, v *validator.Validate, revalidator cache.Revalidator, prices *format.PriceFormatter) (*ProductService, error) {
	products, err := newCrud(db, ProductOptions(v), revalidator)
	if err != nil {
		return nil, err
	}
	if prices == nil {
		prices = format.NewPriceFormatter("", 0)
	}
	return &ProductService{Products: products, prices: prices}, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, input any) Result[*models.Product] {
	res := s.Products.CreateItem(ctx, input)
	if res.Success {
		s.decorate(res.Data)
	}
	return res
}

func (s *ProductService) GetProductByID(ctx context.Context, id string) Result[*models.Product] {
	res := s.Products.GetItem(ctx, id, GetParams{})
	if res.Success {
		s.decorate(res.Data)
	}
	return res
}

func (s *ProductService) GetAllProducts(ctx context.Context, filters ProductFilters) Result[[]models.Product] {
	res := s.Products.GetItems(ctx, filters.params())
	for i := range res.Data {
		s.decorate(&res.Data[i])
	}
	return res
}

func (s *ProductService) DeleteProduct(ctx context.Context, ids []string, policy ...DeletePolicy) Result[[]string] {
	return s.Products.DeleteItems(ctx, ids, policy...)
}

// decorate fills the derived display fields of p.
func (s *ProductService) decorate(p *models.Product) {
	if p == nil {
		return
	}
	p.PriceLabel = s.prices.Format(p.DiscountedPrice())
	sort.SliceStable(p.Images, func(i, j int) bool {
		return p.Images[i].Position < p.Images[j].Position
	})
}
