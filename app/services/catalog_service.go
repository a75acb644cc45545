package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/clothing-catalog-admin/app/cache"
	"github.com/Rakhulsr/clothing-catalog-admin/app/models"
	"github.com/Rakhulsr/clothing-catalog-admin/app/repositories"
	"github.com/Rakhulsr/clothing-catalog-admin/app/schemas"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const CatalogPath = "/api/catalog"

const (
	tableCategories       = "categories"
	tableDetailCategories = "detail_categories"
	tableProducts         = "products"
	tableProductImages    = "product_images"
	tableProductPromos    = "product_promotions"
)

// productsBy also lists the rows a product owns, so a hard cascade leaves no
// images or promotion links behind.
func productsBy(foreignKey string) repositories.Dependent {
	return repositories.Dependent{
		Kind:             models.KindProduct,
		Table:            tableProducts,
		ForeignKey:       foreignKey,
		SoftDeleteColumn: "deleted_at",
		Dependents: []repositories.Dependent{
			{Kind: models.KindProduct, Table: tableProductImages, ForeignKey: "product_id"},
			{Kind: models.KindProduct, Table: tableProductPromos, ForeignKey: "product_id"},
		},
	}
}

func detailCategoriesBy(foreignKey string) repositories.Dependent {
	return repositories.Dependent{
		Kind:             models.KindDetailCategory,
		Table:            tableDetailCategories,
		ForeignKey:       foreignKey,
		SoftDeleteColumn: "deleted_at",
		Dependents:       []repositories.Dependent{productsBy("detail_category_id")},
	}
}

func categoriesBy(foreignKey string) repositories.Dependent {
	return repositories.Dependent{
		Kind:             models.KindCategory,
		Table:            tableCategories,
		ForeignKey:       foreignKey,
		SoftDeleteColumn: "deleted_at",
		Dependents:       []repositories.Dependent{detailCategoriesBy("category_id")},
	}
}

func GenderOptions(v *validator.Validate) CrudOptions[models.Gender] {
	return CrudOptions[models.Gender]{
		Kind:            models.KindGender,
		Schema:          schemas.NewGenderSchema(v),
		RevalidatePath:  CatalogPath,
		UniqueFields:    []string{"Name"},
		SoftDeleteField: "DeletedAt",
		Dependents:      []repositories.Dependent{categoriesBy("gender_id"), productsBy("gender_id")},
		OnDelete:        DeleteRestrict,
	}
}

func CategoryOptions(v *validator.Validate) CrudOptions[models.Category] {
	return CrudOptions[models.Category]{
		Kind:            models.KindCategory,
		Schema:          schemas.NewCategorySchema(v),
		RevalidatePath:  CatalogPath,
		UniqueFields:    []string{"Name", "GenderID"},
		SoftDeleteField: "DeletedAt",
		References: []Reference[models.Category]{{
			Field: "genderId",
			Model: &models.Gender{},
			IDs:   func(c *models.Category) []string { return []string{c.GenderID} },
		}},
		Dependents: []repositories.Dependent{detailCategoriesBy("category_id"), productsBy("category_id")},
		OnDelete:   DeleteRestrict,
	}
}

func DetailCategoryOptions(v *validator.Validate) CrudOptions[models.DetailCategory] {
	return CrudOptions[models.DetailCategory]{
		Kind:            models.KindDetailCategory,
		Schema:          schemas.NewDetailCategorySchema(v),
		RevalidatePath:  CatalogPath,
		UniqueFields:    []string{"Name", "CategoryID"},
		SoftDeleteField: "DeletedAt",
		References: []Reference[models.DetailCategory]{{
			Field: "categoryId",
			Model: &models.Category{},
			IDs:   func(d *models.DetailCategory) []string { return []string{d.CategoryID} },
		}},
		Dependents: []repositories.Dependent{productsBy("detail_category_id")},
		OnDelete:   DeleteRestrict,
	}
}

func PromotionOptions(v *validator.Validate) CrudOptions[models.Promotion] {
	return CrudOptions[models.Promotion]{
		Kind:            models.KindPromotion,
		Schema:          schemas.NewPromotionSchema(v),
		RevalidatePath:  CatalogPath,
		UniqueFields:    []string{"Name"},
		SoftDeleteField: "DeletedAt",
		Dependents: []repositories.Dependent{{
			Kind:                    models.KindProduct,
			Table:                   tableProductPromos,
			ForeignKey:              "promotion_id",
			Through:                 tableProducts,
			ThroughKey:              "product_id",
			ThroughSoftDeleteColumn: "deleted_at",
		}},
		OnDelete: DeleteOrphan,
	}
}

func TrademarkOptions(v *validator.Validate) CrudOptions[models.Trademark] {
	return CrudOptions[models.Trademark]{
		Kind:            models.KindTrademark,
		Schema:          schemas.NewTrademarkSchema(v),
		RevalidatePath:  CatalogPath,
		UniqueFields:    []string{"Name"},
		SoftDeleteField: "DeletedAt",
		Dependents:      []repositories.Dependent{productsBy("trademark_id")},
		OnDelete:        DeleteRestrict,
	}
}

type CatalogServiceImpl interface {
	CreateGender(ctx context.Context, input any) Result[*models.Gender]
	UpdateGender(ctx context.Context, id string, input any) Result[*models.Gender]
	DeleteGender(ctx context.Context, ids []string, policy ...DeletePolicy) Result[[]string]
	GetGenderByID(ctx context.Context, id string, include ...string) Result[*models.Gender]
	GetAllGenders(ctx context.Context, include ...string) Result[[]models.Gender]
	FetchGendersWithCategories(ctx context.Context) Result[[]models.Gender]

	CreateCategory(ctx context.Context, input any) Result[*models.Category]
	UpdateCategory(ctx context.Context, id string, input any) Result[*models.Category]
	DeleteCategory(ctx context.Context, ids []string, policy ...DeletePolicy) Result[[]string]
	GetCategoryByID(ctx context.Context, id string, include ...string) Result[*models.Category]
	GetAllCategories(ctx context.Context, include ...string) Result[[]models.Category]
	GetCategoriesByGenderID(ctx context.Context, genderID string) Result[[]models.Category]

	CreateDetailCategory(ctx context.Context, input any) Result[*models.DetailCategory]
	UpdateDetailCategory(ctx context.Context, id string, input any) Result[*models.DetailCategory]
	DeleteDetailCategory(ctx context.Context, ids []string, policy ...DeletePolicy) Result[[]string]
	GetDetailCategoryByID(ctx context.Context, id string, include ...string) Result[*models.DetailCategory]
	GetAllDetailCategories(ctx context.Context, include ...string) Result[[]models.DetailCategory]
	GetDetailCategoriesByCategoryID(ctx context.Context, categoryID string) Result[[]models.DetailCategory]

	CreatePromotion(ctx context.Context, input any) Result[*models.Promotion]
	UpdatePromotion(ctx context.Context, id string, input any) Result[*models.Promotion]
	DeletePromotion(ctx context.Context, ids []string, policy ...DeletePolicy) Result[[]string]
	GetPromotionByID(ctx context.Context, id string) Result[*models.Promotion]
	GetAllPromotions(ctx context.Context) Result[[]models.Promotion]

	CreateTrademark(ctx context.Context, input any) Result[*models.Trademark]
	UpdateTrademark(ctx context.Context, id string, input any) Result[*models.Trademark]
	DeleteTrademark(ctx context.Context, ids []string, policy ...DeletePolicy) Result[[]string]
	GetTrademarkByID(ctx context.Context, id string) Result[*models.Trademark]
	GetAllTrademarks(ctx context.Context) Result[[]models.Trademark]

	FetchProductFormData(ctx context.Context) Result[*ProductFormData]
}

type CatalogService struct {
	Genders          *Crud[models.Gender]
	Categories       *Crud[models.Category]
	DetailCategories *Crud[models.DetailCategory]
	Promotions       *Crud[models.Promotion]
	Trademarks       *Crud[models.Trademark]
}

// NewCatalogService builds one Crud per taxonomy kind over db.
func NewCatalogService(db *gorm.DB, v *validator.Validate, revalidator cache.Revalidator) (*CatalogService, error) {
	genders, err := newCrud(db, GenderOptions(v), revalidator)
	if err != nil {
		return nil, err
	}
	categories, err := newCrud(db, CategoryOptions(v), revalidator)
	if err != nil {
		return nil, err
	}
	detailCategories, err := newCrud(db, DetailCategoryOptions(v), revalidator)
	if err != nil {
		return nil, err
	}
	promotions, err := newCrud(db, PromotionOptions(v), revalidator)
	if err != nil {
		return nil, err
	}
	trademarks, err := newCrud(db, TrademarkOptions(v), revalidator)
	if err != nil {
		return nil, err
	}
	return &CatalogService{
		Genders:          genders,
		Categories:       categories,
		DetailCategories: detailCategories,
		Promotions:       promotions,
		Trademarks:       trademarks,
	}, nil
}

func newCrud[T any](db *gorm.DB, opts CrudOptions[T], revalidator cache.Revalidator) (*Crud[T], error) {
	repo, err := repositories.NewCatalogRepository[T](db)
	if err != nil {
		return nil, fmt.Errorf("%s repository: %w", opts.Kind, err)
	}
	return NewCrud(repo, opts, revalidator)
}

func (s *CatalogService) CreateGender(ctx context.Context, input any) Result[*models.Gender] {
	return s.Genders.CreateItem(ctx, input)
}

func (s *CatalogService) UpdateGender(ctx context.Context, id string, input any) Result[*models.Gender] {
	return s.Genders.UpdateItem(ctx, id, input)
}

func (s *CatalogService) DeleteGender(ctx context.Context, ids []string, policy ...DeletePolicy) Result[[]string] {
	return s.Genders.DeleteItems(ctx, ids, policy...)
}

func (s *CatalogService) GetGenderByID(ctx context.Context, id string, include ...string) Result[*models.Gender] {
	return s.Genders.GetItem(ctx, id, GetParams{Include: include})
}

func (s *CatalogService) GetAllGenders(ctx context.Context, include ...string) Result[[]models.Gender] {
	return s.Genders.GetItems(ctx, GetParams{Include: include})
}

func (s *CatalogService) FetchGendersWithCategories(ctx context.Context) Result[[]models.Gender] {
	return s.Genders.GetItems(ctx, GetParams{Include: []string{"Categories"}})
}

func (s *CatalogService) CreateCategory(ctx context.Context, input any) Result[*models.Category] {
	return s.Categories.CreateItem(ctx, input)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, input any) Result[*models.Category] {
	return s.Categories.UpdateItem(ctx, id, input)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, ids []string, policy ...DeletePolicy) Result[[]string] {
	return s.Categories.DeleteItems(ctx, ids, policy...)
}

func (s *CatalogService) GetCategoryByID(ctx context.Context, id string, include ...string) Result[*models.Category] {
	return s.Categories.GetItem(ctx, id, GetParams{Include: include})
}

func (s *CatalogService) GetAllCategories(ctx context.Context, include ...string) Result[[]models.Category] {
	return s.Categories.GetItems(ctx, GetParams{Include: include})
}

func (s *CatalogService) GetCategoriesByGenderID(ctx context.Context, genderID string) Result[[]models.Category] {
	return s.Categories.GetItems(ctx, GetParams{Filters: map[string]any{"genderId": genderID}})
}

func (s *CatalogService) CreateDetailCategory(ctx context.Context, input any) Result[*models.DetailCategory] {
	return s.DetailCategories.CreateItem(ctx, input)
}

func (s *CatalogService) UpdateDetailCategory(ctx context.Context, id string, input any) Result[*models.DetailCategory] {
	return s.DetailCategories.UpdateItem(ctx, id, input)
}

func (s *CatalogService) DeleteDetailCategory(ctx context.Context, ids []string, policy ...DeletePolicy) Result[[]string] {
	return s.DetailCategories.DeleteItems(ctx, ids, policy...)
}

func (s *CatalogService) GetDetailCategoryByID(ctx context.Context, id string, include ...string) Result[*models.DetailCategory] {
	return s.DetailCategories.GetItem(ctx, id, GetParams{Include: include})
}

func (s *CatalogService) GetAllDetailCategories(ctx context.Context, include ...string) Result[[]models.DetailCategory] {
	return s.DetailCategories.GetItems(ctx, GetParams{Include: include})
}

func (s *CatalogService) GetDetailCategoriesByCategoryID(ctx context.Context, categoryID string) Result[[]models.DetailCategory] {
	return s.DetailCategories.GetItems(ctx, GetParams{Filters: map[string]any{"categoryId": categoryID}})
}

func (s *CatalogService) CreatePromotion(ctx context.Context, input any) Result[*models.Promotion] {
	return s.Promotions.CreateItem(ctx, input)
}

func (s *CatalogService) UpdatePromotion(ctx context.Context, id string, input any) Result[*models.Promotion] {
	return s.Promotions.UpdateItem(ctx, id, input)
}

func (s *CatalogService) DeletePromotion(ctx context.Context, ids []string, policy ...DeletePolicy) Result[[]string] {
	return s.Promotions.DeleteItems(ctx, ids, policy...)
}

func (s *CatalogService) GetPromotionByID(ctx context.Context, id string) Result[*models.Promotion] {
	return s.Promotions.GetItem(ctx, id, GetParams{})
}

func (s *CatalogService) GetAllPromotions(ctx context.Context) Result[[]models.Promotion] {
	return s.Promotions.GetItems(ctx, GetParams{})
}

func (s *CatalogService) CreateTrademark(ctx context.Context, input any) Result[*models.Trademark] {
	return s.Trademarks.CreateItem(ctx, input)
}

func (s *CatalogService) UpdateTrademark(ctx context.Context, id string, input any) Result[*models.Trademark] {
	return s.Trademarks.UpdateItem(ctx, id, input)
}

func (s *CatalogService) DeleteTrademark(ctx context.Context, ids []string, policy ...DeletePolicy) Result[[]string] {
	return s.Trademarks.DeleteItems(ctx, ids, policy...)
}

func (s *CatalogService) GetTrademarkByID(ctx context.Context, id string) Result[*models.Trademark] {
	return s.Trademarks.GetItem(ctx, id, GetParams{})
}

func (s *CatalogService) GetAllTrademarks(ctx context.Context) Result[[]models.Trademark] {
	return s.Trademarks.GetItems(ctx, GetParams{})
}

// ProductFormData is everything the product form needs to offer choices.
type ProductFormData struct {
	Genders          []models.Gender         `json:"genders"`
	Categories       []models.Category       `json:"categories"`
	DetailCategories []models.DetailCategory `json:"detailCategories"`
	Promotions       []models.Promotion      `json:"promotions"`
	Trademarks       []models.Trademark      `json:"trademarks"`
}

func (s *CatalogService) FetchProductFormData(ctx context.Context) Result[*ProductFormData] {
	data := &ProductFormData{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		data.Genders, err = s.Genders.list(gctx, GetParams{})
		return err
	})
	g.Go(func() error {
		var err error
		data.Categories, err = s.Categories.list(gctx, GetParams{})
		return err
	})
	g.Go(func() error {
		var err error
		data.DetailCategories, err = s.DetailCategories.list(gctx, GetParams{})
		return err
	})
	g.Go(func() error {
		var err error
		data.Promotions, err = s.Promotions.list(gctx, GetParams{})
		return err
	})
	g.Go(func() error {
		var err error
		data.Trademarks, err = s.Trademarks.list(gctx, GetParams{})
		return err
	})

	if err := g.Wait(); err != nil {
		return fromError[*ProductFormData]("FetchProductFormData", err)
	}
	return succeed("Product form data fetched successfully.", data)
}
