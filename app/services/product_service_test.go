package services

import (
	"context"
	"testing"

	"github.com/Rakhulsr/clothing-catalog-admin/app/db/testdb"
	"github.com/Rakhulsr/clothing-catalog-admin/app/helpers"
	"github.com/Rakhulsr/clothing-catalog-admin/app/models"
	"github.com/Rakhulsr/clothing-catalog-admin/app/utils/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type productFixture struct {
	db       *gorm.DB
	catalog  *CatalogService
	products *ProductService
	gender   *models.Gender
	category *models.Category
	detail   *models.DetailCategory
	brand    *models.Trademark
	promo    *models.Promotion
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	ctx := context.Background()
	db := testdb.Open(t)
	v := helpers.NewValidator()

	catalog, err := NewCatalogService(db, v, nil)
	require.NoError(t, err)
	products, err := NewProductService(db, v, nil, format.NewPriceFormatter("Rp", 0))
	require.NoError(t, err)

	f := &productFixture{db: db, catalog: catalog, products: products}
	f.gender, f.category, f.detail = seedTree(t, catalog)
	f.brand = mustCreate(t, catalog.CreateTrademark(ctx, map[string]any{"name": "Levi's"}))
	f.promo = mustCreate(t, catalog.CreatePromotion(ctx, map[string]any{"name": "Launch", "description": "Opening week"}))
	return f
}

func (f *productFixture) input() map[string]any {
	return map[string]any{
		"name":           "Classic Polo",
		"description":    "Cotton pique polo shirt",
		"origin":         "Bandung",
		"price":          "200000",
		"cost":           "120000",
		"discount":       "10",
		"quantity":       5,
		"thumbnail":      "https://cdn.example.com/polo.jpg",
		"images":         []string{"https://cdn.example.com/polo-1.jpg", "https://cdn.example.com/polo-2.jpg"},
		"gender":         map[string]any{"id": f.gender.ID, "name": f.gender.Name},
		"category":       map[string]any{"id": f.category.ID, "name": f.category.Name, "genderId": f.gender.ID},
		"detailCategory": map[string]any{"id": f.detail.ID, "name": f.detail.Name, "categoryId": f.category.ID},
		"trademarkId":    f.brand.ID,
		"promotionIds":   []string{f.promo.ID},
	}
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)

	res := f.products.CreateProduct(ctx, f.input())
	require.True(t, res.Success, "%s %v", res.Message, res.FieldErrors)

	p := res.Data
	assert.Contains(t, p.Slug, "classic-polo-")
	assert.Equal(t, "Rp 180.000", p.PriceLabel)
	require.NotNil(t, p.Gender)
	assert.Equal(t, f.gender.ID, p.Gender.ID)
	require.NotNil(t, p.Trademark)
	assert.Equal(t, "Levi's", p.Trademark.Name)
	require.Len(t, p.Promotions, 1)
	assert.Equal(t, "Launch", p.Promotions[0].Name)
	require.Len(t, p.Images, 2)
	assert.Equal(t, "https://cdn.example.com/polo-1.jpg", p.Images[0].URL)

	got := f.products.GetProductByID(ctx, p.ID)
	require.True(t, got.Success)
	assert.Equal(t, p.Name, got.Data.Name)
	assert.True(t, p.Price.Equal(got.Data.Price))
}

func TestCreateProductRejectsLoss(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)

	in := f.input()
	in["cost"] = "250000"
	res := f.products.CreateProduct(ctx, in)
	assert.True(t, res.Failed(ErrorValidation))
	assert.Contains(t, res.FieldErrors, "price")

	in = f.input()
	in["discount"] = "50"
	res = f.products.CreateProduct(ctx, in)
	assert.True(t, res.Failed(ErrorValidation))
	assert.Contains(t, res.FieldErrors, "discount")

	assert.Empty(t, f.products.GetAllProducts(ctx, ProductFilters{}).Data)
}

func TestCreateProductChecksTaxonomy(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	other := mustCreate(t, f.catalog.CreateGender(ctx, map[string]any{"name": "Women"}))

	in := f.input()
	in["gender"] = map[string]any{"id": other.ID}
	res := f.products.CreateProduct(ctx, in)
	assert.True(t, res.Failed(ErrorValidation))
	assert.Contains(t, res.FieldErrors, "category")

	in = f.input()
	in["gender"] = map[string]any{"id": other.ID}
	in["category"] = map[string]any{"id": f.category.ID, "genderId": other.ID}
	res = f.products.CreateProduct(ctx, in)
	assert.True(t, res.Failed(ErrorValidation))
	assert.Contains(t, res.FieldErrors, "category")

	in = f.input()
	in["trademarkId"] = "missing"
	res = f.products.CreateProduct(ctx, in)
	assert.True(t, res.Failed(ErrorValidation))
	assert.Contains(t, res.FieldErrors, "trademarkId")

	in = f.input()
	in["promotionIds"] = []string{f.promo.ID, "missing"}
	res = f.products.CreateProduct(ctx, in)
	assert.True(t, res.Failed(ErrorValidation))
	assert.Contains(t, res.FieldErrors, "promotionIds")
}

func TestProductNameIsUnique(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)

	require.True(t, f.products.CreateProduct(ctx, f.input()).Success)

	in := f.input()
	in["name"] = "classic   POLO"
	assert.True(t, f.products.CreateProduct(ctx, in).Failed(ErrorDuplicate))
}

func TestProductFiltersAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)

	created := f.products.CreateProduct(ctx, f.input())
	require.True(t, created.Success)

	byGender := f.products.GetAllProducts(ctx, ProductFilters{GenderID: f.gender.ID})
	require.True(t, byGender.Success)
	require.Len(t, byGender.Data, 1)
	assert.NotEmpty(t, byGender.Data[0].PriceLabel)

	none := f.products.GetAllProducts(ctx, ProductFilters{TrademarkID: "other"})
	require.True(t, none.Success)
	assert.Empty(t, none.Data)

	require.True(t, f.products.DeleteProduct(ctx, []string{created.Data.ID}).Success)
	assert.True(t, f.products.GetProductByID(ctx, created.Data.ID).Failed(ErrorNotFound))

	again := f.products.CreateProduct(ctx, f.input())
	require.True(t, again.Success)
	assert.NotEqual(t, created.Data.Slug, again.Data.Slug)
}

func TestPromotionDeleteOrphansProducts(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	created := f.products.CreateProduct(ctx, f.input())
	require.True(t, created.Success)

	require.True(t, f.catalog.DeletePromotion(ctx, []string{f.promo.ID}).Success)

	got := f.products.GetProductByID(ctx, created.Data.ID)
	require.True(t, got.Success)
	assert.Empty(t, got.Data.Promotions)

	restricted := f.catalog.DeleteTrademark(ctx, []string{f.brand.ID})
	assert.True(t, restricted.Failed(ErrorConflict))
}

func TestPromotionRestrictIgnoresRetiredProducts(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	created := f.products.CreateProduct(ctx, f.input())
	require.True(t, created.Success)

	live := f.catalog.DeletePromotion(ctx, []string{f.promo.ID}, DeleteRestrict)
	require.True(t, live.Failed(ErrorConflict))
	assert.Contains(t, live.Message, "1 dependent Product")

	require.True(t, f.products.DeleteProduct(ctx, []string{created.Data.ID}).Success)

	res := f.catalog.DeletePromotion(ctx, []string{f.promo.ID}, DeleteRestrict)
	assert.True(t, res.Success, res.Message)
}

func TestHardCascadeRemovesProductRows(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	created := f.products.CreateProduct(ctx, f.input())
	require.True(t, created.Success)

	opts := GenderOptions(helpers.NewValidator())
	opts.HardDelete = true
	genders, err := newCrud(f.db, opts, nil)
	require.NoError(t, err)

	res := genders.DeleteItems(ctx, []string{f.gender.ID}, DeleteCascade)
	require.True(t, res.Success, res.Message)

	for _, table := range []string{"genders", "categories", "detail_categories", "products", "product_images", "product_promotions"} {
		var n int64
		require.NoError(t, f.db.Table(table).Count(&n).Error)
		assert.Zero(t, n, table)
	}
	assert.True(t, f.catalog.GetPromotionByID(ctx, f.promo.ID).Success)
}
