package services

import (
	"context"
	"testing"
	"time"

	"github.com/Rakhulsr/clothing-catalog-admin/app/db/testdb"
	"github.com/Rakhulsr/clothing-catalog-admin/app/helpers"
	"github.com/Rakhulsr/clothing-catalog-admin/app/models"
	"github.com/Rakhulsr/clothing-catalog-admin/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type revalidations struct {
	paths []string
}

func (r *revalidations) Revalidate(_ context.Context, path string) {
	r.paths = append(r.paths, path)
}

func newCatalog(t *testing.T) (*CatalogService, *revalidations, *gorm.DB) {
	t.Helper()
	db := testdb.Open(t)
	rec := &revalidations{}
	svc, err := NewCatalogService(db, helpers.NewValidator(), rec)
	require.NoError(t, err)
	return svc, rec, db
}

func mustCreate[T any](t *testing.T, res Result[*T]) *T {
	t.Helper()
	require.True(t, res.Success, "%s (%s) %v", res.Message, res.ErrorKind, res.FieldErrors)
	require.NotNil(t, res.Data)
	return res.Data
}

func TestCatalogScenario(t *testing.T) {
	ctx := context.Background()
	svc, rec, _ := newCatalog(t)

	men := mustCreate(t, svc.CreateGender(ctx, map[string]any{"name": "Men"}))

	dup := svc.CreateGender(ctx, map[string]any{"name": "men"})
	assert.True(t, dup.Failed(ErrorDuplicate))
	assert.Equal(t, "A Gender with the same name already exists.", dup.Message)

	updated := svc.UpdateGender(ctx, men.ID, map[string]any{"name": "Women"})
	require.True(t, updated.Success, updated.Message)
	assert.Equal(t, "Women", updated.Data.Name)
	assert.Equal(t, men.ID, updated.Data.ID)

	mustCreate(t, svc.CreateCategory(ctx, map[string]any{"name": "Shirts", "genderId": men.ID}))

	list := svc.GetCategoriesByGenderID(ctx, men.ID)
	require.True(t, list.Success)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Shirts", list.Data[0].Name)

	assert.Len(t, rec.paths, 3)
	for _, p := range rec.paths {
		assert.Equal(t, CatalogPath, p)
	}
}

func TestCreateRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCatalog(t)

	created := mustCreate(t, svc.CreatePromotion(ctx, map[string]any{
		"name":        "  Summer   Sale ",
		"description": "Twenty percent off",
		"startDay":    "2025-06-01",
		"endDay":      "2025-06-30",
	}))
	assert.Equal(t, "Summer Sale", created.Name)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got := svc.GetPromotionByID(ctx, created.ID)
	require.True(t, got.Success)
	assert.Equal(t, created.Name, got.Data.Name)
	assert.Equal(t, created.Description, got.Data.Description)
	require.NotNil(t, got.Data.StartDay)
	assert.Equal(t, "2025-06-01", got.Data.StartDay.Format(time.DateOnly))
	assert.Nil(t, got.Data.DeletedAt)

	all := svc.GetAllPromotions(ctx)
	require.True(t, all.Success)
	assert.Len(t, all.Data, 1)
}

func TestValidationFailureHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	svc, rec, _ := newCatalog(t)

	res := svc.CreateGender(ctx, map[string]any{"name": "   "})
	assert.True(t, res.Failed(ErrorValidation))
	assert.Contains(t, res.FieldErrors, "name")
	assert.Nil(t, res.Data)

	promo := svc.CreatePromotion(ctx, map[string]any{
		"name": "Flash", "description": "One day", "startDay": "2025-06-02", "endDay": "2025-06-01",
	})
	assert.True(t, promo.Failed(ErrorValidation))
	assert.Contains(t, promo.FieldErrors, "endDay")

	g := mustCreate(t, svc.CreateGender(ctx, map[string]any{"name": "Men"}))
	bad := svc.UpdateGender(ctx, g.ID, map[string]any{"name": ""})
	assert.True(t, bad.Failed(ErrorValidation))

	got := svc.GetGenderByID(ctx, g.ID)
	require.True(t, got.Success)
	assert.Equal(t, "Men", got.Data.Name)
	assert.Len(t, svc.GetAllGenders(ctx).Data, 1)
	assert.Len(t, rec.paths, 1)
}

func TestReferenceMustBeLive(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCatalog(t)

	res := svc.CreateCategory(ctx, map[string]any{"name": "Shirts", "genderId": "missing"})
	assert.True(t, res.Failed(ErrorValidation))
	assert.Contains(t, res.FieldErrors, "genderId")

	g := mustCreate(t, svc.CreateGender(ctx, map[string]any{"name": "Men"}))
	require.True(t, svc.DeleteGender(ctx, []string{g.ID}).Success)

	res = svc.CreateCategory(ctx, map[string]any{"name": "Shirts", "genderId": g.ID})
	assert.True(t, res.Failed(ErrorValidation))
}

func TestCompositeUniqueness(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCatalog(t)

	men := mustCreate(t, svc.CreateGender(ctx, map[string]any{"name": "Men"}))
	women := mustCreate(t, svc.CreateGender(ctx, map[string]any{"name": "Women"}))

	mustCreate(t, svc.CreateCategory(ctx, map[string]any{"name": "Shirts", "genderId": men.ID}))
	mustCreate(t, svc.CreateCategory(ctx, map[string]any{"name": "Shirts", "genderId": women.ID}))

	dup := svc.CreateCategory(ctx, map[string]any{"name": "SHIRTS", "genderId": men.ID})
	assert.True(t, dup.Failed(ErrorDuplicate))
	assert.Equal(t, "A Category with the same name and genderId already exists.", dup.Message)
}

func TestUpdateUniquenessExcludesSelf(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCatalog(t)

	a := mustCreate(t, svc.CreateTrademark(ctx, map[string]any{"name": "Adidas"}))
	mustCreate(t, svc.CreateTrademark(ctx, map[string]any{"name": "Nike"}))

	same := svc.UpdateTrademark(ctx, a.ID, map[string]any{"name": "ADIDAS"})
	require.True(t, same.Success, same.Message)
	assert.Equal(t, "ADIDAS", same.Data.Name)

	clash := svc.UpdateTrademark(ctx, a.ID, map[string]any{"name": "nike"})
	assert.True(t, clash.Failed(ErrorDuplicate))

	missing := svc.UpdateTrademark(ctx, "nope", map[string]any{"name": "Puma"})
	assert.True(t, missing.Failed(ErrorNotFound))
}

func TestSoftDeletedRowsLeaveUniquenessScope(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCatalog(t)

	g := mustCreate(t, svc.CreateGender(ctx, map[string]any{"name": "Men"}))
	require.True(t, svc.DeleteGender(ctx, []string{g.ID}).Success)

	again := mustCreate(t, svc.CreateGender(ctx, map[string]any{"name": "men"}))
	assert.NotEqual(t, g.ID, again.ID)
}

func TestDeleteIsIdempotentlySafe(t *testing.T) {
	ctx := context.Background()
	svc, rec, db := newCatalog(t)
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.Genders.now = func() time.Time { return fixed }

	g := mustCreate(t, svc.CreateGender(ctx, map[string]any{"name": "Unisex"}))

	first := svc.DeleteGender(ctx, []string{g.ID})
	require.True(t, first.Success)
	assert.Equal(t, []string{g.ID}, first.Data)

	second := svc.DeleteGender(ctx, []string{g.ID})
	assert.True(t, second.Failed(ErrorNotFound))
	assert.Equal(t, "Gender not found for some of the provided IDs.", second.Message)

	var stored models.Gender
	require.NoError(t, db.First(&stored, "id = ?", g.ID).Error)
	require.NotNil(t, stored.DeletedAt)
	assert.WithinDuration(t, fixed, *stored.DeletedAt, time.Second)
	assert.Nil(t, stored.LiveKey)

	assert.True(t, svc.GetGenderByID(ctx, g.ID).Failed(ErrorNotFound))
	assert.Len(t, rec.paths, 2)
}

func TestBulkDeleteAllOrNothing(t *testing.T) {
	ctx := context.Background()
	svc, rec, _ := newCatalog(t)

	a := mustCreate(t, svc.CreateTrademark(ctx, map[string]any{"name": "A brand"}))
	b := mustCreate(t, svc.CreateTrademark(ctx, map[string]any{"name": "B brand"}))

	res := svc.DeleteTrademark(ctx, []string{a.ID, b.ID, "does-not-exist"})
	assert.True(t, res.Failed(ErrorNotFound))
	assert.Len(t, svc.GetAllTrademarks(ctx).Data, 2)
	assert.Len(t, rec.paths, 2)

	res = svc.DeleteTrademark(ctx, []string{" " + a.ID, a.ID, b.ID, ""})
	require.True(t, res.Success)
	assert.Equal(t, []string{a.ID, b.ID}, res.Data)
	assert.Empty(t, svc.GetAllTrademarks(ctx).Data)
}

func TestDeleteRejectsEmptyIDList(t *testing.T) {
	svc, _, _ := newCatalog(t)

	res := svc.DeleteGender(context.Background(), []string{" ", ""})
	assert.True(t, res.Failed(ErrorBadRequest))
	assert.Equal(t, "Invalid ID list", res.Message)

	res = svc.DeleteGender(context.Background(), nil)
	assert.True(t, res.Failed(ErrorBadRequest))
}

func seedTree(t *testing.T, svc *CatalogService) (*models.Gender, *models.Category, *models.DetailCategory) {
	t.Helper()
	ctx := context.Background()
	g := mustCreate(t, svc.CreateGender(ctx, map[string]any{"name": "Men"}))
	c := mustCreate(t, svc.CreateCategory(ctx, map[string]any{"name": "Shirts", "genderId": g.ID}))
	d := mustCreate(t, svc.CreateDetailCategory(ctx, map[string]any{"name": "Polo", "categoryId": c.ID}))
	return g, c, d
}

func TestDeleteRestrictPolicy(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCatalog(t)
	g, c, _ := seedTree(t, svc)

	res := svc.DeleteGender(ctx, []string{g.ID})
	assert.True(t, res.Failed(ErrorConflict))
	assert.True(t, svc.GetGenderByID(ctx, g.ID).Success)

	res = svc.DeleteCategory(ctx, []string{c.ID}, DeleteRestrict)
	assert.True(t, res.Failed(ErrorConflict))
}

func TestDeleteCascadePolicy(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCatalog(t)
	g, c, d := seedTree(t, svc)

	res := svc.DeleteGender(ctx, []string{g.ID}, DeleteCascade)
	require.True(t, res.Success, res.Message)

	assert.True(t, svc.GetGenderByID(ctx, g.ID).Failed(ErrorNotFound))
	assert.True(t, svc.GetCategoryByID(ctx, c.ID).Failed(ErrorNotFound))
	assert.True(t, svc.GetDetailCategoryByID(ctx, d.ID).Failed(ErrorNotFound))

	again := mustCreate(t, svc.CreateGender(ctx, map[string]any{"name": "Men"}))
	mustCreate(t, svc.CreateCategory(ctx, map[string]any{"name": "Shirts", "genderId": again.ID}))
}

func TestDeleteOrphanPolicy(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCatalog(t)
	_, c, d := seedTree(t, svc)

	res := svc.DeleteCategory(ctx, []string{c.ID}, DeleteOrphan)
	require.True(t, res.Success)

	orphan := svc.GetDetailCategoryByID(ctx, d.ID)
	require.True(t, orphan.Success)
	assert.Equal(t, c.ID, orphan.Data.CategoryID)
}

func TestDeleteUnknownPolicy(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCatalog(t)
	g := mustCreate(t, svc.CreateGender(ctx, map[string]any{"name": "Men"}))

	res := svc.DeleteGender(ctx, []string{g.ID}, DeletePolicy("purge"))
	assert.True(t, res.Failed(ErrorBadRequest))
}

func TestHardDeleteRemovesRows(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	opts := TrademarkOptions(helpers.NewValidator())
	opts.HardDelete = true
	trademarks, err := newCrud(db, opts, nil)
	require.NoError(t, err)

	tm := mustCreate(t, trademarks.CreateItem(ctx, map[string]any{"name": "Zara"}))
	require.True(t, trademarks.DeleteItems(ctx, []string{tm.ID}).Success)

	var n int64
	require.NoError(t, db.Model(&models.Trademark{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestHiddenColumnsAreNotFilterable(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCatalog(t)
	mustCreate(t, svc.CreateGender(ctx, map[string]any{"name": "Men"}))

	for _, key := range []string{"live_key", "LiveKey"} {
		res := svc.Genders.GetItems(ctx, GetParams{Filters: map[string]any{key: nil}})
		assert.True(t, res.Failed(ErrorBadRequest), key)
	}
	res := svc.Genders.GetItems(ctx, GetParams{Filters: map[string]any{"name": "Men"}})
	require.True(t, res.Success)
	assert.Len(t, res.Data, 1)
}

func TestGetFiltersAndIncludes(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCatalog(t)
	g, _, _ := seedTree(t, svc)

	withCategories := svc.FetchGendersWithCategories(ctx)
	require.True(t, withCategories.Success)
	require.Len(t, withCategories.Data, 1)
	assert.Len(t, withCategories.Data[0].Categories, 1)

	plain := svc.GetGenderByID(ctx, g.ID)
	require.True(t, plain.Success)
	assert.Empty(t, plain.Data.Categories)

	unknown := svc.Categories.GetItems(ctx, GetParams{Filters: map[string]any{"colour": "red"}})
	assert.True(t, unknown.Failed(ErrorBadRequest))

	badInclude := svc.GetAllGenders(ctx, "Products")
	assert.True(t, badInclude.Failed(ErrorBadRequest))

	none := svc.GetCategoriesByGenderID(ctx, "other")
	require.True(t, none.Success)
	assert.NotNil(t, none.Data)
	assert.Empty(t, none.Data)
}

// blindRepository hides existing rows from lookups, as a concurrent writer would.
type blindRepository[T any] struct {
	repositories.CatalogRepositoryImpl[T]
}

func (b blindRepository[T]) FindFirst(context.Context, *repositories.Filter, ...string) (*T, error) {
	return nil, nil
}

func (b blindRepository[T]) Transaction(ctx context.Context, fn func(tx repositories.CatalogRepositoryImpl[T]) error) error {
	return b.CatalogRepositoryImpl.Transaction(ctx, func(tx repositories.CatalogRepositoryImpl[T]) error {
		return fn(blindRepository[T]{tx})
	})
}

func TestStorageUniqueIndexBacksThePreCheck(t *testing.T) {
	ctx := context.Background()
	svc, _, db := newCatalog(t)
	mustCreate(t, svc.CreateGender(ctx, map[string]any{"name": "Men"}))

	repo, err := repositories.NewCatalogRepository[models.Gender](db)
	require.NoError(t, err)
	rec := &revalidations{}
	racing, err := NewCrud[models.Gender](blindRepository[models.Gender]{repo}, GenderOptions(helpers.NewValidator()), rec)
	require.NoError(t, err)

	res := racing.CreateItem(ctx, map[string]any{"name": " MEN "})
	assert.True(t, res.Failed(ErrorDuplicate))
	assert.Empty(t, rec.paths)
	assert.Len(t, svc.GetAllGenders(ctx).Data, 1)
}

func TestInfrastructureErrorIsGeneric(t *testing.T) {
	ctx := context.Background()
	svc, rec, db := newCatalog(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	res := svc.CreateGender(ctx, map[string]any{"name": "Men"})
	assert.True(t, res.Failed(ErrorInternal))
	assert.Equal(t, unexpectedMessage, res.Message)

	list := svc.GetAllGenders(ctx)
	assert.True(t, list.Failed(ErrorInternal))
	assert.Empty(t, rec.paths)
}

func TestNewCrudRejectsMisconfiguration(t *testing.T) {
	db := testdb.Open(t)
	v := helpers.NewValidator()
	repo, err := repositories.NewCatalogRepository[models.Gender](db)
	require.NoError(t, err)

	cases := map[string]func(o *CrudOptions[models.Gender]){
		"unknown unique field": func(o *CrudOptions[models.Gender]) { o.UniqueFields = []string{"Colour"} },
		"unknown soft delete":  func(o *CrudOptions[models.Gender]) { o.SoftDeleteField = "RemovedAt" },
		"unknown include":      func(o *CrudOptions[models.Gender]) { o.Include = []string{"Products"} },
		"invalid kind":         func(o *CrudOptions[models.Gender]) { o.Kind = 0 },
		"missing schema":       func(o *CrudOptions[models.Gender]) { o.Schema = nil },
		"unknown policy":       func(o *CrudOptions[models.Gender]) { o.OnDelete = "purge" },
		"dependent table":      func(o *CrudOptions[models.Gender]) { o.Dependents = []repositories.Dependent{{Kind: models.KindCategory}} },
		"join without key": func(o *CrudOptions[models.Gender]) {
			o.Dependents = []repositories.Dependent{{Kind: models.KindProduct, Table: "product_promotions", ForeignKey: "promotion_id", Through: "products"}}
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			opts := GenderOptions(v)
			mutate(&opts)
			_, err := NewCrud(repo, opts, nil)
			assert.Error(t, err)
		})
	}
}

func TestFetchProductFormData(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCatalog(t)
	seedTree(t, svc)
	mustCreate(t, svc.CreateTrademark(ctx, map[string]any{"name": "Levi's"}))

	res := svc.FetchProductFormData(ctx)
	require.True(t, res.Success)
	assert.Len(t, res.Data.Genders, 1)
	assert.Len(t, res.Data.Categories, 1)
	assert.Len(t, res.Data.DetailCategories, 1)
	assert.Len(t, res.Data.Trademarks, 1)
	assert.Empty(t, res.Data.Promotions)
}
