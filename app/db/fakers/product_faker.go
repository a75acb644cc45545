package fakers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/Rakhulsr/clothing-catalog-admin/app/models"
	"github.com/Rakhulsr/clothing-catalog-admin/app/services"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var imagePaths = []string{
	"https://cdn.example.com/products/ss.jpg",
	"https://cdn.example.com/products/ss1.jpg",
	"https://cdn.example.com/products/ss2.jpg",
}

// ProductFaker creates n products spread over the existing detail categories.
func ProductFaker(ctx context.Context, catalog services.CatalogServiceImpl, products services.ProductServiceImpl, n int) error {
	form := catalog.FetchProductFormData(ctx)
	if !form.Success {
		return fmt.Errorf("load product form data: %s", form.Message)
	}
	if len(form.Data.DetailCategories) == 0 {
		return errors.New("no detail categories to attach fake products to")
	}
	categories := map[string]models.Category{}
	for _, c := range form.Data.Categories {
		categories[c.ID] = c
	}

	created := 0
	for i := 0; i < n; i++ {
		detail := form.Data.DetailCategories[rand.Intn(len(form.Data.DetailCategories))]
		category, ok := categories[detail.CategoryID]
		if !ok {
			log.Printf("seed: detail category %s has no live category, skipping product", detail.ID)
			continue
		}
		input := fakeProduct(detail, category)
		if len(form.Data.Trademarks) > 0 {
			input["trademarkId"] = form.Data.Trademarks[rand.Intn(len(form.Data.Trademarks))].ID
		}
		res := products.CreateProduct(ctx, input)
		if !res.Success {
			return fmt.Errorf("create product %q: %s %v", input["name"], res.Message, res.FieldErrors)
		}
		created++
	}
	log.Printf("seed: created %d of %d fake products", created, n)
	if created == 0 && n > 0 {
		return errors.New("no fake product could be attached to a live category")
	}
	return nil
}

func fakeProduct(detail models.DetailCategory, category models.Category) map[string]any {
	cost := fakeCost()
	price := cost.Mul(decimal.NewFromFloat(1.2 + rand.Float64())).Round(0)

	numImages := rand.Intn(3) + 1
	images := make([]string, numImages)
	for i := range images {
		images[i] = imagePaths[rand.Intn(len(imagePaths))]
	}

	return map[string]any{
		"name":           truncate(faker.Word()+" "+faker.Word()+" "+uuid.NewString()[:6], 32),
		"description":    truncate(faker.Sentence()+" "+faker.Sentence(), 150),
		"origin":         "Bandung",
		"price":          price.String(),
		"cost":           cost.String(),
		"discount":       fmt.Sprint(rand.Intn(10)),
		"quantity":       rand.Intn(20) + 1,
		"thumbnail":      images[0],
		"images":         images,
		"gender":         map[string]any{"id": category.GenderID},
		"category":       map[string]any{"id": category.ID, "genderId": category.GenderID},
		"detailCategory": map[string]any{"id": detail.ID, "categoryId": category.ID},
	}
}

func fakeCost() decimal.Decimal {
	return decimal.NewFromInt(int64(rand.Intn(500)+50) * 1000)
}
