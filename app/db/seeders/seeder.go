package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/Rakhulsr/clothing-catalog-admin/app/db/fakers"
	"github.com/Rakhulsr/clothing-catalog-admin/app/services"
)

type Services struct {
	Catalog  services.CatalogServiceImpl
	Products services.ProductServiceImpl
}

// Seeder creates one piece of seed data through the catalog service.
type Seeder struct {
	Name string
	Run  func(ctx context.Context, svc Services) error
}

var defaultTaxonomy = []struct {
	Gender     string
	Categories []string
}{
	{Gender: "Men", Categories: []string{"Shirts", "Trousers", "Outerwear"}},
	{Gender: "Women", Categories: []string{"Dresses", "Blouses", "Skirts"}},
	{Gender: "Unisex", Categories: []string{"T-Shirts", "Hoodies"}},
}

func SeedersRegister(fake int) []Seeder {
	seeders := []Seeder{{Name: "taxonomy", Run: seedTaxonomy}}
	if fake > 0 {
		seeders = append(seeders,
			Seeder{Name: "trademarks", Run: func(ctx context.Context, svc Services) error {
				return fakers.TrademarkFaker(ctx, svc.Catalog, fake)
			}},
			Seeder{Name: "promotions", Run: func(ctx context.Context, svc Services) error {
				return fakers.PromotionFaker(ctx, svc.Catalog, fake)
			}},
			Seeder{Name: "products", Run: func(ctx context.Context, svc Services) error {
				return fakers.ProductFaker(ctx, svc.Catalog, svc.Products, fake)
			}},
		)
	}
	return seeders
}

func DBSeed(ctx context.Context, svc Services, fake int) error {
	for _, seeder := range SeedersRegister(fake) {
		if err := seeder.Run(ctx, svc); err != nil {
			return fmt.Errorf("seed %s: %w", seeder.Name, err)
		}
	}
	return nil
}

// seedTaxonomy is idempotent: existing genders and categories are reused.
func seedTaxonomy(ctx context.Context, svc Services) error {
	catalog := svc.Catalog
	existing := catalog.FetchGendersWithCategories(ctx)
	if !existing.Success {
		return fmt.Errorf("list genders: %s", existing.Message)
	}
	known := map[string]map[string]bool{}
	ids := map[string]string{}
	for _, g := range existing.Data {
		ids[g.Name] = g.ID
		known[g.Name] = map[string]bool{}
		for _, c := range g.Categories {
			known[g.Name][c.Name] = true
		}
	}

	for _, entry := range defaultTaxonomy {
		genderID, ok := ids[entry.Gender]
		if !ok {
			res := catalog.CreateGender(ctx, map[string]any{"name": entry.Gender})
			if !res.Success {
				return fmt.Errorf("create gender %s: %s", entry.Gender, res.Message)
			}
			genderID = res.Data.ID
			log.Printf("seed: created gender %s", entry.Gender)
		}
		for _, name := range entry.Categories {
			if known[entry.Gender][name] {
				continue
			}
			res := catalog.CreateCategory(ctx, map[string]any{"name": name, "genderId": genderID})
			if !res.Success {
				return fmt.Errorf("create category %s/%s: %s", entry.Gender, name, res.Message)
			}
			if err := seedDetail(ctx, catalog, res.Data.ID, name); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedDetail gives each new category one catch-all detail category.
func seedDetail(ctx context.Context, catalog services.CatalogServiceImpl, categoryID, name string) error {
	res := catalog.CreateDetailCategory(ctx, map[string]any{"name": "Basic " + name, "categoryId": categoryID})
	if !res.Success {
		return fmt.Errorf("create detail category for %s: %s", name, res.Message)
	}
	return nil
}
