package fakers

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Rakhulsr/clothing-catalog-admin/app/services"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

// TrademarkFaker creates n trademarks with fake names.
func TrademarkFaker(ctx context.Context, catalog services.CatalogServiceImpl, n int) error {
	for i := 0; i < n; i++ {
		name := faker.LastName() + " " + uuid.NewString()[:4]
		res := catalog.CreateTrademark(ctx, map[string]any{"name": name})
		if !res.Success {
			return fmt.Errorf("create trademark %q: %s", name, res.Message)
		}
	}
	log.Printf("seed: created %d fake trademarks", n)
	return nil
}

// PromotionFaker creates n promotions running for one to four weeks from today.
func PromotionFaker(ctx context.Context, catalog services.CatalogServiceImpl, n int) error {
	for i := 0; i < n; i++ {
		start := time.Now().UTC().AddDate(0, 0, rand.Intn(14))
		end := start.AddDate(0, 0, 7*(rand.Intn(4)+1))
		input := map[string]any{
			"name":        faker.Word() + " sale " + uuid.NewString()[:4],
			"description": truncate(faker.Sentence(), 255),
			"startDay":    start.Format(time.DateOnly),
			"endDay":      end.Format(time.DateOnly),
		}
		res := catalog.CreatePromotion(ctx, input)
		if !res.Success {
			return fmt.Errorf("create promotion %q: %s %v", input["name"], res.Message, res.FieldErrors)
		}
	}
	log.Printf("seed: created %d fake promotions", n)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
