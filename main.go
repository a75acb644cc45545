package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Rakhulsr/clothing-catalog-admin/app/cache"
	"github.com/Rakhulsr/clothing-catalog-admin/app/cmd"
	"github.com/Rakhulsr/clothing-catalog-admin/app/configs"
	"github.com/Rakhulsr/clothing-catalog-admin/app/helpers"
	"github.com/Rakhulsr/clothing-catalog-admin/app/models/migrations"
	"github.com/Rakhulsr/clothing-catalog-admin/app/routes"
	"github.com/Rakhulsr/clothing-catalog-admin/app/services"
	"github.com/Rakhulsr/clothing-catalog-admin/app/utils/format"
	"github.com/Rakhulsr/clothing-catalog-admin/app/utils/renderer"
	"github.com/Rakhulsr/clothing-catalog-admin/app/utils/sessions"
)

func main() {
	env := configs.LoadEnv()
	if len(os.Args) > 1 {
		cmd.RunCli(env)
		return
	}

	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		log.Fatalf("Session keys: %v. Run `generate-keys` and copy them to .env.", err)
	}
	if env.AdminKeyHash == "" {
		log.Println("⚠️  ADMIN_KEY_HASH is empty; admin sessions cannot be opened.")
	}

	db, err := configs.OpenConnection(env)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := migrations.AutoMigrate(db); err != nil {
		log.Fatal("DB migration failed:", err)
	}
	log.Println("✅ Database connected.")

	var (
		revalidator cache.Revalidator = cache.NopRevalidator{}
		routeCache  *cache.RouteCache
	)
	if env.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewRedisClient(ctx, env.RedisURL)
		cancel()
		if err != nil {
			log.Fatal("Redis connection failed:", err)
		}
		routeCache = cache.NewRouteCache(client, env.CacheTTL)
		revalidator = routeCache
		log.Println("✅ Route cache initialized.")
	}

	v := helpers.NewValidator()
	catalog, err := services.NewCatalogService(db, v, revalidator)
	if err != nil {
		log.Fatal("Catalog service:", err)
	}
	products, err := services.NewProductService(db, v, revalidator, format.NewPriceFormatter(env.PriceSymbol, env.PricePrecision))
	if err != nil {
		log.Fatal("Product service:", err)
	}

	sessionStore := sessions.NewCookieSessionStore(env.IsProduction(), keys.AuthKey, keys.EncKey)
	log.Println("✅ Session store initialized.")

	router := routes.NewRouter(routes.Deps{
		DB:           db,
		Render:       renderer.New(env.IsProduction()),
		Catalog:      catalog,
		Products:     products,
		Sessions:     sessionStore,
		AdminKeyHash: env.AdminKeyHash,
		RouteCache:   routeCache,
		CSRFKey:      keys.CSRFKey,
		Secure:       env.IsProduction(),
	})

	server := http.Server{
		Addr:              env.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Printf("failed to connecting to the server: %v", err)
	}
}
