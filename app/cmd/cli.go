package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Rakhulsr/clothing-catalog-admin/app/cache"
	"github.com/Rakhulsr/clothing-catalog-admin/app/configs"
	"github.com/Rakhulsr/clothing-catalog-admin/app/db/seeders"
	"github.com/Rakhulsr/clothing-catalog-admin/app/helpers"
	"github.com/Rakhulsr/clothing-catalog-admin/app/models/migrations"
	"github.com/Rakhulsr/clothing-catalog-admin/app/services"
	"github.com/Rakhulsr/clothing-catalog-admin/app/utils/format"
	"github.com/urfave/cli/v3"
)

const newKeysFile = ".env.new_keys"

func NewCommand(env configs.ENV) *cli.Command {
	return &cli.Command{
		Name:  "clothing-catalog-admin",
		Usage: "Clothing catalog admin backend",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Seed default genders and categories",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "fake",
						Usage: "also create `N` fake trademarks, promotions and products",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					v := helpers.NewValidator()
					catalog, err := services.NewCatalogService(db, v, cache.NopRevalidator{})
					if err != nil {
						return err
					}
					products, err := services.NewProductService(db, v, cache.NopRevalidator{}, format.NewPriceFormatter(env.PriceSymbol, env.PricePrecision))
					if err != nil {
						return err
					}
					svc := seeders.Services{Catalog: catalog, Products: products}
					if err := seeders.DBSeed(ctx, svc, int(c.Int("fake"))); err != nil {
						return err
					}
					log.Println("✅ Seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication and encryption keys for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintSessionKeys(os.Stdout, newKeysFile); err != nil {
						return err
					}
					log.Println("✅ Key generation complete. Please copy the keys to your .env file.")
					return nil
				},
			},
			{
				Name:      "hash-admin-key",
				Usage:     "Print the bcrypt hash of an admin key for ADMIN_KEY_HASH",
				ArgsUsage: "<key>",
				Action: func(ctx context.Context, c *cli.Command) error {
					key := c.Args().First()
					if key == "" {
						return fmt.Errorf("hash-admin-key: missing key argument")
					}
					hash, err := helpers.HashPassword(key)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.Root().Writer, "ADMIN_KEY_HASH=%s\n", hash)
					return nil
				},
			},
		},
	}
}

func RunCli(env configs.ENV) {
	if err := NewCommand(env).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
