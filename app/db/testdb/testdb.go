// Package testdb opens throwaway migrated SQLite databases for tests.
package testdb

import (
	"regexp"
	"testing"

	"github.com/Rakhulsr/clothing-catalog-admin/app/configs"
	"github.com/Rakhulsr/clothing-catalog-admin/app/models/migrations"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// Open returns an in-memory database private to t, migrated and limited to
// one connection so every query sees the same memory database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + unsafeName.ReplaceAllString(t.Name(), "_") + "?mode=memory&cache=shared"
	cfg := configs.GormConfig(configs.ENV{AppEnv: "test"})
	cfg.Logger = logger.Default.LogMode(logger.Silent)

	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		t.Fatalf("testdb: open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("testdb: sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := migrations.AutoMigrate(db); err != nil {
		t.Fatalf("testdb: migrate: %v", err)
	}
	return db
}
