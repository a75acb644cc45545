package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type ENV struct {
	Port           string
	AppEnv         string
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	RedisURL       string
	CacheTTL       time.Duration
	AppAuthKey     string
	AppEncKey      string
	CSRFKey        string
	AdminKeyHash   string
	PriceSymbol    string
	PricePrecision int
}

// LoadEnv reads .env when present and then the process environment.
func LoadEnv() ENV {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}
	return FromEnviron(os.LookupEnv)
}

// FromEnviron builds ENV from lookup, applying defaults for unset keys.
func FromEnviron(lookup func(string) (string, bool)) ENV {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	driver := strings.ToLower(get("DB_DRIVER", "mysql"))
	defaultPort := "3306"
	if driver == "postgres" {
		defaultPort = "5432"
	}

	port := get("APP_PORT", "8080")
	if !strings.Contains(port, ":") {
		port = ":" + port
	}

	ttl, err := time.ParseDuration(get("CACHE_TTL", "5m"))
	if err != nil {
		log.Printf("LoadEnv: invalid CACHE_TTL, using 5m: %v", err)
		ttl = 5 * time.Minute
	}

	precision, err := strconv.Atoi(get("PRICE_PRECISION", "0"))
	if err != nil {
		log.Printf("LoadEnv: invalid PRICE_PRECISION, using 0: %v", err)
		precision = 0
	}

	return ENV{
		Port:           port,
		AppEnv:         strings.ToLower(get("APP_ENV", "development")),
		DBDriver:       driver,
		DBHost:         get("DB_HOST", "127.0.0.1"),
		DBPort:         get("DB_PORT", defaultPort),
		DBUser:         get("DB_USER", ""),
		DBPassword:     get("DB_PASSWORD", ""),
		DBName:         get("DB_NAME", "clothing_catalog"),
		DBSSLMode:      get("DB_SSLMODE", "disable"),
		RedisURL:       get("REDIS_URL", ""),
		CacheTTL:       ttl,
		AppAuthKey:     get("APP_AUTH_KEY", ""),
		AppEncKey:      get("APP_ENC_KEY", ""),
		CSRFKey:        get("CSRF_KEY", ""),
		AdminKeyHash:   get("ADMIN_KEY_HASH", ""),
		PriceSymbol:    get("PRICE_SYMBOL", "Rp"),
		PricePrecision: precision,
	}
}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}
