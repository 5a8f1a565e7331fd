package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string
	// DBFile is the JSON snapshot store used by the default backend.
	DBFile string
	// PostgresDSN, when set, switches the store to the PostgreSQL backend.
	PostgresDSN string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists
	cfg := Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8000"),
		DBFile:      getenv("DB_FILE", "database.json"),
		PostgresDSN: getenv("POSTGRES_DSN", ""),
	}
	log.Printf("[config] HTTP_ADDR=%s", cfg.HTTPAddr)
	log.Printf("[config] DB_FILE=%s", cfg.DBFile)
	if cfg.PostgresDSN != "" {
		log.Printf("[config] POSTGRES_DSN set, postgres backend selected")
	}
	return cfg
}
