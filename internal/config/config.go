package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	APIBaseURL      string
	APITimeout      time.Duration
	SessionBackend  string // sqlite | redis
	DBDSN           string
	RedisURL        string
	LogFile         string
	LogLevel        string
	TemplatesDir    string
	StaticDir       string
	ProductPageSize int
	ColorPageSize   int
	TraceStdout     bool
	SandboxPort     string
	SandboxSeed     string
}

func Load() Config {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		APIBaseURL:      getEnv("STORE_API_URL", "https://store-api.softclub.tj"),
		APITimeout:      getEnvDuration("API_TIMEOUT", 30*time.Second),
		SessionBackend:  getEnv("SESSION_BACKEND", "sqlite"),
		DBDSN:           getEnv("DB_DSN", "storeadmin.db"), // sqlite file in project root
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		LogFile:         getEnv("LOG_FILE", "./storeadmin.log"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		TemplatesDir:    getEnv("TEMPLATES_DIR", "./web/templates"),
		StaticDir:       getEnv("STATIC_DIR", "./web/static"),
		ProductPageSize: getEnvInt("PRODUCT_PAGE_SIZE", 50),
		ColorPageSize:   getEnvInt("COLOR_PAGE_SIZE", 20),
		TraceStdout:     getEnvBool("TRACE_STDOUT", false),
		SandboxPort:     getEnv("SANDBOX_PORT", "9091"),
		SandboxSeed:     getEnv("SANDBOX_SEED", ""),
	}
	if cfg.SessionBackend != "sqlite" && cfg.SessionBackend != "redis" {
		log.Printf("[config] unknown SESSION_BACKEND=%q, falling back to sqlite", cfg.SessionBackend)
		cfg.SessionBackend = "sqlite"
	}

	log.Printf("[config] PORT=%s STORE_API_URL=%s SESSION_BACKEND=%s DB_DSN=%s LOG_FILE=%s",
		cfg.Port, cfg.APIBaseURL, cfg.SessionBackend, cfg.DBDSN, cfg.LogFile)
	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
