package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string
	AppEnv  string

	DB DBConfig

	BackgroundImagePath string
	CORSAllowedOrigins  []string

	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadEnv reads the process environment. A .env file in the working
// directory is loaded first when present; real env vars win over it.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: getenv("GIN_MODE", ""),
		AppEnv:  getenv("APP_ENV", "development"),
		DB: DBConfig{
			Host:     getenv("DB_HOST", DefaultDBConfig.Host),
			Port:     getenv("DB_PORT", DefaultDBConfig.Port),
			User:     getenv("DB_USER", DefaultDBConfig.User),
			Password: getenvRaw("DB_PASSWORD", DefaultDBConfig.Password),
			Name:     getenv("DB_NAME", DefaultDBConfig.Name),
		},
		BackgroundImagePath: getenv("BACKGROUND_IMAGE_PATH", ""),
		CORSAllowedOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		RateLimitRPS:        getenvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:      getenvInt("RATE_LIMIT_BURST", 20),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// getenvRaw keeps surrounding whitespace; passwords are taken as-is.
func getenvRaw(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getenvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
