package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAdminEmail    = "admin@email.com"
	defaultAdminPassword = "admin123"
)

type Config struct {
	Env  string
	Port int

	DBURL string

	JWTSecret  string
	JWTTTLDays int

	AdminName     string
	AdminEmail    string
	AdminPassword string

	CORSOrigins []string

	OTELEndpoint string
	TracingOn    bool
}

func Load() Config {
	// best effort, same as the usual dotenv pattern
	_ = godotenv.Load()

	return Config{
		Env:           getEnv("APP_ENV", "dev"),
		Port:          getEnvInt("PORT", 5000),
		DBURL:         buildDBURL(),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		JWTTTLDays:    getEnvInt("JWT_TTL_DAYS", 7),
		AdminName:     getEnv("ADMIN_NAME", "Administrador"),
		AdminEmail:    getEnv("ADMIN_EMAIL", defaultAdminEmail),
		AdminPassword: getEnv("ADMIN_PASSWORD", defaultAdminPassword),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "")),
		OTELEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		TracingOn:     getEnv("OTEL_TRACING", "") == "1",
	}
}

// DefaultAdminCredentials reports whether the seeded admin still uses the
// well-known email/password pair. Deployments should treat this as a risk.
func (c Config) DefaultAdminCredentials() bool {
	return c.AdminEmail == defaultAdminEmail && c.AdminPassword == defaultAdminPassword
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "sistema_login")
	pass := getEnv("DB_PASSWORD", "sistema_login")
	name := getEnv("DB_NAME", "sistema_login")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}

	var out []string

	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}
