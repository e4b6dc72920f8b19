package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string

	// DatabaseURL enables the delivery log. When empty the service runs
	// stateless: webhooks are normalized and forwarded but not recorded.
	DatabaseURL string

	// OpsJWTSecret verifies the HS256 bearer tokens required by the ops
	// endpoints in prod.
	OpsJWTSecret string

	ClickUp ClickUpConfig
}

// ClickUpConfig configures the outbound task-tracking client. Forwarding is
// disabled unless both APIToken and ListID are set.
type ClickUpConfig struct {
	BaseURL  string
	APIToken string
	ListID   string

	// Custom field IDs on the target list. The email field doubles as the
	// upsert key.
	EmailFieldID    string
	PhoneFieldID    string
	ValueFieldID    string
	WhatsAppFieldID string
	SettledFieldID  string
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	// Serverless platforms set PORT. Prefer it when HTTP_ADDR isn't
	// explicitly set.
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		OpsJWTSecret:   os.Getenv("OPS_JWT_SECRET"),
		ClickUp: ClickUpConfig{
			BaseURL:  env("CLICKUP_BASE_URL", "https://api.clickup.com/api/v2"),
			APIToken: os.Getenv("CLICKUP_API_TOKEN"),
			ListID:   os.Getenv("CLICKUP_LIST_ID"),

			EmailFieldID:    os.Getenv("CLICKUP_FIELD_EMAIL"),
			PhoneFieldID:    os.Getenv("CLICKUP_FIELD_PHONE"),
			ValueFieldID:    os.Getenv("CLICKUP_FIELD_VALUE"),
			WhatsAppFieldID: os.Getenv("CLICKUP_FIELD_WHATSAPP"),
			SettledFieldID:  os.Getenv("CLICKUP_FIELD_SETTLED"),
		},
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
