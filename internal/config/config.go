package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/wichananm65/skincare-backend/internal/storage"
)

const (
	defaultAddr               = ":8080"
	defaultAppEnv             = "development"
	defaultMaxRecommendations = 20
)

// Config holds environment-driven configuration.
type Config struct {
	Addr               string
	SupabaseURL        string
	SupabaseKey        string
	DatabaseURL        string
	AppEnv             string
	Debug              bool
	LogMode            string
	LogHashSalt        string
	UploadDir          string
	AllowProductWrites bool
	MaxRecommendations int
}

// Load reads configuration from environment variables, falling back to
// defaults for anything unset or unparsable.
func Load() Config {
	appEnv := stringVar("APP_ENV", defaultAppEnv)
	logMode := stringVar("LOG_MODE", "")
	if logMode == "" {
		logMode = "development"
		if appEnv == "production" {
			logMode = "production"
		}
	}
	return Config{
		Addr:               stringVar("SKINCARE_ADDR", defaultAddr),
		SupabaseURL:        stringVar("SUPABASE_URL", ""),
		SupabaseKey:        stringVar("SUPABASE_KEY", ""),
		DatabaseURL:        stringVar("DATABASE_URL", storage.DefaultDatabaseURL),
		AppEnv:             appEnv,
		Debug:              boolVar("DEBUG", false),
		LogMode:            logMode,
		LogHashSalt:        stringVar("LOG_HASH_SALT", ""),
		UploadDir:          stringVar("UPLOAD_DIR", ""),
		AllowProductWrites: os.Getenv("ALLOW_PRODUCT_WRITES") == "1",
		MaxRecommendations: intVar("MAX_RECOMMENDATIONS", defaultMaxRecommendations),
	}
}

// Storage returns the subset the storage backend selector consumes.
func (c Config) Storage() storage.Config {
	return storage.Config{
		SupabaseURL: c.SupabaseURL,
		SupabaseKey: c.SupabaseKey,
		DatabaseURL: c.DatabaseURL,
	}
}

func stringVar(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func intVar(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return def
	}
	return i
}

func boolVar(name string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
