package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SKINCARE_ADDR", "SUPABASE_URL", "SUPABASE_KEY", "DATABASE_URL", "APP_ENV", "DEBUG", "LOG_MODE", "UPLOAD_DIR", "ALLOW_PRODUCT_WRITES", "MAX_RECOMMENDATIONS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Addr)
	}
	if cfg.DatabaseURL != "sqlite:///./database/skincare.db" {
		t.Fatalf("unexpected database url %q", cfg.DatabaseURL)
	}
	if cfg.AppEnv != "development" || cfg.LogMode != "development" {
		t.Fatalf("unexpected env/log mode %q/%q", cfg.AppEnv, cfg.LogMode)
	}
	if cfg.Debug || cfg.AllowProductWrites {
		t.Fatalf("flags should default to false: %+v", cfg)
	}
	if cfg.MaxRecommendations != 20 {
		t.Fatalf("unexpected max recommendations %d", cfg.MaxRecommendations)
	}
	if cfg.Storage().UseHosted() {
		t.Fatalf("hosted backend must not be selected without credentials")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SKINCARE_ADDR", ":9090")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_KEY", "anon")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_MODE", "")
	t.Setenv("DEBUG", "true")
	t.Setenv("ALLOW_PRODUCT_WRITES", "1")
	t.Setenv("MAX_RECOMMENDATIONS", "not-a-number")

	cfg := Load()
	if cfg.Addr != ":9090" {
		t.Fatalf("unexpected addr %q", cfg.Addr)
	}
	if cfg.LogMode != "production" {
		t.Fatalf("production env should log in production mode, got %q", cfg.LogMode)
	}
	if !cfg.Debug || !cfg.AllowProductWrites {
		t.Fatalf("expected flags to be set: %+v", cfg)
	}
	if cfg.MaxRecommendations != 20 {
		t.Fatalf("unparsable value should fall back to default, got %d", cfg.MaxRecommendations)
	}
	if !cfg.Storage().UseHosted() {
		t.Fatalf("hosted backend should be selected when url and key are set")
	}
}
