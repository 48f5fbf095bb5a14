package config

import (
	"testing"
	"time"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.GammaURL != "https://gamma-api.polymarket.com" {
		t.Errorf("GammaURL = %q", cfg.GammaURL)
	}
	if cfg.ClobURL != "https://clob.polymarket.com" {
		t.Errorf("ClobURL = %q", cfg.ClobURL)
	}
	if cfg.TraderThreshold != 0.70 {
		t.Errorf("TraderThreshold = %f, want 0.70", cfg.TraderThreshold)
	}
	if cfg.MarketCacheTTL != 30*time.Second {
		t.Errorf("MarketCacheTTL = %v, want 30s", cfg.MarketCacheTTL)
	}
	if cfg.JournalMode != "console" {
		t.Errorf("JournalMode = %q, want console", cfg.JournalMode)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("GAMMA_API_URL", "http://localhost:9999")
	t.Setenv("TRADER_CONFIDENCE_THRESHOLD", "0.85")
	t.Setenv("TRADER_EVENT_LIMIT", "50")
	t.Setenv("MARKET_CACHE_TTL", "2m")
	t.Setenv("JOURNAL_MODE", "postgres")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.GammaURL != "http://localhost:9999" {
		t.Errorf("GammaURL = %q", cfg.GammaURL)
	}
	if cfg.TraderThreshold != 0.85 {
		t.Errorf("TraderThreshold = %f", cfg.TraderThreshold)
	}
	if cfg.TraderEventLimit != 50 {
		t.Errorf("TraderEventLimit = %d", cfg.TraderEventLimit)
	}
	if cfg.MarketCacheTTL != 2*time.Minute {
		t.Errorf("MarketCacheTTL = %v", cfg.MarketCacheTTL)
	}
	if cfg.JournalMode != "postgres" {
		t.Errorf("JournalMode = %q", cfg.JournalMode)
	}
}

func TestLoadFromEnvMalformedValuesFallBack(t *testing.T) {
	t.Setenv("TRADER_CONFIDENCE_THRESHOLD", "not-a-number")
	t.Setenv("TRADER_EVENT_LIMIT", "many")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.TraderThreshold != 0.70 {
		t.Errorf("TraderThreshold = %f, want default 0.70", cfg.TraderThreshold)
	}
	if cfg.TraderEventLimit != 25 {
		t.Errorf("TraderEventLimit = %d, want default 25", cfg.TraderEventLimit)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty-gamma-url", func(c *Config) { c.GammaURL = "" }, true},
		{"empty-clob-url", func(c *Config) { c.ClobURL = "" }, true},
		{"threshold-too-high", func(c *Config) { c.TraderThreshold = 1.5 }, true},
		{"threshold-negative", func(c *Config) { c.TraderThreshold = -0.1 }, true},
		{"inverted-price-bounds", func(c *Config) { c.TraderMinPrice = 0.9; c.TraderMaxPrice = 0.1 }, true},
		{"bad-journal-mode", func(c *Config) { c.JournalMode = "sqlite" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFromEnv()
			if err != nil {
				t.Fatalf("LoadFromEnv: %v", err)
			}

			tt.mutate(cfg)

			err = cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
