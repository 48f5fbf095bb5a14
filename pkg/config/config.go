package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	LogDir   string
	HTTPPort string

	// Polymarket API
	GammaURL             string
	ClobURL              string
	ClobWSURL            string
	DataAPIURL           string
	PolygonRPCURL        string
	PolymarketAPIKey     string
	PolymarketSecret     string
	PolymarketPassphrase string
	PrivateKey           string
	ProxyAddress         string
	SignatureType        int

	// LLM
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAIModel    string
	EmbeddingModel string
	LLMRatePerMin  int

	// News
	NewsAPIKey   string
	TavilyAPIKey string

	// Market cache
	MarketCacheTTL time.Duration

	// Trader pipeline
	TraderThreshold  float64
	TraderTradeSize  float64
	TraderEventLimit int
	TraderMaxMarkets int
	TraderMaxSpread  float64
	TraderMinPrice   float64
	TraderMaxPrice   float64
	TraderRelevance  string
	TraderIndexDir   string
	TraderTopK       int

	// Journal
	JournalMode  string // "postgres" or "console"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		LogDir:   getEnvOrDefault("LOG_DIR", "logs"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Polymarket API defaults
		GammaURL:             getEnvOrDefault("GAMMA_API_URL", "https://gamma-api.polymarket.com"),
		ClobURL:              getEnvOrDefault("CLOB_API_URL", "https://clob.polymarket.com"),
		ClobWSURL:            getEnvOrDefault("CLOB_WS_URL", "wss://ws-subscriptions-clob.polymarket.com/ws/market"),
		DataAPIURL:           getEnvOrDefault("DATA_API_URL", "https://data-api.polymarket.com"),
		PolygonRPCURL:        getEnvOrDefault("POLYGON_RPC_URL", "https://polygon-rpc.com"),
		PolymarketAPIKey:     os.Getenv("POLYMARKET_API_KEY"),
		PolymarketSecret:     os.Getenv("POLYMARKET_SECRET"),
		PolymarketPassphrase: os.Getenv("POLYMARKET_PASSPHRASE"),
		PrivateKey:           os.Getenv("POLYGON_WALLET_PRIVATE_KEY"),
		ProxyAddress:         os.Getenv("POLYMARKET_PROXY_ADDRESS"),
		SignatureType:        getIntOrDefault("POLYMARKET_SIGNATURE_TYPE", 0),

		// LLM defaults
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:    getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnvOrDefault("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
		LLMRatePerMin:  getIntOrDefault("LLM_RATE_PER_MIN", 30),

		// News defaults
		NewsAPIKey:   os.Getenv("NEWSAPI_API_KEY"),
		TavilyAPIKey: os.Getenv("TAVILY_API_KEY"),

		// Cache defaults
		MarketCacheTTL: getDurationOrDefault("MARKET_CACHE_TTL", 30*time.Second),

		// Trader defaults
		TraderThreshold:  getFloat64OrDefault("TRADER_CONFIDENCE_THRESHOLD", 0.70),
		TraderTradeSize:  getFloat64OrDefault("TRADER_TRADE_SIZE", 1.0),
		TraderEventLimit: getIntOrDefault("TRADER_EVENT_LIMIT", 25),
		TraderMaxMarkets: getIntOrDefault("TRADER_MAX_MARKETS", 10),
		TraderMaxSpread:  getFloat64OrDefault("TRADER_MAX_SPREAD", 0.10),
		TraderMinPrice:   getFloat64OrDefault("TRADER_MIN_PRICE", 0.05),
		TraderMaxPrice:   getFloat64OrDefault("TRADER_MAX_PRICE", 0.95),
		TraderRelevance:  getEnvOrDefault("TRADER_RELEVANCE_QUERY", ""),
		TraderIndexDir:   getEnvOrDefault("TRADER_INDEX_DIR", "local_db_markets"),
		TraderTopK:       getIntOrDefault("TRADER_RAG_TOP_K", 10),

		// Journal defaults
		JournalMode:  getEnvOrDefault("JOURNAL_MODE", "console"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "polymarket"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "polymarket123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "polymarket_agent"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.GammaURL == "" {
		return fmt.Errorf("GAMMA_API_URL cannot be empty")
	}

	if c.ClobURL == "" {
		return fmt.Errorf("CLOB_API_URL cannot be empty")
	}

	if c.TraderThreshold < 0 || c.TraderThreshold > 1.0 {
		return fmt.Errorf("TRADER_CONFIDENCE_THRESHOLD must be between 0 and 1.0, got %f", c.TraderThreshold)
	}

	if c.TraderMinPrice < 0 || c.TraderMaxPrice > 1.0 || c.TraderMinPrice >= c.TraderMaxPrice {
		return fmt.Errorf("invalid trader price bounds [%f, %f]", c.TraderMinPrice, c.TraderMaxPrice)
	}

	if c.JournalMode != "console" && c.JournalMode != "postgres" {
		return fmt.Errorf("JOURNAL_MODE must be 'console' or 'postgres', got %q", c.JournalMode)
	}

	return nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getFloat64OrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return floatVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}
