package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mselser95/polymarket-agent/internal/gamma"
	"github.com/mselser95/polymarket-agent/internal/llm"
	"github.com/mselser95/polymarket-agent/pkg/cache"
	"github.com/mselser95/polymarket-agent/pkg/config"
	"github.com/mselser95/polymarket-agent/pkg/types"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
)

// setup loads .env, builds the config and the logger. Every command starts
// here.
func setup() (*config.Config, *zap.Logger, error) {
	err := godotenv.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}

	return cfg, logger, nil
}

// newGammaClient builds a Gamma client backed by a ristretto cache. The
// cache is best-effort: on failure the client runs uncached.
func newGammaClient(cfg *config.Config, logger *zap.Logger) *gamma.Client {
	marketCache, err := cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
		Logger:      logger,
	})
	if err != nil {
		logger.Warn("cache-init-failed", zap.Error(err))
		marketCache = nil
	}

	return gamma.NewClient(&gamma.Config{
		BaseURL:  cfg.GammaURL,
		Cache:    marketCache,
		CacheTTL: cfg.MarketCacheTTL,
		Logger:   logger,
	})
}

func newLLMClient(cfg *config.Config, logger *zap.Logger) (*llm.Client, error) {
	return llm.NewClient(&llm.Config{
		APIKey:         cfg.OpenAIAPIKey,
		BaseURL:        cfg.OpenAIBaseURL,
		Model:          cfg.OpenAIModel,
		EmbeddingModel: cfg.EmbeddingModel,
		RatePerMin:     cfg.LLMRatePerMin,
		Logger:         logger,
	})
}

func renderMarketsTable(markets []types.Market) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Question", "Spread", "Volume 24h", "Outcomes", "Prices")

	for i := range markets {
		m := &markets[i]
		table.Append(
			m.ID,
			truncateText(m.Question, 60),
			fmt.Sprintf("%.3f", m.Spread),
			fmt.Sprintf("%.0f", m.Volume24hr),
			strings.Join(m.Outcomes, " / "),
			joinPrices(m.OutcomePrices),
		)
	}

	table.Render()
}

func renderEventsTable(events []types.Event) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Title", "Markets", "Volume 24h", "End Date")

	for i := range events {
		e := &events[i]
		table.Append(
			e.ID,
			truncateText(e.Title, 60),
			strconv.Itoa(len(e.Markets)),
			fmt.Sprintf("%.0f", e.Volume24hr),
			e.EndDate.Format("2006-01-02"),
		)
	}

	table.Render()
}

func truncateText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func joinPrices(prices []float64) string {
	parts := make([]string, len(prices))
	for i, p := range prices {
		parts[i] = fmt.Sprintf("%.3f", p)
	}
	return strings.Join(parts, " / ")
}
