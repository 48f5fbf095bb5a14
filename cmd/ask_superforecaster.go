package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mselser95/polymarket-agent/internal/news"
	"github.com/mselser95/polymarket-agent/pkg/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var askSuperforecasterCmd = &cobra.Command{
	Use:   "ask-superforecaster <event_title> <question> <outcome>",
	Short: "Ask the superforecaster for a calibrated probability",
	Long: `Asks the LLM, prompted as a professional superforecaster, for the
probability that the given outcome of a market question resolves true. When
a news provider is configured, recent articles are included as evidence.
The full rationale is printed along with the parsed probability.`,
	Args: cobra.ExactArgs(3),
	RunE: runAskSuperforecaster,
}

func init() {
	rootCmd.AddCommand(askSuperforecasterCmd)
}

func runAskSuperforecaster(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	client, err := newLLMClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	// News context is best-effort: a failed or unconfigured provider never
	// blocks the forecast.
	var articles []types.NewsArticle
	var searcher news.Searcher
	switch {
	case cfg.NewsAPIKey != "":
		searcher = news.NewNewsAPIClient(cfg.NewsAPIKey, "", logger)
	case cfg.TavilyAPIKey != "":
		searcher = news.NewTavilyClient(cfg.TavilyAPIKey, "", logger)
	}
	if searcher != nil {
		articles, err = searcher.Search(ctx, args[1])
		if err != nil {
			logger.Warn("news-lookup-failed", zap.Error(err))
			articles = nil
		}
	}

	forecast, err := client.SuperforecastWithNews(ctx, args[0], args[1], args[2], articles)
	if err != nil {
		return err
	}

	fmt.Println(forecast.Rationale)
	fmt.Println()
	if forecast.Parsed {
		fmt.Printf("Parsed probability: %.4f\n", forecast.Probability)
	} else {
		fmt.Println("Parsed probability: none (response contained no usable probability)")
	}

	return nil
}
