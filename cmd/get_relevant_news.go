package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mselser95/polymarket-agent/internal/news"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var getRelevantNewsCmd = &cobra.Command{
	Use:   "get-relevant-news <keywords>",
	Short: "Fetch recent news for the given keywords",
	Long: `Searches NewsAPI for recent articles matching the keywords. Falls back
to Tavily when no NewsAPI key is configured.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGetRelevantNews,
}

func init() {
	rootCmd.AddCommand(getRelevantNewsCmd)
}

func runGetRelevantNews(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	keywords := strings.Join(args, " ")

	var searcher news.Searcher
	switch {
	case cfg.NewsAPIKey != "":
		searcher = news.NewNewsAPIClient(cfg.NewsAPIKey, "", logger)
	case cfg.TavilyAPIKey != "":
		logger.Info("newsapi-key-missing-using-tavily")
		searcher = news.NewTavilyClient(cfg.TavilyAPIKey, "", logger)
	default:
		return errors.New("no news provider configured: set NEWSAPI_API_KEY or TAVILY_API_KEY")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	articles, err := searcher.Search(ctx, keywords)
	if err != nil {
		return err
	}

	logger.Info("news-fetched", zap.String("keywords", keywords), zap.Int("count", len(articles)))

	if len(articles) == 0 {
		fmt.Println("No articles found.")
		return nil
	}

	for _, a := range articles {
		fmt.Printf("── %s\n", a.Title)
		if a.Description != "" {
			fmt.Printf("   %s\n", a.Description)
		}
		fmt.Printf("   %s | %s | %s\n\n", a.Source, a.PublishedAt, a.URL)
	}

	return nil
}
