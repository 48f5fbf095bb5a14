package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mselser95/polymarket-agent/internal/rag"
	"github.com/spf13/cobra"
)

var createRAGCmd = &cobra.Command{
	Use:   "create-local-markets-rag <directory>",
	Short: "Build a local retrieval index over open markets",
	Long: `Fetches open markets from the Gamma API, embeds their question and
description text, and persists the index under the given directory.
Re-running replaces the previous index.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreateRAG,
}

var createRAGLimit int

func init() {
	rootCmd.AddCommand(createRAGCmd)

	createRAGCmd.Flags().IntVarP(&createRAGLimit, "limit", "l", 100, "Markets indexed")
}

func runCreateRAG(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	llmClient, err := newLLMClient(cfg, logger)
	if err != nil {
		return err
	}
	gammaClient := newGammaClient(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Second)
	defer cancel()

	markets, err := gammaClient.TrendingMarkets(ctx, createRAGLimit)
	if err != nil {
		return err
	}

	records := make([]rag.Record, 0, len(markets))
	for i := range markets {
		text := markets[i].Question
		if markets[i].Description != "" {
			text += "\n" + markets[i].Description
		}
		records = append(records, rag.Record{
			SourceID: markets[i].ID,
			Text:     text,
		})
	}

	store := rag.NewStore(llmClient, logger)
	err = store.Build(ctx, args[0], records)
	if err != nil {
		return err
	}

	fmt.Printf("Indexed %d markets under %s\n", len(records), args[0])
	return nil
}
