package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mselser95/polymarket-agent/internal/rag"
	"github.com/spf13/cobra"
)

var queryRAGCmd = &cobra.Command{
	Use:   "query-local-markets-rag <directory> <query>",
	Short: "Query a local market retrieval index",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runQueryRAG,
}

var queryRAGTopK int

func init() {
	rootCmd.AddCommand(queryRAGCmd)

	queryRAGCmd.Flags().IntVarP(&queryRAGTopK, "top-k", "k", 5, "Results returned")
}

func runQueryRAG(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	llmClient, err := newLLMClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	store := rag.NewStore(llmClient, logger)
	results, err := store.Query(ctx, args[0], strings.Join(args[1:], " "), queryRAGTopK)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for i, r := range results {
		fmt.Printf("%d. [%.4f] market %s\n", i+1, r.Score, r.SourceID)
		fmt.Printf("   %s\n\n", truncateText(strings.ReplaceAll(r.Text, "\n", " "), 160))
	}

	return nil
}
