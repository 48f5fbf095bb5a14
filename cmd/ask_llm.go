package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var askLLMCmd = &cobra.Command{
	Use:   "ask-llm <question>",
	Short: "Ask the LLM a free-form question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAskLLM,
}

func init() {
	rootCmd.AddCommand(askLLMCmd)
}

func runAskLLM(cmd *cobra.Command, args []string) error {
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

	answer, err := client.Ask(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}
