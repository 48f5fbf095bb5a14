package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mselser95/polymarket-agent/internal/execution"
	"github.com/mselser95/polymarket-agent/internal/journal"
	"github.com/mselser95/polymarket-agent/internal/rag"
	"github.com/mselser95/polymarket-agent/internal/trader"
	"github.com/mselser95/polymarket-agent/pkg/config"
	"github.com/mselser95/polymarket-agent/pkg/httpserver"
	"github.com/mselser95/polymarket-agent/pkg/wallet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runTraderCmd = &cobra.Command{
	Use:   "run-autonomous-trader",
	Short: "Run the autonomous trading pipeline",
	Long: `Fetches tradeable events, narrows them to relevant markets, scores
each market with the superforecaster and executes the single best trade when
its confidence clears the threshold.

With --dry-run every decision is journaled but nothing is executed. With
--interval the pipeline re-runs on a schedule and /metrics and /health are
served on HTTP_PORT until interrupted.`,
	RunE: runTrader,
}

var (
	traderDryRun    bool
	traderInterval  time.Duration
	traderThreshold float64
)

func init() {
	rootCmd.AddCommand(runTraderCmd)

	runTraderCmd.Flags().BoolVar(&traderDryRun, "dry-run", false, "Journal decisions without executing trades")
	runTraderCmd.Flags().DurationVar(&traderInterval, "interval", 0, "Re-run interval (0 runs once)")
	runTraderCmd.Flags().Float64Var(&traderThreshold, "threshold", -1, "Confidence threshold override")
}

func runTrader(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if traderThreshold >= 0 {
		cfg.TraderThreshold = traderThreshold
	}

	llmClient, err := newLLMClient(cfg, logger)
	if err != nil {
		return err
	}
	gammaClient := newGammaClient(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var executor trader.Executor
	if !traderDryRun {
		executor, err = buildExecutor(ctx, cfg, logger)
		if err != nil {
			return err
		}
	}

	j, err := buildJournal(cfg, logger)
	if err != nil {
		return err
	}
	defer j.Close() //nolint:errcheck

	var retriever trader.Retriever
	if cfg.TraderRelevance != "" {
		retriever = rag.NewStore(llmClient, logger)
	}

	agent := trader.NewAgent(gammaClient, llmClient, executor, retriever, j, trader.Config{
		Threshold:  cfg.TraderThreshold,
		TradeSize:  cfg.TraderTradeSize,
		EventLimit: cfg.TraderEventLimit,
		MaxMarkets: cfg.TraderMaxMarkets,
		MaxSpread:  cfg.TraderMaxSpread,
		MinPrice:   cfg.TraderMinPrice,
		MaxPrice:   cfg.TraderMaxPrice,
		Relevance:  cfg.TraderRelevance,
		IndexDir:   cfg.TraderIndexDir,
		TopK:       cfg.TraderTopK,
		DryRun:     traderDryRun,
	}, logger)

	if traderInterval <= 0 {
		return agent.Run(ctx)
	}

	server := httpserver.New(&httpserver.Config{
		Port:   cfg.HTTPPort,
		Logger: logger,
	})
	go func() {
		err := server.Start()
		if err != nil {
			logger.Error("http-server-failed", zap.Error(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	err = agent.RunLoop(ctx, traderInterval)
	if errors.Is(err, context.Canceled) {
		logger.Info("trader-stopped")
		return nil
	}
	return err
}

// buildExecutor wires the order client for live runs. It refuses to start
// with an empty USDC balance so a misconfigured wallet fails fast instead of
// at submission time.
func buildExecutor(ctx context.Context, cfg *config.Config, logger *zap.Logger) (trader.Executor, error) {
	if cfg.PrivateKey == "" {
		return nil, errors.New("POLYGON_WALLET_PRIVATE_KEY is required for live trading (or use --dry-run)")
	}
	if cfg.PolymarketAPIKey == "" || cfg.PolymarketSecret == "" || cfg.PolymarketPassphrase == "" {
		return nil, errors.New("POLYMARKET_API_KEY/SECRET/PASSPHRASE are required for live trading; run derive-api-creds first")
	}

	orderClient, err := execution.NewOrderClient(&execution.OrderClientConfig{
		BaseURL:       cfg.ClobURL,
		APIKey:        cfg.PolymarketAPIKey,
		Secret:        cfg.PolymarketSecret,
		Passphrase:    cfg.PolymarketPassphrase,
		PrivateKey:    cfg.PrivateKey,
		ProxyAddress:  cfg.ProxyAddress,
		SignatureType: cfg.SignatureType,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build order client: %w", err)
	}

	walletClient, err := wallet.NewClient(cfg.PolygonRPCURL, cfg.DataAPIURL, logger)
	if err != nil {
		return nil, fmt.Errorf("build wallet client: %w", err)
	}

	balances, err := walletClient.GetBalances(ctx, common.HexToAddress(orderClient.Address()))
	if err != nil {
		return nil, fmt.Errorf("check balances: %w", err)
	}
	if balances.USDC.Cmp(big.NewInt(0)) <= 0 {
		return nil, errors.New("wallet has no USDC; fund it or use --dry-run")
	}

	logger.Info("executor-ready",
		zap.String("address", orderClient.Address()),
		zap.Float64("usdc", balances.USDCFloat()))

	return orderClient, nil
}

func buildJournal(cfg *config.Config, logger *zap.Logger) (journal.Storage, error) {
	if cfg.JournalMode == "postgres" {
		return journal.NewPostgresJournal(&journal.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
	}
	return journal.NewConsoleJournal(logger), nil
}
