package journal

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/mselser95/polymarket-agent/pkg/types"
	"go.uber.org/zap"
)

// PostgresJournal implements Storage using PostgreSQL.
type PostgresJournal struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresJournal creates a new PostgreSQL journal.
func NewPostgresJournal(cfg *PostgresConfig) (*PostgresJournal, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-journal-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresJournal{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// RecordDecision stores a scored decision.
func (p *PostgresJournal) RecordDecision(ctx context.Context, d *types.TradeDecision) error {
	query := `
		INSERT INTO trade_decisions (
			run_id, market_id, question, outcome, token_id,
			price, confidence, edge, rationale, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
	`

	_, err := p.db.ExecContext(ctx, query,
		d.RunID,
		d.MarketID,
		d.Question,
		d.Outcome,
		d.TokenID,
		d.Price,
		d.Confidence,
		d.Edge,
		d.Rationale,
		d.CreatedAt,
	)
	if err != nil {
		return &types.StorageError{Path: "trade_decisions", Op: "insert", Err: err}
	}

	p.logger.Debug("decision-recorded",
		zap.String("run-id", d.RunID),
		zap.String("market-id", d.MarketID))

	return nil
}

// RecordTrade stores a submitted order for a decision.
func (p *PostgresJournal) RecordTrade(ctx context.Context, d *types.TradeDecision, orderID string, size float64) error {
	query := `
		INSERT INTO trades (
			run_id, market_id, outcome, token_id, order_id, size, confidence, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	_, err := p.db.ExecContext(ctx, query,
		d.RunID,
		d.MarketID,
		d.Outcome,
		d.TokenID,
		orderID,
		size,
		d.Confidence,
		d.CreatedAt,
	)
	if err != nil {
		return &types.StorageError{Path: "trades", Op: "insert", Err: err}
	}

	p.logger.Info("trade-recorded",
		zap.String("run-id", d.RunID),
		zap.String("order-id", orderID))

	return nil
}

// Close closes the database connection.
func (p *PostgresJournal) Close() error {
	p.logger.Info("closing-postgres-journal")
	return p.db.Close()
}
