// Package rag maintains a local vector-retrieval index over market and
// event text. Embeddings come from an external provider; vectors and texts
// persist in a SQLite file so indexes survive between runs.
//
// There is no locking discipline: concurrent Build and Query against the
// same directory is undefined.
package rag

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/mselser95/polymarket-agent/pkg/types"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const indexFileName = "index.db"

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    source_id TEXT NOT NULL,
    body      TEXT NOT NULL,
    embedding BLOB NOT NULL
);
`

// Embedder turns texts into index-aligned embedding vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Record is a text chunk plus the market/event id it came from.
type Record struct {
	SourceID string
	Text     string
}

// Result is a retrieved text with its cosine similarity to the query.
type Result struct {
	SourceID string
	Text     string
	Score    float64
}

// Store builds and queries on-disk retrieval indexes.
type Store struct {
	embedder Embedder
	logger   *zap.Logger
}

// NewStore creates a retrieval store using the given embedder.
func NewStore(embedder Embedder, logger *zap.Logger) *Store {
	return &Store{
		embedder: embedder,
		logger:   logger,
	}
}

// Build embeds every record and persists the index under dir, replacing any
// existing index there. Duplicate texts are kept as-is.
func (s *Store) Build(ctx context.Context, dir string, records []Record) error {
	if len(records) == 0 {
		return &types.StorageError{Path: dir, Op: "build", Err: fmt.Errorf("no records to index")}
	}

	texts := make([]string, len(records))
	for i := range records {
		texts[i] = records[i].Text
	}

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed records: %w", err)
	}

	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return &types.StorageError{Path: dir, Op: "build", Err: err}
	}

	path := filepath.Join(dir, indexFileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &types.StorageError{Path: path, Op: "build", Err: err}
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, schema)
	if err != nil {
		return &types.StorageError{Path: path, Op: "build", Err: fmt.Errorf("apply schema: %w", err)}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return &types.StorageError{Path: path, Op: "build", Err: err}
	}
	defer tx.Rollback()

	// Rebuild replaces the previous index wholesale.
	_, err = tx.ExecContext(ctx, `DELETE FROM documents`)
	if err != nil {
		return &types.StorageError{Path: path, Op: "build", Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO documents (source_id, body, embedding) VALUES (?, ?, ?)`)
	if err != nil {
		return &types.StorageError{Path: path, Op: "build", Err: err}
	}
	defer stmt.Close()

	for i := range records {
		_, err = stmt.ExecContext(ctx, records[i].SourceID, records[i].Text, encodeVector(vectors[i]))
		if err != nil {
			return &types.StorageError{Path: path, Op: "build", Err: fmt.Errorf("insert record %d: %w", i, err)}
		}
	}

	err = tx.Commit()
	if err != nil {
		return &types.StorageError{Path: path, Op: "build", Err: err}
	}

	s.logger.Info("rag-index-built",
		zap.String("dir", dir),
		zap.Int("records", len(records)))

	return nil
}

// Query embeds the query text and returns the k nearest stored texts by
// cosine similarity, nearest first.
func (s *Store) Query(ctx context.Context, dir, query string, k int) ([]Result, error) {
	path := filepath.Join(dir, indexFileName)
	_, err := os.Stat(path)
	if err != nil {
		return nil, &types.StorageError{Path: path, Op: "query", Err: err}
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	queryVec := vectors[0]

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &types.StorageError{Path: path, Op: "query", Err: err}
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT source_id, body, embedding FROM documents`)
	if err != nil {
		return nil, &types.StorageError{Path: path, Op: "query", Err: err}
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			sourceID string
			body     string
			blob     []byte
		)
		err = rows.Scan(&sourceID, &body, &blob)
		if err != nil {
			return nil, &types.StorageError{Path: path, Op: "query", Err: err}
		}

		vec, err := decodeVector(blob)
		if err != nil {
			return nil, &types.StorageError{Path: path, Op: "query", Err: err}
		}

		results = append(results, Result{
			SourceID: sourceID,
			Text:     body,
			Score:    cosine(queryVec, vec),
		})
	}
	err = rows.Err()
	if err != nil {
		return nil, &types.StorageError{Path: path, Op: "query", Err: err}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if k > 0 && len(results) > k {
		results = results[:k]
	}

	return results, nil
}

func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("corrupt embedding: %d bytes", len(blob))
	}
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[4*i:]))
	}
	return vec, nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
