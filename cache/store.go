package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/report-core/schema"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// Store persists processed documents so a restarted process can warm the
// in-memory cache instead of re-parsing. Persistence is best effort and
// optional; the pipeline contract never depends on it.
type Store struct {
	db *sql.DB
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS processed_documents (
	fingerprint  TEXT PRIMARY KEY,
	payload      BLOB NOT NULL,
	processed_at TEXT NOT NULL
);`

func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init store schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Put(ctx context.Context, doc *schema.ProcessedDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal processed document: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO processed_documents (fingerprint, payload, processed_at) VALUES (?, ?, ?)`,
		doc.Doc.Fingerprint, payload, doc.ProcessedAt.Format(time.RFC3339))
	return err
}

// Get returns (nil, nil) when the fingerprint has never been stored.
func (s *Store) Get(ctx context.Context, fingerprint string) (*schema.ProcessedDocument, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM processed_documents WHERE fingerprint = ?`, fingerprint).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc schema.ProcessedDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal processed document: %w", err)
	}
	return &doc, nil
}

func (s *Store) Delete(ctx context.Context, fingerprint string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM processed_documents WHERE fingerprint = ?`, fingerprint)
	return err
}

// Warm loads every persisted document into the cache and returns how many
// made it in. A row that fails to decode is skipped, not fatal.
func (s *Store) Warm(ctx context.Context, c *Cache) (int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT fingerprint, payload FROM processed_documents`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	loaded := 0
	for rows.Next() {
		var fingerprint string
		var payload []byte
		if err := rows.Scan(&fingerprint, &payload); err != nil {
			return loaded, err
		}

		var doc schema.ProcessedDocument
		if err := json.Unmarshal(payload, &doc); err != nil {
			logger.Log.Warn("Skipping undecodable cache row",
				zap.String("fingerprint", fingerprint), zap.Error(err))
			continue
		}
		c.Put(fingerprint, &doc)
		loaded++
	}
	return loaded, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
