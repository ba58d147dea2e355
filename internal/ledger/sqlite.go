package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite"

	"holdem-table/history"
)

const defaultLedgerDBName = "holdem_ledger.db"

// SQLiteService is the persistent ledger driver. Hot tapes are kept
// in an LRU cache so hand review does not hit the database for every
// "show me that last hand" click.
type SQLiteService struct {
	db          *sql.DB
	recentLimit int
	tapes       *lru.Cache[string, *history.Tape]
}

func NewSQLiteServiceFromEnv() (*SQLiteService, error) {
	path := strings.TrimSpace(os.Getenv("LEDGER_SQLITE_PATH"))
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "holdem-table", defaultLedgerDBName)
	}
	return NewSQLiteService(path)
}

func NewSQLiteService(path string) (*SQLiteService, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if path != ":memory:" {
		if parent := filepath.Dir(path); parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureLedgerSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	cache, err := lru.New[string, *history.Tape](envIntOrDefault("LEDGER_CACHE_SIZE", defaultCacheSize))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteService{
		db:          db,
		recentLimit: envIntOrDefault("LEDGER_RECENT_LIMIT", defaultRecentLimit),
		tapes:       cache,
	}, nil
}

func ensureLedgerSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS hand_tapes (
    hand_id TEXT PRIMARY KEY,
    table_id TEXT NOT NULL,
    tape_blob BLOB NOT NULL,
    created_at_ms INTEGER NOT NULL
)`,
		`
CREATE TABLE IF NOT EXISTS hand_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    account_id INTEGER NOT NULL,
    hand_id TEXT NOT NULL,
    table_id TEXT NOT NULL,
    played_at_ms INTEGER NOT NULL,
    pot INTEGER NOT NULL DEFAULT 0,
    delta INTEGER NOT NULL DEFAULT 0,
    won INTEGER NOT NULL DEFAULT 0,
    UNIQUE (account_id, hand_id)
)`,
		`CREATE INDEX IF NOT EXISTS idx_hand_history_recent ON hand_history(account_id, played_at_ms DESC)`,
		`
CREATE TABLE IF NOT EXISTS balance_journal (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    account_id INTEGER NOT NULL,
    hand_id TEXT NOT NULL,
    delta INTEGER NOT NULL,
    created_at_ms INTEGER NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_balance_journal_account ON balance_journal(account_id)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteService) RecordHand(ctx context.Context, tape *history.Tape, results map[uint64]Summary) error {
	if tape == nil || strings.TrimSpace(tape.HandID) == "" {
		return fmt.Errorf("tape with hand id is required")
	}
	blob, err := tape.Encode()
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	nowMs := time.Now().UTC().UnixMilli()
	if _, err := tx.ExecContext(ctx, `
INSERT INTO hand_tapes (hand_id, table_id, tape_blob, created_at_ms)
VALUES (?, ?, ?, ?)
ON CONFLICT (hand_id) DO NOTHING
`, tape.HandID, tape.TableID, blob, nowMs); err != nil {
		return err
	}

	for accountID, sum := range results {
		if accountID == 0 {
			continue
		}
		playedAtMs := sum.PlayedAt.UTC().UnixMilli()
		if sum.PlayedAt.IsZero() {
			playedAtMs = nowMs
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO hand_history (account_id, hand_id, table_id, played_at_ms, pot, delta, won)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (account_id, hand_id) DO UPDATE
SET pot = excluded.pot,
    delta = excluded.delta,
    won = excluded.won
`, accountID, tape.HandID, tape.TableID, playedAtMs, sum.Pot, sum.Delta, boolToInt(sum.Won)); err != nil {
			return err
		}
		if sum.Delta != 0 {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO balance_journal (account_id, hand_id, delta, created_at_ms)
VALUES (?, ?, ?, ?)
`, accountID, tape.HandID, sum.Delta, nowMs); err != nil {
				return err
			}
		}
		if s.recentLimit > 0 {
			if _, err := tx.ExecContext(ctx, `
DELETE FROM hand_history
WHERE account_id = ?
  AND id IN (
      SELECT id FROM hand_history
      WHERE account_id = ?
      ORDER BY played_at_ms DESC, id DESC
      LIMIT -1 OFFSET ?
  )
`, accountID, accountID, s.recentLimit); err != nil {
				log.Printf("[Ledger] trim history failed: account=%d err=%v", accountID, err)
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.tapes.Add(tape.HandID, tape)
	return nil
}

func (s *SQLiteService) RecentHands(ctx context.Context, accountID uint64, limit int) ([]Summary, error) {
	if accountID == 0 {
		return []Summary{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT hand_id, table_id, played_at_ms, pot, delta, won
FROM hand_history
WHERE account_id = ?
ORDER BY played_at_ms DESC, id DESC
LIMIT ?
`, accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Summary, 0, limit)
	for rows.Next() {
		var item Summary
		var playedAtMs int64
		var won int64
		if err := rows.Scan(&item.HandID, &item.TableID, &playedAtMs, &item.Pot, &item.Delta, &won); err != nil {
			return nil, err
		}
		item.PlayedAt = time.UnixMilli(playedAtMs).UTC()
		item.Won = won == 1
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLiteService) GetHand(ctx context.Context, accountID uint64, handID string) (*history.Tape, error) {
	if accountID == 0 || strings.TrimSpace(handID) == "" {
		return nil, ErrNotFound
	}

	// Only accounts that played the hand may fetch its tape.
	var exists int
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(1) FROM hand_history WHERE account_id = ? AND hand_id = ?
`, accountID, handID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	if tape, ok := s.tapes.Get(handID); ok {
		return tape, nil
	}

	var blob []byte
	err = s.db.QueryRowContext(ctx, `
SELECT tape_blob FROM hand_tapes WHERE hand_id = ?
`, handID).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	tape, err := history.Decode(blob)
	if err != nil {
		return nil, err
	}
	s.tapes.Add(handID, tape)
	return tape, nil
}

func (s *SQLiteService) Balance(ctx context.Context, accountID uint64) (int64, error) {
	if accountID == 0 {
		return 0, nil
	}
	var balance sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
SELECT SUM(delta) FROM balance_journal WHERE account_id = ?
`, accountID).Scan(&balance)
	if err != nil {
		return 0, err
	}
	return balance.Int64, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
