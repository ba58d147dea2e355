package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

const defaultAuthDBName = "holdem_auth.db"

// SQLiteService persists accounts and sessions in a local sqlite
// file, good for single-host deployments that must survive restarts.
type SQLiteService struct {
	db         *sql.DB
	sessionTTL time.Duration
}

func NewSQLiteServiceFromEnv() (*SQLiteService, error) {
	path := strings.TrimSpace(os.Getenv("AUTH_SQLITE_PATH"))
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "holdem-table", defaultAuthDBName)
	}
	return NewSQLiteService(path, sessionTTLFromEnv())
}

func NewSQLiteService(path string, sessionTTL time.Duration) (*SQLiteService, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
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
		`PRAGMA foreign_keys = ON;`,
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
	if err := ensureAuthSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteService{db: db, sessionTTL: sessionTTL}, nil
}

func ensureAuthSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS accounts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at_ms INTEGER NOT NULL,
    last_login_at_ms INTEGER
)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_accounts_username ON accounts(lower(username))`,
		`
CREATE TABLE IF NOT EXISTS sessions (
    token TEXT PRIMARY KEY,
    account_id INTEGER NOT NULL,
    issued_at_ms INTEGER NOT NULL,
    expires_at_ms INTEGER NOT NULL,
    FOREIGN KEY(account_id) REFERENCES accounts(id) ON DELETE CASCADE
)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_account ON sessions(account_id, expires_at_ms DESC)`,
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

func (s *SQLiteService) Register(username, password string) (uint64, string, error) {
	if err := validateCredentials(username, password); err != nil {
		return 0, "", err
	}
	normalized := normalizeUsername(username)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, "", err
	}
	defer tx.Rollback()

	nowMs := time.Now().UTC().UnixMilli()
	res, err := tx.ExecContext(ctx, `
INSERT INTO accounts (username, password_hash, created_at_ms, last_login_at_ms)
VALUES (?, ?, ?, ?)
`, normalized, string(hash), nowMs, nowMs)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return 0, "", ErrUsernameTaken
		}
		return 0, "", err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, "", err
	}

	token, err := s.issueSessionTx(ctx, tx, uint64(id), nowMs)
	if err != nil {
		return 0, "", err
	}
	if err := tx.Commit(); err != nil {
		return 0, "", err
	}
	return uint64(id), token, nil
}

func (s *SQLiteService) Login(username, password string) (uint64, string, error) {
	normalized := normalizeUsername(username)
	if normalized == "" || password == "" {
		return 0, "", ErrInvalidCredentials
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var accountID uint64
	var hash string
	err := s.db.QueryRowContext(ctx, `
SELECT id, password_hash FROM accounts WHERE lower(username) = ?
`, normalized).Scan(&accountID, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", ErrInvalidCredentials
		}
		return 0, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return 0, "", ErrInvalidCredentials
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, "", err
	}
	defer tx.Rollback()

	nowMs := time.Now().UTC().UnixMilli()
	if _, err := tx.ExecContext(ctx, `
UPDATE accounts SET last_login_at_ms = ? WHERE id = ?
`, nowMs, accountID); err != nil {
		return 0, "", err
	}
	token, err := s.issueSessionTx(ctx, tx, accountID, nowMs)
	if err != nil {
		return 0, "", err
	}
	if err := tx.Commit(); err != nil {
		return 0, "", err
	}
	return accountID, token, nil
}

func (s *SQLiteService) ResolveSession(token string) (uint64, string, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, "", false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	nowMs := time.Now().UTC().UnixMilli()
	res, err := s.db.ExecContext(ctx, `
UPDATE sessions SET expires_at_ms = ? WHERE token = ? AND expires_at_ms > ?
`, nowMs+s.sessionTTL.Milliseconds(), token, nowMs)
	if err != nil {
		return 0, "", false
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return 0, "", false
	}

	var accountID uint64
	var username string
	err = s.db.QueryRowContext(ctx, `
SELECT a.id, a.username
FROM sessions AS s
JOIN accounts AS a ON a.id = s.account_id
WHERE s.token = ?
`, token).Scan(&accountID, &username)
	if err != nil {
		return 0, "", false
	}
	return accountID, username, true
}

func (s *SQLiteService) Logout(token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _ = s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
}

func (s *SQLiteService) issueSessionTx(ctx context.Context, tx *sql.Tx, accountID uint64, nowMs int64) (string, error) {
	expiresAtMs := nowMs + s.sessionTTL.Milliseconds()
	for i := 0; i < 5; i++ {
		token := newToken()
		_, err := tx.ExecContext(ctx, `
INSERT INTO sessions (token, account_id, issued_at_ms, expires_at_ms)
VALUES (?, ?, ?, ?)
`, token, accountID, nowMs, expiresAtMs)
		if err != nil {
			if isSQLiteUniqueViolation(err) {
				continue
			}
			return "", err
		}
		return token, nil
	}
	return "", fmt.Errorf("failed to generate unique session token")
}

func isSQLiteUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
