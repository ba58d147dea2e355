// Package ledger persists finished hands and chip movements per
// account. The live table appends here after every settled round so
// players can review past hands and the lobby can show balances.
package ledger

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"holdem-table/history"
)

const (
	defaultRecentLimit = 200
	defaultCacheSize   = 128
)

var ErrNotFound = errors.New("not found")

// Summary is the listing row for a finished hand, small enough to
// return in bulk without the tape.
type Summary struct {
	HandID   string    `json:"hand_id"`
	TableID  string    `json:"table_id"`
	PlayedAt time.Time `json:"played_at"`
	Pot      int64     `json:"pot"`
	Delta    int64     `json:"delta"`
	Won      bool      `json:"won"`
}

type Service interface {
	Close() error

	// RecordHand stores the tape and one summary row per listed
	// account, and journals each account's chip delta.
	RecordHand(ctx context.Context, tape *history.Tape, results map[uint64]Summary) error

	RecentHands(ctx context.Context, accountID uint64, limit int) ([]Summary, error)
	GetHand(ctx context.Context, accountID uint64, handID string) (*history.Tape, error)
	Balance(ctx context.Context, accountID uint64) (int64, error)
}

// NewServiceFromEnv pairs the ledger driver with the auth driver:
// memory auth gets the no-op ledger, everything else gets sqlite.
func NewServiceFromEnv(authDriver string) (Service, string, error) {
	switch strings.ToLower(strings.TrimSpace(authDriver)) {
	case "", "memory", "mem":
		return &noopService{}, "noop", nil
	default:
		svc, err := NewSQLiteServiceFromEnv()
		if err != nil {
			return nil, "", err
		}
		return svc, "sqlite", nil
	}
}

type noopService struct{}

func (n *noopService) Close() error { return nil }

func (n *noopService) RecordHand(context.Context, *history.Tape, map[uint64]Summary) error {
	return nil
}

func (n *noopService) RecentHands(context.Context, uint64, int) ([]Summary, error) {
	return []Summary{}, nil
}

func (n *noopService) GetHand(context.Context, uint64, string) (*history.Tape, error) {
	return nil, ErrNotFound
}

func (n *noopService) Balance(context.Context, uint64) (int64, error) {
	return 0, nil
}

func envIntOrDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
