// Package auth issues accounts and bearer session tokens for the
// table server. Three drivers share one contract: memory for tests
// and single-binary runs, sqlite for local persistence, postgres for
// shared deployments.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service is the account/session contract consumed by the gateway
// and the HTTP handlers.
type Service interface {
	Register(username, password string) (accountID uint64, token string, err error)
	Login(username, password string) (accountID uint64, token string, err error)
	ResolveSession(token string) (accountID uint64, username string, ok bool)
	Logout(token string)
	Close() error
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultSessionTTL = 30 * 24 * time.Hour
	tokenBytes        = 32
)

func driverFromEnv() string {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("AUTH_DRIVER")))
	switch raw {
	case "", DriverMemory, "mem":
		return DriverMemory
	case DriverSQLite, "local":
		return DriverSQLite
	case DriverPostgres, "postgresql", "pg":
		return DriverPostgres
	default:
		return raw
	}
}

func sessionTTLFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("AUTH_SESSION_TTL"))
	if raw == "" {
		return defaultSessionTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl <= 0 {
		return defaultSessionTTL
	}
	return ttl
}

// NewServiceFromEnv selects the driver via AUTH_DRIVER and returns
// the chosen driver name alongside the service for startup logging.
func NewServiceFromEnv() (Service, string, error) {
	driver := driverFromEnv()
	switch driver {
	case DriverMemory:
		return NewMemoryService(), driver, nil
	case DriverSQLite:
		svc, err := NewSQLiteServiceFromEnv()
		return svc, driver, err
	case DriverPostgres:
		svc, err := NewPostgresServiceFromEnv()
		return svc, driver, err
	default:
		return nil, driver, fmt.Errorf("invalid AUTH_DRIVER %q (supported: %s, %s, %s)",
			driver, DriverMemory, DriverSQLite, DriverPostgres)
	}
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_.-]{2,31}$`)

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func validateCredentials(username, password string) error {
	if !usernamePattern.MatchString(strings.TrimSpace(username)) {
		return ErrInvalidUsername
	}
	// bcrypt truncates past 72 bytes.
	if len(password) < 6 || len(password) > 72 {
		return ErrInvalidPassword
	}
	return nil
}

func newToken() string {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
