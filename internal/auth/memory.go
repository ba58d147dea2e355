package auth

import (
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type memoryAccount struct {
	id           uint64
	username     string
	passwordHash []byte
	lastLogin    time.Time
}

type memorySession struct {
	accountID uint64
	expiresAt time.Time
}

// MemoryService keeps accounts and sessions in process memory. It is
// the default driver and the one the tests run against.
type MemoryService struct {
	mu sync.Mutex

	nextID     uint64
	sessionTTL time.Duration
	accounts   map[string]*memoryAccount // normalized username -> account
	byID       map[uint64]*memoryAccount
	sessions   map[string]memorySession
}

func NewMemoryService() *MemoryService {
	return &MemoryService{
		nextID:     100000, // readable non-trivial id range
		sessionTTL: sessionTTLFromEnv(),
		accounts:   make(map[string]*memoryAccount),
		byID:       make(map[uint64]*memoryAccount),
		sessions:   make(map[string]memorySession),
	}
}

func (s *MemoryService) Register(username, password string) (uint64, string, error) {
	if err := validateCredentials(username, password); err != nil {
		return 0, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, "", err
	}
	normalized := normalizeUsername(username)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[normalized]; exists {
		return 0, "", ErrUsernameTaken
	}
	s.nextID++
	acct := &memoryAccount{
		id:           s.nextID,
		username:     normalized,
		passwordHash: hash,
		lastLogin:    time.Now(),
	}
	s.accounts[normalized] = acct
	s.byID[acct.id] = acct
	return acct.id, s.issueLocked(acct.id, time.Now()), nil
}

func (s *MemoryService) Login(username, password string) (uint64, string, error) {
	normalized := normalizeUsername(username)
	if normalized == "" || password == "" {
		return 0, "", ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, exists := s.accounts[normalized]
	if !exists {
		return 0, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)) != nil {
		return 0, "", ErrInvalidCredentials
	}
	now := time.Now()
	acct.lastLogin = now
	return acct.id, s.issueLocked(acct.id, now), nil
}

func (s *MemoryService) ResolveSession(token string) (uint64, string, bool) {
	if token == "" {
		return 0, "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess, exists := s.sessions[token]
	if !exists {
		return 0, "", false
	}
	if !now.Before(sess.expiresAt) {
		delete(s.sessions, token)
		return 0, "", false
	}
	// Sliding expiry: every resolved use extends the session.
	sess.expiresAt = now.Add(s.sessionTTL)
	s.sessions[token] = sess

	acct := s.byID[sess.accountID]
	if acct == nil {
		return 0, "", false
	}
	return acct.id, acct.username, true
}

func (s *MemoryService) Logout(token string) {
	if token == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

func (s *MemoryService) Close() error { return nil }

func (s *MemoryService) issueLocked(accountID uint64, now time.Time) string {
	token := newToken()
	s.sessions[token] = memorySession{
		accountID: accountID,
		expiresAt: now.Add(s.sessionTTL),
	}
	return token
}
