// Package lobby assigns accounts to tables: quick-start matchmaking
// into an open table, or a fresh one when none has room.
package lobby

import (
	"log"
	"sync"

	"holdem-table/internal/ledger"
	"holdem-table/internal/table"
)

type Lobby struct {
	mu     sync.RWMutex
	tables map[string]*table.Table

	defaultConfig table.Config
	ledger        ledger.Service
}

func New(defaultConfig table.Config, ledgerService ledger.Service) *Lobby {
	return &Lobby{
		tables:        make(map[string]*table.Table),
		defaultConfig: defaultConfig,
		ledger:        ledgerService,
	}
}

// QuickStart seats the account at a table that has not dealt yet and
// still has room, creating one when none qualifies. Closed tables are
// swept on the way through.
func (l *Lobby) QuickStart(accountID uint64, name string, broadcastFn func(accountID uint64, data []byte)) (*table.Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for id, t := range l.tables {
		if t.IsClosed() {
			delete(l.tables, id)
			continue
		}
		if t.Started() {
			continue
		}
		if err := t.Join(accountID, name); err != nil {
			continue
		}
		log.Printf("[Lobby] QuickStart: account %d joined table %s", accountID, t.ID)
		return t, nil
	}

	t := table.New("", l.defaultConfig, broadcastFn, l.ledger)
	if err := t.Join(accountID, name); err != nil {
		t.Stop()
		return nil, err
	}
	l.tables[t.ID] = t

	log.Printf("[Lobby] QuickStart: account %d created table %s", accountID, t.ID)
	return t, nil
}

// GetTable returns a table by ID, or nil.
func (l *Lobby) GetTable(tableID string) *table.Table {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tables[tableID]
}

// ListTables returns all live table IDs.
func (l *Lobby) ListTables() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make([]string, 0, len(l.tables))
	for id := range l.tables {
		ids = append(ids, id)
	}
	return ids
}

// Shutdown stops every table.
func (l *Lobby) Shutdown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, t := range l.tables {
		t.Stop()
		delete(l.tables, id)
	}
}
