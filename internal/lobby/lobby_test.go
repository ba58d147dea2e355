package lobby

import (
	"testing"
	"time"

	"holdem-table/internal/table"
)

func testLobby() *Lobby {
	return New(table.Config{
		SmallBlind:    1,
		BigBlind:      2,
		BuyIn:         200,
		Seats:         3,
		Seed:          42,
		ActionTimeout: time.Second,
	}, nil)
}

func noopBroadcast(accountID uint64, data []byte) {}

func TestLobby_QuickStartCreatesTable(t *testing.T) {
	l := testLobby()
	defer l.Shutdown()

	tbl, err := l.QuickStart(1, "alice", noopBroadcast)
	if err != nil {
		t.Fatalf("QuickStart: %v", err)
	}
	if tbl == nil || tbl.ID == "" {
		t.Fatal("expected a table with an id")
	}
	if got := l.GetTable(tbl.ID); got != tbl {
		t.Fatalf("GetTable returned %v, want the created table", got)
	}
	if ids := l.ListTables(); len(ids) != 1 {
		t.Fatalf("ListTables = %v, want 1 entry", ids)
	}
}

func TestLobby_QuickStartReusesOpenTable(t *testing.T) {
	l := testLobby()
	defer l.Shutdown()

	first, err := l.QuickStart(1, "alice", noopBroadcast)
	if err != nil {
		t.Fatalf("QuickStart 1: %v", err)
	}
	second, err := l.QuickStart(2, "bob", noopBroadcast)
	if err != nil {
		t.Fatalf("QuickStart 2: %v", err)
	}
	if first != second {
		t.Fatal("expected both accounts on the same unstarted table")
	}
}

func TestLobby_QuickStartSkipsStartedTable(t *testing.T) {
	l := testLobby()
	defer l.Shutdown()

	first, err := l.QuickStart(1, "alice", noopBroadcast)
	if err != nil {
		t.Fatalf("QuickStart 1: %v", err)
	}
	if err := first.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	second, err := l.QuickStart(2, "bob", noopBroadcast)
	if err != nil {
		t.Fatalf("QuickStart 2: %v", err)
	}
	if first == second {
		t.Fatal("expected a fresh table once the first one started")
	}
}

func TestLobby_ShutdownStopsTables(t *testing.T) {
	l := testLobby()
	tbl, err := l.QuickStart(1, "alice", noopBroadcast)
	if err != nil {
		t.Fatalf("QuickStart: %v", err)
	}
	l.Shutdown()
	if !tbl.IsClosed() {
		t.Fatal("expected table closed after shutdown")
	}
	if ids := l.ListTables(); len(ids) != 0 {
		t.Fatalf("ListTables after shutdown = %v, want empty", ids)
	}
}
