package holdem

import (
	"errors"
	"testing"

	"holdem-table/card"
)

func TestPostBet_RefusesOverdraft(t *testing.T) {
	p := &Player{id: 1, name: "A", funds: 50}

	paid, err := p.PostBet(30)
	if err != nil || paid != 30 {
		t.Fatalf("expected 30 posted, got %d err=%v", paid, err)
	}
	if p.Funds() != 20 {
		t.Fatalf("expected 20 left, got %d", p.Funds())
	}

	if _, err := p.PostBet(21); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if p.Funds() != 20 {
		t.Fatalf("failed bet must not touch funds, got %d", p.Funds())
	}
}

func TestPostUpTo_ClampsToAllIn(t *testing.T) {
	p := &Player{id: 1, name: "A", funds: 15}
	if paid := p.postUpTo(40); paid != 15 {
		t.Fatalf("expected all-in 15, got %d", paid)
	}
	if p.Funds() != 0 {
		t.Fatalf("expected 0 funds, got %d", p.Funds())
	}
}

func TestReceiveCards_ClearedEachRound(t *testing.T) {
	p := &Player{id: 1, name: "A", funds: 100}
	p.ReceiveCards(card.CardSpadeA, card.CardHeartK)
	if len(p.HoleCards()) != 2 {
		t.Fatalf("expected 2 hole cards, got %d", len(p.HoleCards()))
	}
	p.ResetForNewRound()
	if len(p.HoleCards()) != 0 {
		t.Fatalf("expected cleared hand, got %d", len(p.HoleCards()))
	}
}

func TestSnapshot_HidesNothingButMarksFolded(t *testing.T) {
	players := []*Player{
		{id: 1, name: "A", funds: 200, policy: &scriptPolicy{actions: []Action{Fold()}}},
		{id: 2, name: "B", funds: 200, policy: callPolicy{}},
		{id: 3, name: "C", funds: 200, policy: callPolicy{}},
	}
	r := testRound(t, players, Config{SmallBlind: 1, BigBlind: 2})

	snap := r.Snapshot()
	if snap.Pot != 3 || snap.Stage != StagePreflop || snap.Over {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.ActorID != 3 {
		t.Fatalf("expected C to act, got %d", snap.ActorID)
	}
	if len(snap.Players) != 3 {
		t.Fatalf("expected 3 players in snapshot, got %d", len(snap.Players))
	}

	// C calls, then A folds; the snapshot keeps A with the folded mark.
	if _, err := r.Advance(); err != nil {
		t.Fatalf("advance err: %v", err)
	}
	if _, err := r.Advance(); err != nil {
		t.Fatalf("advance err: %v", err)
	}
	snap = r.Snapshot()
	var foundA bool
	for _, ps := range snap.Players {
		if ps.ID == 1 {
			foundA = true
			if !ps.Folded {
				t.Fatalf("expected A folded in snapshot")
			}
		}
	}
	if !foundA {
		t.Fatalf("folded player missing from snapshot")
	}
}
