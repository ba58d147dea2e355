package main

import (
	"testing"

	"holdem-table/brain"
	"holdem-table/holdem"
)

func seatedGame(t *testing.T, seed int64) *holdem.Game {
	t.Helper()
	seats := []holdem.Seat{{
		Name:     "you",
		Funds:    200,
		Behavior: holdem.BehaviorInteractive,
		Policy:   brain.NewInteractive("you"),
	}}
	for i := 1; i < 4; i++ {
		seats = append(seats, holdem.Seat{
			Name:     "bot",
			Funds:    200,
			Behavior: holdem.BehaviorStandard,
			Policy:   brain.ForBehavior("bot", holdem.BehaviorStandard, seed+int64(i)),
		})
	}
	game, err := holdem.NewGame(holdem.Config{SmallBlind: 1, BigBlind: 2, Seed: seed}, seats)
	if err != nil {
		t.Fatalf("NewGame(seed=%d): %v", seed, err)
	}
	return game
}

// The roster fronts a randomly chosen dealer, so the front of
// Players() is usually not the first seat. Initial seating order is
// what identifies the human.
func TestHumanSeatFoundViaInitialOrder(t *testing.T) {
	rotatedFronts := 0
	for seed := int64(1); seed <= 20; seed++ {
		game := seatedGame(t, seed)
		first := game.InitialPlayers()[0]
		if first.ID() != 1 || first.Name() != "you" {
			t.Fatalf("seed %d: initial seat 0 = id %d name %q, want id 1 name you",
				seed, first.ID(), first.Name())
		}
		if game.Players()[0].ID() != 1 {
			rotatedFronts++
		}
	}
	if rotatedFronts == 0 {
		t.Fatal("dealer rotation never moved the roster front; nothing distinguishes the two lookups")
	}
}

// Busted players stay on the roster until the next PlayRound sweeps
// them, so elimination must check funds, not roster membership.
func TestEliminationChecksFundsNotRoster(t *testing.T) {
	game := seatedGame(t, 3)
	human := game.InitialPlayers()[0]

	if _, err := human.PostBet(human.Funds()); err != nil {
		t.Fatalf("PostBet all funds: %v", err)
	}
	if human.Funds() != 0 {
		t.Fatalf("funds = %d after all-in, want 0", human.Funds())
	}

	stillListed := false
	for _, p := range game.Players() {
		if p.ID() == human.ID() {
			stillListed = true
		}
	}
	if !stillListed {
		t.Fatal("busted player swept before the next PlayRound; staleness assumption changed")
	}
	if got := remainingWithChips(game); got != 3 {
		t.Fatalf("remainingWithChips = %d, want 3", got)
	}
}
