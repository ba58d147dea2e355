package holdem

import (
	"testing"

	"holdem-table/card"
)

// fixedRound builds a round at showdown with a known board, skipping
// the dealing machinery.
func fixedRound(players []*Player, firstBets *Player, board []string, contribs map[uint64]int64, folded map[uint64]bool) *Round {
	community := make(card.CardList, 0, 5)
	for _, s := range board {
		community = append(community, card.MustParse(s))
	}
	active := make([]*Player, 0, len(players))
	for _, p := range players {
		if !folded[p.id] {
			active = append(active, p)
		}
	}
	pot := int64(0)
	for _, amount := range contribs {
		pot += amount
	}
	return &Round{
		rot:       newRotation(active),
		dealt:     players,
		firstBets: firstBets,
		community: community,
		stage:     StageRiver,
		pot:       pot,
		stageBets: map[uint64]int64{},
		contribs:  contribs,
		folded:    folded,
	}
}

func giveHole(p *Player, a, b string) {
	p.holeCards = card.CardList{card.MustParse(a), card.MustParse(b)}
}

func TestSettlement_TieSplitsWithRemainderToFirstFromSmallBlind(t *testing.T) {
	players := []*Player{
		{id: 1, name: "A", funds: 100},
		{id: 2, name: "B", funds: 100},
		{id: 3, name: "C", funds: 100},
	}
	giveHole(players[0], "2c", "3c")
	giveHole(players[1], "2d", "3d")

	// The board plays for everyone; A and B tie, C folded 3 chips in.
	r := fixedRound(players, players[0],
		[]string{"Th", "Jh", "Qh", "Kh", "Ah"},
		map[uint64]int64{1: 5, 2: 5, 3: 3},
		map[uint64]bool{3: true})

	res, err := r.settleShowdownLocked()
	if err != nil {
		t.Fatalf("settle err: %v", err)
	}

	// 13 chips, two winners: 7 to A (first from the small blind), 6 to B.
	if players[0].Funds() != 107 {
		t.Fatalf("expected A at 107, got %d", players[0].Funds())
	}
	if players[1].Funds() != 106 {
		t.Fatalf("expected B at 106, got %d", players[1].Funds())
	}
	if players[2].Funds() != 100 {
		t.Fatalf("folded C must win nothing, got %d", players[2].Funds())
	}

	for _, pr := range res.PlayerResults {
		if pr.PlayerID == 3 && pr.IsWinner {
			t.Fatalf("folded player marked winner")
		}
		if (pr.PlayerID == 1 || pr.PlayerID == 2) && pr.Category != HandRoyalFlush {
			t.Fatalf("expected board royal flush, got %s", HandTypeDictionary[pr.Category])
		}
	}
}

func TestSettlement_RemainderFollowsSeatingOrder(t *testing.T) {
	players := []*Player{
		{id: 1, name: "A", funds: 100},
		{id: 2, name: "B", funds: 100},
		{id: 3, name: "C", funds: 100},
	}
	giveHole(players[0], "2c", "3c")
	giveHole(players[1], "2d", "3d")

	// B designated first: B takes the odd chip.
	r := fixedRound(players, players[1],
		[]string{"Th", "Jh", "Qh", "Kh", "Ah"},
		map[uint64]int64{1: 5, 2: 5, 3: 3},
		map[uint64]bool{3: true})

	if _, err := r.settleShowdownLocked(); err != nil {
		t.Fatalf("settle err: %v", err)
	}
	if players[1].Funds() != 107 {
		t.Fatalf("expected B at 107, got %d", players[1].Funds())
	}
	if players[0].Funds() != 106 {
		t.Fatalf("expected A at 106, got %d", players[0].Funds())
	}
}

func TestSettlement_UncalledExcessRefunded(t *testing.T) {
	players := []*Player{
		{id: 1, name: "A", funds: 0},
		{id: 2, name: "B", funds: 50},
	}
	// A is the stronger hand and also over-bet an uncalled 30.
	giveHole(players[0], "As", "Ad")
	giveHole(players[1], "2c", "7d")

	r := fixedRound(players, players[0],
		[]string{"Ac", "Kh", "8s", "4d", "9h"},
		map[uint64]int64{1: 80, 2: 50},
		map[uint64]bool{})

	res, err := r.settleShowdownLocked()
	if err != nil {
		t.Fatalf("settle err: %v", err)
	}
	if res.RefundID != 1 || res.RefundAmount != 30 {
		t.Fatalf("expected refund (1, 30), got (%d, %d)", res.RefundID, res.RefundAmount)
	}
	// A gets the 30 back plus the 100-chip called pot.
	if players[0].Funds() != 130 {
		t.Fatalf("expected A at 130, got %d", players[0].Funds())
	}
	if players[1].Funds() != 50 {
		t.Fatalf("expected B unchanged at 50, got %d", players[1].Funds())
	}
}
