package holdem

import (
	"errors"
	"math/rand"
	"testing"
)

// scriptPolicy plays a fixed action list, then checks forever.
type scriptPolicy struct {
	name    string
	actions []Action
	i       int
}

func (s *scriptPolicy) Decide(TableView) Action {
	if s.i >= len(s.actions) {
		return Check()
	}
	a := s.actions[s.i]
	s.i++
	return a
}

func (s *scriptPolicy) Name() string { return s.name }

// callPolicy always matches the highest stage bet.
type callPolicy struct{}

func (callPolicy) Decide(view TableView) Action {
	if view.BetToCall > 0 {
		return Bet(view.BetToCall)
	}
	return Check()
}

func (callPolicy) Name() string { return "caller" }

func testPlayers(n int, funds int64, policy DecisionPolicy) []*Player {
	players := make([]*Player, 0, n)
	for i := 0; i < n; i++ {
		players = append(players, &Player{
			id:     uint64(i + 1),
			name:   chr(i),
			funds:  funds,
			policy: policy,
		})
	}
	return players
}

func chr(i int) string { return string(rune('A' + i)) }

func testRound(t *testing.T, players []*Player, cfg Config) *Round {
	t.Helper()
	r, err := newRound(players, cfg, rand.New(rand.NewSource(cfg.Seed+1)))
	if err != nil {
		t.Fatalf("newRound err: %v", err)
	}
	return r
}

func TestRound_BlindsPostedBeforeDeal(t *testing.T) {
	players := testPlayers(3, 200, callPolicy{})
	r := testRound(t, players, Config{SmallBlind: 1, BigBlind: 2})

	if r.Pot() != 3 {
		t.Fatalf("expected pot 3 after blinds, got %d", r.Pot())
	}
	bets := r.StageBets()
	if len(bets) != 2 {
		t.Fatalf("expected exactly 2 bet-map entries, got %d", len(bets))
	}
	if bets[1] != 1 || bets[2] != 2 {
		t.Fatalf("expected sb=1 bb=2, got %v", bets)
	}
	for _, p := range players {
		if got := len(p.HoleCards()); got != 2 {
			t.Fatalf("player %s: expected 2 hole cards, got %d", p.Name(), got)
		}
	}
	// Player after the big blind acts first pre-flop.
	if actor := r.CurrentActor(); actor != players[2] {
		t.Fatalf("expected player C to act first, got %s", actor.Name())
	}
}

func TestRound_PendingEventIsIdempotent(t *testing.T) {
	r := testRound(t, testPlayers(3, 200, callPolicy{}), Config{SmallBlind: 1, BigBlind: 2})
	first := r.PendingEvent()
	second := r.PendingEvent()
	if first != second {
		t.Fatalf("pending event changed without an advance: %s then %s", first, second)
	}
	if first != EventPlayerTurn {
		t.Fatalf("expected player turn, got %s", first)
	}
}

func TestRound_StageProgressionDealsCommunityCards(t *testing.T) {
	r := testRound(t, testPlayers(3, 200, callPolicy{}), Config{SmallBlind: 1, BigBlind: 2})

	dealtPerStage := map[Stage]int{}
	for !r.Over() {
		ev, err := r.Advance()
		if err != nil {
			t.Fatalf("advance err: %v", err)
		}
		if ev.Kind == EventStageAdvance {
			dealtPerStage[ev.Stage] = len(ev.CardsDealt)
			if len(r.StageBets()) != 0 {
				t.Fatalf("bet map not cleared entering %s", ev.Stage)
			}
		}
	}

	if dealtPerStage[StageFlop] != 3 {
		t.Fatalf("flop dealt %d cards, expected 3", dealtPerStage[StageFlop])
	}
	if dealtPerStage[StageTurn] != 1 || dealtPerStage[StageRiver] != 1 {
		t.Fatalf("turn/river dealt %d/%d cards, expected 1/1",
			dealtPerStage[StageTurn], dealtPerStage[StageRiver])
	}
	if got := len(r.CommunityCards()); got != 5 {
		t.Fatalf("expected 5 community cards at showdown, got %d", got)
	}
}

func TestRound_PostFlopStartsFromFirstPlayer(t *testing.T) {
	players := testPlayers(3, 200, callPolicy{})
	r := testRound(t, players, Config{SmallBlind: 1, BigBlind: 2})

	for r.PendingEvent() == EventPlayerTurn {
		if _, err := r.Advance(); err != nil {
			t.Fatalf("advance err: %v", err)
		}
	}
	if r.PendingEvent() != EventStageAdvance {
		t.Fatalf("expected stage advance, got %s", r.PendingEvent())
	}
	if _, err := r.Advance(); err != nil {
		t.Fatalf("advance err: %v", err)
	}
	// The small blind poster acts first on the flop.
	if actor := r.CurrentActor(); actor != players[0] {
		t.Fatalf("expected player A first on flop, got %s", actor.Name())
	}
}

func TestRound_FoldToOneIsWalkover(t *testing.T) {
	players := []*Player{
		{id: 1, name: "A", funds: 200, policy: &scriptPolicy{actions: []Action{Fold()}}},
		{id: 2, name: "B", funds: 200, policy: callPolicy{}},
		{id: 3, name: "C", funds: 200, policy: &scriptPolicy{actions: []Action{Fold()}}},
	}
	r := testRound(t, players, Config{SmallBlind: 1, BigBlind: 2})

	// C folds, then A folds; B wins without a showdown.
	ev, err := r.Advance()
	if err != nil || ev.Action.Kind != ActionFold {
		t.Fatalf("expected C fold, got %+v err=%v", ev, err)
	}
	ev, err = r.Advance()
	if err != nil {
		t.Fatalf("advance err: %v", err)
	}
	if ev.Result == nil || !ev.Result.Walkover {
		t.Fatalf("expected walkover result, got %+v", ev.Result)
	}
	if !r.Over() {
		t.Fatalf("round should be over after walkover")
	}
	if players[1].Funds() != 200-2+3 {
		t.Fatalf("expected B funds 201, got %d", players[1].Funds())
	}
	if r.StageIndex() != StagePreflop {
		t.Fatalf("walkover must not advance stages, got %s", r.StageIndex())
	}
	if _, err := r.Advance(); !errors.Is(err, ErrRoundOver) {
		t.Fatalf("expected ErrRoundOver, got %v", err)
	}
}

func TestRound_FoldOfFirstPlayerPromotesNext(t *testing.T) {
	players := []*Player{
		{id: 1, name: "A", funds: 200, policy: &scriptPolicy{actions: []Action{Bet(1), Fold()}}},
		{id: 2, name: "B", funds: 200, policy: callPolicy{}},
		{id: 3, name: "C", funds: 200, policy: callPolicy{}},
	}
	r := testRound(t, players, Config{SmallBlind: 1, BigBlind: 2})

	// Pre-flop: C calls, A (small blind, the designated first player)
	// completes; stage ends with everyone at 2.
	for r.PendingEvent() == EventPlayerTurn {
		if _, err := r.Advance(); err != nil {
			t.Fatalf("advance err: %v", err)
		}
	}
	if _, err := r.Advance(); err != nil { // flop
		t.Fatalf("advance err: %v", err)
	}

	// Flop: A folds; B must inherit the first-player slot.
	if _, err := r.Advance(); err != nil {
		t.Fatalf("advance err: %v", err)
	}
	if r.firstBets != players[1] {
		t.Fatalf("expected B as first player after A folds, got %s", r.firstBets.Name())
	}

	// Drive to the turn and confirm B acts first.
	for r.PendingEvent() == EventPlayerTurn {
		if _, err := r.Advance(); err != nil {
			t.Fatalf("advance err: %v", err)
		}
	}
	if _, err := r.Advance(); err != nil { // turn
		t.Fatalf("advance err: %v", err)
	}
	if actor := r.CurrentActor(); actor != players[1] {
		t.Fatalf("expected B first on turn, got %s", actor.Name())
	}
}

func TestRound_OverbetClampsToAllIn(t *testing.T) {
	players := []*Player{
		{id: 1, name: "A", funds: 10, policy: &scriptPolicy{actions: []Action{Bet(50)}}},
		{id: 2, name: "B", funds: 200, policy: callPolicy{}},
	}
	r := testRound(t, players, Config{SmallBlind: 1, BigBlind: 2})

	ev, err := r.Advance() // A's turn
	if err != nil {
		t.Fatalf("advance err: %v", err)
	}
	if ev.PlayerID != 1 {
		t.Fatalf("expected A to act, got %d", ev.PlayerID)
	}
	if ev.Contributed != 9 {
		t.Fatalf("expected clamped contribution 9, got %d", ev.Contributed)
	}
	if !ev.AllIn {
		t.Fatalf("expected all-in flag")
	}
	if players[0].Funds() != 0 {
		t.Fatalf("expected A broke, got %d", players[0].Funds())
	}

	// B calls; stage must complete even though A can never re-match.
	if _, err := r.Advance(); err != nil {
		t.Fatalf("advance err: %v", err)
	}
	if r.PendingEvent() != EventStageAdvance {
		t.Fatalf("expected stage advance, got %s", r.PendingEvent())
	}
}

func TestRound_FullHandConservesChips(t *testing.T) {
	players := testPlayers(4, 500, callPolicy{})
	r := testRound(t, players, Config{SmallBlind: 5, BigBlind: 10, Seed: 3})

	for !r.Over() {
		if _, err := r.Advance(); err != nil {
			t.Fatalf("advance err: %v", err)
		}
	}
	res := r.Result()
	if res == nil {
		t.Fatalf("expected a result")
	}

	total := int64(0)
	for _, p := range players {
		total += p.Funds()
	}
	if total != 4*500 {
		t.Fatalf("chips not conserved: %d", total)
	}

	won := int64(0)
	for _, pr := range res.PotResults {
		for _, amount := range pr.WinAmounts {
			won += amount
		}
	}
	if won != res.Pot {
		t.Fatalf("pot %d but winners got %d", res.Pot, won)
	}
}

func TestRound_DealAccounting(t *testing.T) {
	players := testPlayers(3, 200, callPolicy{})
	r := testRound(t, players, Config{SmallBlind: 1, BigBlind: 2})

	for !r.Over() {
		if _, err := r.Advance(); err != nil {
			t.Fatalf("advance err: %v", err)
		}
	}
	// 6 hole cards + 5 community cards dealt from 52.
	if got := r.deck.Remaining(); got != 52-6-5 {
		t.Fatalf("expected 41 cards remaining, got %d", got)
	}
}
