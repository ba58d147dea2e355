package brain

import (
	"testing"

	"holdem-table/card"
	"holdem-table/holdem"
)

func view(hole []string, community []string, toCall int64) holdem.TableView {
	v := holdem.TableView{
		Stage:       holdem.StagePreflop,
		Pot:         10,
		BetToCall:   toCall,
		Funds:       1000,
		ActiveCount: 3,
		BigBlind:    2,
	}
	for _, s := range hole {
		v.HoleCards = append(v.HoleCards, card.MustParse(s))
	}
	for _, s := range community {
		v.Community = append(v.Community, card.MustParse(s))
	}
	if len(community) >= 3 {
		v.Stage = holdem.StageFlop
	}
	return v
}

func TestRuleBrain_PocketAcesNeverFoldPreflop(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		b := NewRuleBrain("t", behaviorProfiles[holdem.BehaviorConservative], seed)
		a := b.Decide(view([]string{"As", "Ah"}, nil, 10))
		if a.Kind == holdem.ActionFold {
			t.Fatalf("seed %d: folded pocket aces preflop", seed)
		}
	}
}

func TestRuleBrain_ConservativeFoldsTrashToABet(t *testing.T) {
	folds := 0
	for seed := int64(0); seed < 50; seed++ {
		b := NewRuleBrain("t", behaviorProfiles[holdem.BehaviorConservative], seed)
		a := b.Decide(view([]string{"2s", "7h"}, nil, 10))
		if a.Kind == holdem.ActionFold {
			folds++
		}
	}
	if folds < 40 {
		t.Fatalf("conservative brain folded trash only %d/50 times", folds)
	}
}

func TestRuleBrain_NeverBetsPastFunds(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		b := NewRuleBrain("t", behaviorProfiles[holdem.BehaviorRisky], seed)
		v := view([]string{"As", "Ah"}, []string{"Ac", "Ad", "Kh"}, 20)
		v.Funds = 30
		a := b.Decide(v)
		if a.Kind == holdem.ActionBet && a.Amount > v.Funds {
			t.Fatalf("seed %d: bet %d past funds %d", seed, a.Amount, v.Funds)
		}
	}
}

func TestRuleBrain_QuadsOnBoardPlayAggressively(t *testing.T) {
	bets := 0
	for seed := int64(0); seed < 50; seed++ {
		b := NewRuleBrain("t", behaviorProfiles[holdem.BehaviorStandard], seed)
		a := b.Decide(view([]string{"As", "Ah"}, []string{"Ac", "Ad", "Kh"}, 0))
		if a.Kind == holdem.ActionBet && a.Amount > 0 {
			bets++
		}
	}
	if bets < 40 {
		t.Fatalf("quads bet only %d/50 times", bets)
	}
}

func TestForBehavior_InteractiveBridge(t *testing.T) {
	policy := ForBehavior("you", holdem.BehaviorInteractive, 0)
	human, ok := policy.(*Interactive)
	if !ok {
		t.Fatalf("expected *Interactive, got %T", policy)
	}

	done := make(chan holdem.Action, 1)
	go func() {
		done <- human.Decide(view([]string{"As", "Ah"}, nil, 2))
	}()

	v := <-human.Requests()
	if v.BetToCall != 2 {
		t.Fatalf("expected view with BetToCall 2, got %d", v.BetToCall)
	}
	human.Submit(holdem.Bet(2))

	if a := <-done; a.Kind != holdem.ActionBet || a.Amount != 2 {
		t.Fatalf("expected Bet(2) back, got %+v", a)
	}
}

func TestForBehavior_UnknownTagFallsBack(t *testing.T) {
	policy := ForBehavior("x", holdem.Behavior("Erratic"), 1)
	if _, ok := policy.(*RuleBrain); !ok {
		t.Fatalf("expected RuleBrain fallback, got %T", policy)
	}
}
