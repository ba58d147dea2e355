package holdem

import (
	"errors"
	"testing"

	"holdem-table/card"
)

func mustEvaluate(t *testing.T, names ...string) HandRank {
	t.Helper()
	cards := make(card.CardList, 0, len(names))
	for _, n := range names {
		cards = append(cards, card.MustParse(n))
	}
	rank, err := Evaluate(cards)
	if err != nil {
		t.Fatalf("Evaluate(%v) err: %v", names, err)
	}
	return rank
}

func TestEvaluate_Categories(t *testing.T) {
	cases := []struct {
		name     string
		cards    []string
		category byte
	}{
		{"high card", []string{"2h", "5c", "9d", "Js", "Kh"}, HandHighCard},
		{"one pair", []string{"2h", "2c", "9d", "Js", "Kh"}, HandOnePair},
		{"two pair", []string{"2h", "2c", "9d", "9s", "Kh"}, HandTwoPair},
		{"three of a kind", []string{"2h", "2c", "2d", "9s", "Kh"}, HandThreeOfKind},
		{"straight", []string{"4h", "5c", "6d", "7s", "8h"}, HandStraight},
		{"ace-low straight", []string{"Ac", "2d", "3h", "4s", "5c"}, HandStraight},
		{"flush", []string{"2h", "5h", "9h", "Jh", "Kh"}, HandFlush},
		{"full house", []string{"2h", "2c", "2d", "9s", "9h"}, HandFullHouse},
		{"four of a kind", []string{"2h", "2c", "2d", "2s", "Kh"}, HandFourOfKind},
		{"straight flush", []string{"2h", "3h", "4h", "5h", "6h"}, HandStraightFlush},
		{"royal flush", []string{"Th", "Jh", "Qh", "Kh", "Ah"}, HandRoyalFlush},
	}
	for _, tc := range cases {
		rank := mustEvaluate(t, tc.cards...)
		if rank.Category != tc.category {
			t.Fatalf("%s: expected %s, got %s",
				tc.name, HandTypeDictionary[tc.category], HandTypeDictionary[rank.Category])
		}
	}
}

func TestEvaluate_CategoryOrdering(t *testing.T) {
	ladder := [][]string{
		{"2h", "5c", "9d", "Js", "Kh"}, // high card
		{"2h", "2c", "9d", "Js", "Kh"}, // pair
		{"2h", "2c", "9d", "9s", "Kh"}, // two pair
		{"2h", "2c", "2d", "9s", "Kh"}, // trips
		{"4h", "5c", "6d", "7s", "8h"}, // straight
		{"2h", "5h", "9h", "Jh", "Kh"}, // flush
		{"2h", "2c", "2d", "9s", "9h"}, // full house
		{"2h", "2c", "2d", "2s", "Kh"}, // quads
		{"2h", "3h", "4h", "5h", "6h"}, // straight flush
		{"Th", "Jh", "Qh", "Kh", "Ah"}, // royal flush
	}
	prev := mustEvaluate(t, ladder[0]...)
	for _, hand := range ladder[1:] {
		cur := mustEvaluate(t, hand...)
		if !cur.Beats(prev) {
			t.Fatalf("expected %s to beat %s", cur, prev)
		}
		prev = cur
	}
}

func TestEvaluate_WheelIsLowestStraight(t *testing.T) {
	wheel := mustEvaluate(t, "Ac", "2d", "3h", "4s", "5c")
	sixHigh := mustEvaluate(t, "2c", "3d", "4h", "5s", "6c")
	if wheel.Category != HandStraight || sixHigh.Category != HandStraight {
		t.Fatalf("expected straights, got %s / %s", wheel, sixHigh)
	}
	if !sixHigh.Beats(wheel) {
		t.Fatalf("expected 6-high straight to beat the wheel")
	}
}

func TestEvaluate_SevenCardsPicksBestKickers(t *testing.T) {
	// Pair of aces; the best subset keeps K-Q-J, not the low cards.
	rank := mustEvaluate(t, "As", "Ah", "2c", "3d", "Jh", "Qs", "Kc")
	if rank.Category != HandOnePair {
		t.Fatalf("expected one pair, got %s", rank)
	}
	worseKickers := mustEvaluate(t, "Ac", "Ad", "2h", "3s", "Jc", "Qd", "Tc")
	if !rank.Beats(worseKickers) {
		t.Fatalf("expected K kicker to beat T kicker")
	}
}

func TestEvaluate_TwoPairUsesBestTwo(t *testing.T) {
	// Three pairs among 7 cards: result must keep the two highest.
	rank := mustEvaluate(t, "As", "Ah", "Kc", "Kd", "2h", "2s", "9c")
	if rank.Category != HandTwoPair {
		t.Fatalf("expected two pair, got %s", rank)
	}
	lower := mustEvaluate(t, "As", "Ah", "Qc", "Qd", "2h", "2s", "9c")
	if !rank.Beats(lower) {
		t.Fatalf("expected AA KK to beat AA QQ")
	}
}

func TestEvaluate_FullHouseTiebreakOnTrips(t *testing.T) {
	high := mustEvaluate(t, "Kh", "Kc", "Kd", "2s", "2h")
	low := mustEvaluate(t, "Qh", "Qc", "Qd", "As", "Ah")
	if !high.Beats(low) {
		t.Fatalf("expected KKK22 to beat QQQAA")
	}
}

func TestEvaluate_InvalidHandSize(t *testing.T) {
	_, err := Evaluate(card.CardList{card.CardSpadeA, card.CardSpadeK})
	if !errors.Is(err, ErrInvalidHandSize) {
		t.Fatalf("expected ErrInvalidHandSize, got %v", err)
	}
	_, err = Evaluate(make(card.CardList, 8))
	if !errors.Is(err, ErrInvalidHandSize) {
		t.Fatalf("expected ErrInvalidHandSize for 8 cards, got %v", err)
	}
}
