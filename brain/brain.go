// Package brain holds the concrete decision policies behind the seat
// behavior tags. The engine only knows the DecisionPolicy interface.
package brain

import (
	"math/rand"

	"holdem-table/card"
	"holdem-table/holdem"
)

// Profile defines the tunable parameters for a RuleBrain.
type Profile struct {
	Aggression float64 `json:"aggression"` // 0.0–1.0: tendency to bet big vs check/call
	Tightness  float64 `json:"tightness"`  // 0.0–1.0: hand range width (1.0 = only premiums)
	Bluffing   float64 `json:"bluffing"`   // 0.0–1.0: bluff frequency
	Randomness float64 `json:"randomness"` // 0.0–1.0: decision noise
}

// RuleBrain makes decisions from a Profile and the current table view.
type RuleBrain struct {
	name    string
	profile Profile
	rng     *rand.Rand
}

func NewRuleBrain(name string, profile Profile, seed int64) *RuleBrain {
	return &RuleBrain{
		name:    name,
		profile: profile,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (b *RuleBrain) Name() string { return b.name }

// Decide implements holdem.DecisionPolicy.
func (b *RuleBrain) Decide(view holdem.TableView) holdem.Action {
	p := b.profile

	// Noise the parameters per decision
	aggression := clamp01(p.Aggression + (b.rng.Float64()-0.5)*p.Randomness*0.4)
	tightness := clamp01(p.Tightness + (b.rng.Float64()-0.5)*p.Randomness*0.3)

	strength := b.estimateHandStrength(view)

	// Preflop: tight players let marginal hands go when facing a bet.
	if view.Stage == holdem.StagePreflop && strength < tightness*0.6 {
		if view.BetToCall == 0 {
			return holdem.Check()
		}
		return holdem.Fold()
	}

	aggressivePlay := strength > (1.0-aggression)*0.5

	if aggressivePlay {
		return holdem.Bet(b.sizeBet(view, aggression))
	}

	// Bluff attempt
	if b.rng.Float64() < p.Bluffing*0.3 {
		return holdem.Bet(b.sizeBet(view, 0.4))
	}

	if view.BetToCall == 0 {
		return holdem.Check()
	}

	// Facing a bet with a marginal hand: loose players call more.
	callThreshold := tightness * 0.4
	if strength > callThreshold || b.rng.Float64() < (1.0-tightness)*0.5 {
		return holdem.Bet(view.BetToCall)
	}
	return holdem.Fold()
}

// estimateHandStrength returns a 0.0–1.0 heuristic. Preflop it scores
// the hole cards; once five cards are visible it scores the made hand.
func (b *RuleBrain) estimateHandStrength(view holdem.TableView) float64 {
	if len(view.HoleCards) < 2 {
		return 0.3
	}

	if len(view.HoleCards)+len(view.Community) >= 5 {
		all := make(card.CardList, 0, 7)
		all = append(all, view.HoleCards...)
		all = append(all, view.Community...)
		if rank, err := holdem.Evaluate(all); err == nil {
			return clamp01(float64(rank.Category) / float64(holdem.HandRoyalFlush) * 1.2)
		}
	}

	c0 := view.HoleCards[0]
	c1 := view.HoleCards[1]

	rank0 := c0.HighValue()
	rank1 := c1.HighValue()

	strength := (float64(rank0) + float64(rank1)) / 28.0

	// Pair bonus
	if rank0 == rank1 {
		strength += 0.25
	}

	// Suited bonus
	if c0.Suit() == c1.Suit() {
		strength += 0.05
	}

	// Connected bonus
	gap := rank0 - rank1
	if gap < 0 {
		gap = -gap
	}
	if gap <= 2 {
		strength += 0.05
	}

	return clamp01(strength)
}

// sizeBet prices an aggressive action: cover the call, add a pot
// fraction scaled by aggression, never past the stack.
func (b *RuleBrain) sizeBet(view holdem.TableView, aggression float64) int64 {
	fraction := 0.33 + aggression*0.67
	bet := view.BetToCall + int64(float64(view.Pot)*fraction)
	if min := view.BigBlind; bet < min {
		bet = min
	}
	if bet > view.Funds {
		bet = view.Funds
	}
	return bet
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
