package holdem

import (
	"sort"

	"holdem-table/card"
)

type ShowdownPlayerResult struct {
	PlayerID  uint64
	Name      string
	Category  byte
	Score     uint32
	HoleCards []card.Card
	BestFive  []card.Card
	IsWinner  bool
	WinAmount int64
}

type PotResult struct {
	Amount     int64
	Winners    []uint64
	WinAmounts []int64
}

type RoundResult struct {
	Walkover      bool
	Pot           int64
	PlayerResults []ShowdownPlayerResult
	PotResults    []PotResult

	// Uncalled portion of the deepest bet, returned before settling.
	RefundID     uint64
	RefundAmount int64
}

// settleShowdownLocked evaluates every remaining player's best hand,
// awards each side pot to its strongest eligible hands and splits ties.
// Odd chips go to the first winner in seating order from the small
// blind (closest to the dealer's left).
func (r *Round) settleShowdownLocked() (*RoundResult, error) {
	out := &RoundResult{Pot: r.pot}

	// Refund whatever the deepest stack bet past everyone else.
	if id, excess := uncalledExcess(r.contribs); excess > 0 {
		for _, p := range r.dealt {
			if p.ID() == id {
				p.addFunds(excess)
				r.contribs[id] -= excess
				r.pot -= excess
				out.Pot = r.pot
				out.RefundID = id
				out.RefundAmount = excess
				break
			}
		}
	}

	results := make(map[uint64]*ShowdownPlayerResult, r.rot.Len())
	for _, p := range r.rot.InOrder() {
		all := make(card.CardList, 0, 7)
		all = append(all, p.HoleCards()...)
		all = append(all, r.community...)
		if len(all) != 7 {
			return nil, ErrInvalidState("need 7 cards to evaluate")
		}
		rank, err := Evaluate(all)
		if err != nil {
			return nil, err
		}
		results[p.ID()] = &ShowdownPlayerResult{
			PlayerID:  p.ID(),
			Name:      p.Name(),
			Category:  rank.Category,
			Score:     rank.Score,
			HoleCards: append([]card.Card{}, p.HoleCards()...),
			BestFive:  append([]card.Card{}, rank.BestFive...),
		}
	}

	pots := buildPots(r.contribs, r.folded)
	for _, pt := range pots {
		winners := r.potWinnersLocked(pt, results)
		if len(winners) == 0 || pt.amount <= 0 {
			out.PotResults = append(out.PotResults, PotResult{Amount: pt.amount})
			continue
		}

		share := pt.amount / int64(len(winners))
		remainder := pt.amount % int64(len(winners))

		pr := PotResult{Amount: pt.amount, Winners: winners}
		for i, id := range winners {
			amount := share
			if i == 0 {
				amount += remainder
			}
			pr.WinAmounts = append(pr.WinAmounts, amount)
			for _, p := range r.dealt {
				if p.ID() == id {
					p.addFunds(amount)
					break
				}
			}
			if res := results[id]; res != nil {
				res.IsWinner = true
				res.WinAmount += amount
			}
		}
		out.PotResults = append(out.PotResults, pr)
	}

	for _, res := range results {
		out.PlayerResults = append(out.PlayerResults, *res)
	}
	sort.Slice(out.PlayerResults, func(i, j int) bool {
		return out.PlayerResults[i].PlayerID < out.PlayerResults[j].PlayerID
	})
	return out, nil
}

// potWinnersLocked returns the pot's best-scoring eligible players in
// seating order from the small blind, so index 0 takes odd chips.
func (r *Round) potWinnersLocked(pt pot, results map[uint64]*ShowdownPlayerResult) []uint64 {
	var best uint32
	for id := range pt.eligible {
		if res := results[id]; res != nil && res.Score > best {
			best = res.Score
		}
	}
	if best == 0 {
		return nil
	}
	winners := make([]uint64, 0, 2)
	for _, p := range r.seatingFromFirstLocked() {
		if pt.eligible[p.ID()] {
			if res := results[p.ID()]; res != nil && res.Score == best {
				winners = append(winners, p.ID())
			}
		}
	}
	return winners
}

// seatingFromFirstLocked walks the original deal order starting at the
// designated first player.
func (r *Round) seatingFromFirstLocked() []*Player {
	start := 0
	for i, p := range r.dealt {
		if p == r.firstBets {
			start = i
			break
		}
	}
	out := make([]*Player, 0, len(r.dealt))
	for i := 0; i < len(r.dealt); i++ {
		out = append(out, r.dealt[(start+i)%len(r.dealt)])
	}
	return out
}

// settleWalkoverLocked hands the whole pot to the last active player
// without any reveal.
func (r *Round) settleWalkoverLocked() *RoundResult {
	winner := r.rot.Front()
	winner.addFunds(r.pot)
	return &RoundResult{
		Walkover: true,
		Pot:      r.pot,
		PlayerResults: []ShowdownPlayerResult{{
			PlayerID:  winner.ID(),
			Name:      winner.Name(),
			IsWinner:  true,
			WinAmount: r.pot,
		}},
		PotResults: []PotResult{{
			Amount:     r.pot,
			Winners:    []uint64{winner.ID()},
			WinAmounts: []int64{r.pot},
		}},
	}
}
