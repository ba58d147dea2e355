package holdem

import (
	"sort"

	"holdem-table/card"
)

// HandRank orders any two evaluated hands. Score packs the category
// into the top bits and five 4-bit tiebreak ranks below it, so a plain
// integer compare is a total order.
type HandRank struct {
	Category byte
	Score    uint32
	BestFive card.CardList
}

func (h HandRank) Beats(o HandRank) bool { return h.Score > o.Score }
func (h HandRank) Ties(o HandRank) bool  { return h.Score == o.Score }

func (h HandRank) String() string {
	if n, ok := HandTypeDictionary[h.Category]; ok {
		return n
	}
	return "Unknown"
}

// Evaluate returns the best five-card hand rank reachable from 5 to 7
// cards. Every C(n,5) subset is scored for every category, so quads,
// boats and kickers come from the strongest subset rather than the raw
// rank counts of all cards.
func Evaluate(cards card.CardList) (HandRank, error) {
	n := len(cards)
	if n < 5 || n > 7 {
		return HandRank{}, ErrInvalidHandSize
	}

	var best HandRank
	var bestIdx [5]int

	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						score, category := eval5(cards[a], cards[b], cards[c], cards[d], cards[e])
						if score > best.Score {
							best.Score = score
							best.Category = category
							bestIdx = [5]int{a, b, c, d, e}
						}
					}
				}
			}
		}
	}

	best.BestFive = make(card.CardList, 0, 5)
	for _, i := range bestIdx {
		best.BestFive = append(best.BestFive, cards[i])
	}
	return best, nil
}

func eval5(a, b, c, d, e card.Card) (score uint32, category byte) {
	cards := [5]card.Card{a, b, c, d, e}

	flush := true
	suit0 := cards[0].Suit()
	var counts [15]int
	for _, cc := range cards {
		counts[cc.HighValue()]++
		if cc.Suit() != suit0 {
			flush = false
		}
	}

	straightHigh := straightHighCard(counts)

	switch {
	case flush && straightHigh == 14:
		return packScore(HandRoyalFlush, []int{straightHigh}), HandRoyalFlush
	case flush && straightHigh > 0:
		return packScore(HandStraightFlush, []int{straightHigh}), HandStraightFlush
	}

	// Rank groups ordered by (count desc, rank desc); kickers follow
	// naturally because singles are count-1 groups.
	type group struct{ count, rank int }
	groups := make([]group, 0, 5)
	for rank := 14; rank >= 2; rank-- {
		if counts[rank] > 0 {
			groups = append(groups, group{counts[rank], rank})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].count > groups[j].count })

	tiebreak := make([]int, 0, 5)
	for _, g := range groups {
		tiebreak = append(tiebreak, g.rank)
	}

	switch {
	case groups[0].count == 4:
		category = HandFourOfKind
	case groups[0].count == 3 && groups[1].count >= 2:
		category = HandFullHouse
	case flush:
		category = HandFlush
	case straightHigh > 0:
		category = HandStraight
		tiebreak = []int{straightHigh}
	case groups[0].count == 3:
		category = HandThreeOfKind
	case groups[0].count == 2 && groups[1].count == 2:
		category = HandTwoPair
	case groups[0].count == 2:
		category = HandOnePair
	default:
		category = HandHighCard
	}

	return packScore(category, tiebreak), category
}

// straightHighCard reports the high card of a straight, 0 if none.
// The ace counts low (the wheel, high card 5) or high.
func straightHighCard(counts [15]int) int {
	distinct := 0
	for rank := 2; rank <= 14; rank++ {
		if counts[rank] > 0 {
			distinct++
		}
	}
	if distinct != 5 {
		return 0
	}
	for high := 14; high >= 6; high-- {
		run := true
		for r := high - 4; r <= high; r++ {
			if counts[r] == 0 {
				run = false
				break
			}
		}
		if run {
			return high
		}
	}
	// A-2-3-4-5
	if counts[14] > 0 && counts[2] > 0 && counts[3] > 0 && counts[4] > 0 && counts[5] > 0 {
		return 5
	}
	return 0
}

func packScore(category byte, tiebreak []int) uint32 {
	score := uint32(category) << 20
	shift := 16
	for _, rank := range tiebreak {
		if shift < 0 {
			break
		}
		score |= uint32(rank) << shift
		shift -= 4
	}
	return score
}
