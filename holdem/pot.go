package holdem

import "sort"

// pot is one equal-cap layer of the money in play. Folded players'
// chips stay in the layers they reached but never make them eligible.
type pot struct {
	amount   int64
	eligible map[uint64]bool
}

// buildPots layers cumulative per-player contributions into side pots.
// Adjacent layers with identical eligible sets are merged, so a hand
// without all-ins collapses to a single pot.
func buildPots(contribs map[uint64]int64, folded map[uint64]bool) []pot {
	type entry struct {
		id     uint64
		amount int64
	}
	entries := make([]entry, 0, len(contribs))
	for id, amount := range contribs {
		if amount > 0 {
			entries = append(entries, entry{id, amount})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].amount != entries[j].amount {
			return entries[i].amount < entries[j].amount
		}
		return entries[i].id < entries[j].id
	})

	pots := make([]pot, 0, 2)
	covered := int64(0)
	for i, en := range entries {
		layer := en.amount - covered
		if layer <= 0 {
			continue
		}

		next := pot{eligible: make(map[uint64]bool)}
		for j := i; j < len(entries); j++ {
			give := layer
			if rest := entries[j].amount - covered; rest < give {
				give = rest
			}
			next.amount += give
			if !folded[entries[j].id] {
				next.eligible[entries[j].id] = true
			}
		}

		if len(pots) > 0 && sameEligible(pots[len(pots)-1].eligible, next.eligible) {
			pots[len(pots)-1].amount += next.amount
		} else {
			pots = append(pots, next)
		}
		covered += layer
	}
	return pots
}

func sameEligible(a, b map[uint64]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if !b[id] {
			return false
		}
	}
	return true
}

// uncalledExcess reports the contributor whose total nobody matched and
// the unmatched amount, zero when the top two totals are equal.
func uncalledExcess(contribs map[uint64]int64) (uint64, int64) {
	var topID uint64
	var top, second int64
	for id, amount := range contribs {
		if amount > top {
			second = top
			top = amount
			topID = id
		} else if amount > second {
			second = amount
		}
	}
	if top > second {
		return topID, top - second
	}
	return 0, 0
}
