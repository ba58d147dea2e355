package holdem

import "holdem-table/card"

type PlayerSnapshot struct {
	ID        uint64
	Name      string
	Behavior  Behavior
	Funds     int64
	StageBet  int64
	Folded    bool
	HoleCards []card.Card
}

type RoundSnapshot struct {
	Stage     Stage
	Pending   EventKind
	Pot       int64
	Community []card.Card
	ActorID   uint64
	Over      bool
	Players   []PlayerSnapshot
}

// Snapshot copies the externally visible round state. Hole cards are
// included; the serving layer decides whose to hide.
func (r *Round) Snapshot() RoundSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := RoundSnapshot{
		Stage:     r.stage,
		Pending:   r.pendingLocked(),
		Pot:       r.pot,
		Community: append([]card.Card{}, r.community...),
		Over:      r.over,
	}
	if !r.over {
		if actor := r.rot.Front(); actor != nil {
			s.ActorID = actor.ID()
		}
	}
	for _, p := range r.dealt {
		s.Players = append(s.Players, PlayerSnapshot{
			ID:        p.ID(),
			Name:      p.Name(),
			Behavior:  p.Behavior(),
			Funds:     p.Funds(),
			StageBet:  r.stageBets[p.ID()],
			Folded:    r.folded[p.ID()],
			HoleCards: append([]card.Card{}, p.HoleCards()...),
		})
	}
	return s
}
