package holdem

import (
	"math/rand"
	"sync"

	"holdem-table/card"
)

// RoundEvent describes what one Advance call did.
type RoundEvent struct {
	Kind EventKind

	// EventPlayerTurn
	PlayerID    uint64
	PlayerName  string
	Action      Action
	Contributed int64
	AllIn       bool

	// EventStageAdvance
	Stage      Stage
	CardsDealt []card.Card

	// EventShowdown / walkover
	Result *RoundResult
}

// Round runs one hand across the four stages. It is driven from the
/// outside: PendingEvent says what happens next, Advance performs
// exactly that. The mutex exists because the serving layer reads
// snapshots from other goroutines; the advance path itself is strictly
// single-actor.
type Round struct {
	mu  sync.Mutex
	cfg Config

	deck      *card.Deck
	rot       *rotation
	dealt     []*Player // everyone dealt into this hand, seating order from small blind
	firstBets *Player   // acts first in each post-flop stage

	community card.CardList
	stage     Stage
	pot       int64

	stageBets map[uint64]int64 // per-stage, keyed by player id
	contribs  map[uint64]int64 // whole-hand totals, feeds side pots
	folded    map[uint64]bool

	result *RoundResult
	over   bool
}

// newRound posts blinds then deals hole cards, preserving that order.
// The front of players is the small blind; the big blind follows.
func newRound(players []*Player, cfg Config, rng *rand.Rand) (*Round, error) {
	if len(players) < 2 {
		return nil, ErrInsufficientPlayers
	}
	r := &Round{
		cfg:       cfg,
		deck:      card.NewShuffledDeck(rng),
		rot:       newRotation(players),
		stageBets: make(map[uint64]int64, len(players)),
		contribs:  make(map[uint64]int64, len(players)),
		folded:    make(map[uint64]bool, len(players)),
		stage:     StagePreflop,
	}
	r.dealt = r.rot.InOrder()
	r.firstBets = r.rot.Front()

	for _, p := range r.dealt {
		p.ResetForNewRound()
	}

	if cfg.Ante > 0 {
		for _, p := range r.dealt {
			paid := p.postUpTo(cfg.Ante)
			r.pot += paid
			r.contribs[p.ID()] += paid
		}
	}

	r.postBlind(cfg.SmallBlind)
	r.postBlind(cfg.BigBlind)

	for _, p := range r.rot.InOrder() {
		cards, err := r.deck.Deal(2)
		if err != nil {
			return nil, err
		}
		p.ReceiveCards(cards...)
	}
	return r, nil
}

// postBlind takes the blind from the rotation front and advances it,
// recording the bet in the stage map like any other bet.
func (r *Round) postBlind(amount int64) {
	p := r.rot.Front()
	paid := p.postUpTo(amount)
	r.pot += paid
	r.stageBets[p.ID()] += paid
	r.contribs[p.ID()] += paid
	r.rot.Advance()
}

// PendingEvent is a read-only projection: calling it repeatedly without
// an Advance in between always answers the same.
func (r *Round) PendingEvent() EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pendingLocked()
}

func (r *Round) pendingLocked() EventKind {
	if r.over {
		return EventRoundEnd
	}
	if !r.stageCompleteLocked() {
		return EventPlayerTurn
	}
	if r.stage < StageRiver {
		return EventStageAdvance
	}
	return EventShowdown
}

// stageCompleteLocked: every active player has a bet entry and each
// entry matches the stage's highest bet, all-in players excepted. An
// active player missing from the map is still owed a turn.
func (r *Round) stageCompleteLocked() bool {
	if len(r.stageBets) != r.rot.Len() || r.rot.Len() == 0 {
		return false
	}
	maxBet := int64(0)
	for _, amount := range r.stageBets {
		if amount > maxBet {
			maxBet = amount
		}
	}
	for _, p := range r.rot.InOrder() {
		amount, ok := r.stageBets[p.ID()]
		if !ok {
			return false
		}
		if amount != maxBet && p.Funds() > 0 {
			return false
		}
	}
	return true
}

// Advance performs exactly the pending event and reports it.
func (r *Round) Advance() (RoundEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.pendingLocked() {
	case EventRoundEnd:
		return RoundEvent{}, ErrRoundOver
	case EventPlayerTurn:
		return r.playTurnLocked()
	case EventStageAdvance:
		return r.advanceStageLocked()
	case EventShowdown:
		return r.showdownLocked()
	}
	return RoundEvent{}, ErrInvalidState("unknown pending event")
}

func (r *Round) playTurnLocked() (RoundEvent, error) {
	actor := r.rot.Front()
	if actor == nil {
		return RoundEvent{}, ErrInvalidState("no current player")
	}

	view := r.viewForLocked(actor)
	// The policy may block here (interactive seats); round state is
	// neither observed nor mutated until it answers.
	action := actor.decide(view)

	ev := RoundEvent{
		Kind:       EventPlayerTurn,
		PlayerID:   actor.ID(),
		PlayerName: actor.Name(),
		Action:     action,
	}

	if action.Kind == ActionFold {
		delete(r.stageBets, actor.ID())
		r.folded[actor.ID()] = true
		if actor == r.firstBets {
			r.firstBets = r.rot.NextAfter(actor)
		}
		r.rot.Remove(actor)

		if r.rot.Len() == 1 {
			r.result = r.settleWalkoverLocked()
			r.over = true
			ev.Result = r.result
		}
		return ev, nil
	}

	amount := action.Amount
	if action.Kind == ActionCheck || amount < 0 {
		amount = 0
	}
	paid := actor.postUpTo(amount)
	r.pot += paid
	r.stageBets[actor.ID()] += paid
	r.contribs[actor.ID()] += paid
	ev.Contributed = paid
	ev.AllIn = paid > 0 && actor.Funds() == 0
	r.rot.Advance()
	return ev, nil
}

func (r *Round) advanceStageLocked() (RoundEvent, error) {
	r.stage++
	r.stageBets = make(map[uint64]int64, r.rot.Len())

	deal := 1
	if r.stage == StageFlop {
		deal = 3
	}
	cards, err := r.deck.Deal(deal)
	if err != nil {
		return RoundEvent{}, err
	}
	r.community = append(r.community, cards...)

	if r.firstBets != nil {
		r.rot.RotateTo(r.firstBets)
	}

	return RoundEvent{
		Kind:       EventStageAdvance,
		Stage:      r.stage,
		CardsDealt: cards,
	}, nil
}

func (r *Round) showdownLocked() (RoundEvent, error) {
	result, err := r.settleShowdownLocked()
	if err != nil {
		return RoundEvent{}, err
	}
	r.result = result
	r.over = true
	return RoundEvent{Kind: EventShowdown, Result: result}, nil
}

func (r *Round) viewForLocked(p *Player) TableView {
	maxBet := int64(0)
	for _, amount := range r.stageBets {
		if amount > maxBet {
			maxBet = amount
		}
	}
	own := r.stageBets[p.ID()]
	return TableView{
		Stage:       r.stage,
		HoleCards:   append([]card.Card{}, p.HoleCards()...),
		Community:   append([]card.Card{}, r.community...),
		Pot:         r.pot,
		BetToCall:   maxBet - own,
		StageBet:    own,
		Funds:       p.Funds(),
		ActiveCount: r.rot.Len(),
		BigBlind:    r.cfg.BigBlind,
	}
}

// ---- read-only accessors for the presentation layer ----

func (r *Round) CurrentActor() *Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.over {
		return nil
	}
	return r.rot.Front()
}

func (r *Round) CommunityCards() []card.Card {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]card.Card{}, r.community...)
}

func (r *Round) Pot() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pot
}

func (r *Round) StageIndex() Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stage
}

func (r *Round) Over() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.over
}

// Result is nil until the round is over.
func (r *Round) Result() *RoundResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

// ActivePlayers lists still-active players in turn order.
func (r *Round) ActivePlayers() []*Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rot.InOrder()
}

// StageBets copies the per-player bet map for this stage.
func (r *Round) StageBets() map[uint64]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uint64]int64, len(r.stageBets))
	for id, amount := range r.stageBets {
		out[id] = amount
	}
	return out
}
