package holdem

import "holdem-table/card"

// Player persists across rounds within a Game. Ids are issued by the
// owning Game, never by a package-level counter.
type Player struct {
	id       uint64
	name     string
	behavior Behavior

	funds int64

	holeCards card.CardList
	policy    DecisionPolicy
}

func (p *Player) ID() uint64         { return p.id }
func (p *Player) Name() string       { return p.name }
func (p *Player) Behavior() Behavior { return p.behavior }
func (p *Player) Funds() int64       { return p.funds }

func (p *Player) HoleCards() card.CardList { return p.holeCards }

// ReceiveCards appends to the hole cards. The two-per-round bound is a
// calling convention of the round, not enforced here.
func (p *Player) ReceiveCards(cards ...card.Card) {
	p.holeCards = append(p.holeCards, cards...)
}

func (p *Player) ResetForNewRound() {
	p.holeCards = make([]card.Card, 0, 2)
}

// PostBet removes amount from the player's funds and returns the
// contribution. A bet over the available funds is refused; round flow
// uses postUpTo, which clamps to an all-in instead.
func (p *Player) PostBet(amount int64) (int64, error) {
	if amount < 0 {
		return 0, ErrInvalidState("negative bet")
	}
	if amount > p.funds {
		return 0, ErrInsufficientFunds
	}
	p.funds -= amount
	return amount, nil
}

// postUpTo contributes min(amount, funds); shortfall means all-in.
func (p *Player) postUpTo(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	if amount > p.funds {
		amount = p.funds
	}
	p.funds -= amount
	return amount
}

func (p *Player) addFunds(amount int64) {
	p.funds += amount
}

// decide invokes the seat's policy; a seat without one always checks,
// like the original placeholder behavior.
func (p *Player) decide(view TableView) Action {
	if p.policy == nil {
		return Check()
	}
	return p.policy.Decide(view)
}
