package holdem

import "holdem-table/card"

// TableView is the read-only projection of round state a policy sees
// when it is asked to act.
type TableView struct {
	Stage       Stage
	HoleCards   []card.Card
	Community   []card.Card
	Pot         int64
	BetToCall   int64 // chips needed to match the highest stage bet
	StageBet    int64 // own chips already in this stage
	Funds       int64
	ActiveCount int
	BigBlind    int64
}

// Action is what a DecisionPolicy returns. Amount is the additional
// chips pushed this turn and only meaningful for ActionBet.
type Action struct {
	Kind   ActionKind
	Amount int64
}

func Fold() Action          { return Action{Kind: ActionFold} }
func Check() Action         { return Action{Kind: ActionCheck} }
func Bet(amount int64) Action { return Action{Kind: ActionBet, Amount: amount} }

// DecisionPolicy is the capability injected per player. Decide is
// called exactly once per turn; if it blocks, the round suspends at the
// call and resumes with its result.
type DecisionPolicy interface {
	Decide(view TableView) Action
	// Name returns a human-readable identifier for debugging.
	Name() string
}
