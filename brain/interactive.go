package brain

import "holdem-table/holdem"

// Interactive bridges a live participant into the engine. Decide
// publishes the view on Requests and blocks until Submit answers; the
// round suspends at exactly that call, per the turn model.
type Interactive struct {
	name     string
	requests chan holdem.TableView
	answers  chan holdem.Action
}

func NewInteractive(name string) *Interactive {
	return &Interactive{
		name:     name,
		requests: make(chan holdem.TableView),
		answers:  make(chan holdem.Action),
	}
}

func (i *Interactive) Name() string { return i.name }

func (i *Interactive) Decide(view holdem.TableView) holdem.Action {
	i.requests <- view
	return <-i.answers
}

// Requests yields one view per turn the seat must act on.
func (i *Interactive) Requests() <-chan holdem.TableView {
	return i.requests
}

// Submit completes the pending Decide call.
func (i *Interactive) Submit(action holdem.Action) {
	i.answers <- action
}
