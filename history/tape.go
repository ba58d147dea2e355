// Package history records finished betting rounds as ordered event
// tapes, the storage and transport shape for hand replays.
package history

import (
	"encoding/json"

	"holdem-table/card"
	"holdem-table/holdem"
)

const TapeVersion = 1

type Tape struct {
	TapeVersion int     `json:"tapeVersion"`
	TableID     string  `json:"tableId"`
	HandID      string  `json:"handId"`
	Events      []Event `json:"events"`
}

type Event struct {
	Seq     uint64          `json:"seq"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	EventTypeAction   = "action"
	EventTypeStage    = "stage"
	EventTypeShowdown = "showdown"
	EventTypeWalkover = "walkover"
)

type ActionPayload struct {
	PlayerID    uint64 `json:"playerId"`
	Name        string `json:"name"`
	Action      string `json:"action"`
	Amount      int64  `json:"amount,omitempty"`
	Contributed int64  `json:"contributed,omitempty"`
	AllIn       bool   `json:"allIn,omitempty"`
}

type StagePayload struct {
	Stage string `json:"stage"`
	Cards []byte `json:"cards"`
}

type WinnerPayload struct {
	PlayerID  uint64 `json:"playerId"`
	WinAmount int64  `json:"winAmount"`
}

type ShowdownPayload struct {
	Pot     int64           `json:"pot"`
	Winners []WinnerPayload `json:"winners"`
}

func (t *Tape) Encode() ([]byte, error) {
	return json.Marshal(t)
}

// DecodePayload unmarshals the event payload into a typed struct
// matching the event's Type.
func (e Event) DecodePayload(into any) error {
	return json.Unmarshal(e.Payload, into)
}

func Decode(raw []byte) (*Tape, error) {
	var t Tape
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// StageCards decodes a stage payload's card bytes.
func (p StagePayload) StageCards() []card.Card {
	out := make([]card.Card, 0, len(p.Cards))
	for _, b := range p.Cards {
		out = append(out, card.Card(b))
	}
	return out
}

func stageCardBytes(cards []card.Card) []byte {
	return card.CardList(cards).Bytes()
}

// Recorder appends round events to a tape with monotonically
// increasing sequence numbers.
type Recorder struct {
	tape Tape
	seq  uint64
}

func NewRecorder(tableID, handID string) *Recorder {
	return &Recorder{
		tape: Tape{
			TapeVersion: TapeVersion,
			TableID:     tableID,
			HandID:      handID,
		},
	}
}

func (r *Recorder) Record(ev holdem.RoundEvent) error {
	switch ev.Kind {
	case holdem.EventPlayerTurn:
		err := r.append(EventTypeAction, ActionPayload{
			PlayerID:    ev.PlayerID,
			Name:        ev.PlayerName,
			Action:      ev.Action.Kind.String(),
			Amount:      ev.Action.Amount,
			Contributed: ev.Contributed,
			AllIn:       ev.AllIn,
		})
		if err != nil {
			return err
		}
		// A walkover result rides on the losing fold's turn event.
		if ev.Result != nil && ev.Result.Walkover {
			return r.append(EventTypeWalkover, showdownPayload(ev.Result))
		}
		return nil
	case holdem.EventStageAdvance:
		return r.append(EventTypeStage, StagePayload{
			Stage: ev.Stage.String(),
			Cards: stageCardBytes(ev.CardsDealt),
		})
	case holdem.EventShowdown:
		return r.append(EventTypeShowdown, showdownPayload(ev.Result))
	}
	return nil
}

func showdownPayload(res *holdem.RoundResult) ShowdownPayload {
	p := ShowdownPayload{}
	if res == nil {
		return p
	}
	p.Pot = res.Pot
	for _, pr := range res.PlayerResults {
		if pr.IsWinner {
			p.Winners = append(p.Winners, WinnerPayload{
				PlayerID:  pr.PlayerID,
				WinAmount: pr.WinAmount,
			})
		}
	}
	return p
}

func (r *Recorder) append(eventType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	r.seq++
	r.tape.Events = append(r.tape.Events, Event{
		Seq:     r.seq,
		Type:    eventType,
		Payload: raw,
	})
	return nil
}

func (r *Recorder) Tape() *Tape {
	return &r.tape
}
