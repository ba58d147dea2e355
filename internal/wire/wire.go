// Package wire defines the JSON envelopes exchanged between the
// gateway and table clients. Server messages carry a per-table
// sequence so clients can detect gaps after a reconnect.
package wire

import (
	"encoding/json"
	"time"

	"holdem-table/card"
	"holdem-table/holdem"
)

// Server message types.
const (
	TypeTableSnapshot = "tableSnapshot"
	TypeHandStart     = "handStart"
	TypeDealHole      = "dealHoleCards"
	TypeActionPrompt  = "actionPrompt"
	TypeActionResult  = "actionResult"
	TypeDealBoard     = "dealBoard"
	TypeShowdown      = "showdown"
	TypeHandEnd       = "handEnd"
	TypeError         = "error"
)

// Client message types.
const (
	TypeJoin   = "join"
	TypeLeave  = "leave"
	TypeAction = "action"
)

type ServerEnvelope struct {
	TableID string          `json:"tableId"`
	Seq     uint64          `json:"seq"`
	TsMs    int64           `json:"tsMs"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ClientEnvelope struct {
	Type    string          `json:"type"`
	TableID string          `json:"tableId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewServer(tableID string, seq uint64, msgType string, payload any) (*ServerEnvelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &ServerEnvelope{
		TableID: tableID,
		Seq:     seq,
		TsMs:    time.Now().UnixMilli(),
		Type:    msgType,
		Payload: raw,
	}, nil
}

func (e *ServerEnvelope) Encode() ([]byte, error) {
	return json.Marshal(e)
}

func DecodeClient(data []byte) (*ClientEnvelope, error) {
	var env ClientEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (e *ClientEnvelope) DecodePayload(into any) error {
	if len(e.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(e.Payload, into)
}

// --- server payloads ---

type SeatState struct {
	ID        uint64   `json:"id"`
	Name      string   `json:"name"`
	Behavior  string   `json:"behavior"`
	Funds     int64    `json:"funds"`
	StageBet  int64    `json:"stageBet"`
	Folded    bool     `json:"folded"`
	HasCards  bool     `json:"hasCards"`
	HoleCards []string `json:"holeCards,omitempty"`
}

type TableSnapshotMsg struct {
	HandID    string      `json:"handId,omitempty"`
	Stage     string      `json:"stage"`
	Pot       int64       `json:"pot"`
	Community []string    `json:"community"`
	ActorID   uint64      `json:"actorId,omitempty"`
	Over      bool        `json:"over"`
	Players   []SeatState `json:"players"`
}

type HandStartMsg struct {
	HandID     string `json:"handId"`
	Round      int    `json:"round"`
	DealerID   uint64 `json:"dealerId"`
	SmallBlind int64  `json:"smallBlind"`
	BigBlind   int64  `json:"bigBlind"`
}

type DealHoleMsg struct {
	Cards []string `json:"cards"`
}

type ActionPromptMsg struct {
	PlayerID     uint64 `json:"playerId"`
	BetToCall    int64  `json:"betToCall"`
	Pot          int64  `json:"pot"`
	Funds        int64  `json:"funds"`
	TimeLimitSec int    `json:"timeLimitSec"`
	DeadlineMs   int64  `json:"deadlineMs"`
}

type ActionResultMsg struct {
	PlayerID    uint64 `json:"playerId"`
	Action      string `json:"action"`
	Contributed int64  `json:"contributed"`
	AllIn       bool   `json:"allIn"`
	Pot         int64  `json:"pot"`
}

type DealBoardMsg struct {
	Stage string   `json:"stage"`
	Cards []string `json:"cards"`
	Board []string `json:"board"`
}

type WinnerMsg struct {
	PlayerID  uint64 `json:"playerId"`
	WinAmount int64  `json:"winAmount"`
}

type ShowdownHandMsg struct {
	PlayerID  uint64   `json:"playerId"`
	HoleCards []string `json:"holeCards"`
	BestFive  []string `json:"bestFive"`
	Category  string   `json:"category"`
}

type ShowdownMsg struct {
	Walkover     bool              `json:"walkover"`
	Pot          int64             `json:"pot"`
	Winners      []WinnerMsg       `json:"winners"`
	Hands        []ShowdownHandMsg `json:"hands,omitempty"`
	RefundID     uint64            `json:"refundId,omitempty"`
	RefundAmount int64             `json:"refundAmount,omitempty"`
}

type DeltaMsg struct {
	PlayerID uint64 `json:"playerId"`
	Delta    int64  `json:"delta"`
	NewFunds int64  `json:"newFunds"`
}

type HandEndMsg struct {
	HandID string     `json:"handId"`
	Deltas []DeltaMsg `json:"deltas"`
}

type ErrorMsg struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// --- client payloads ---

type JoinMsg struct {
	TableID string `json:"tableId,omitempty"`
	BuyIn   int64  `json:"buyIn,omitempty"`
}

type ActionMsg struct {
	Kind   string `json:"kind"` // Fold / Check / Bet
	Amount int64  `json:"amount,omitempty"`
}

// ParseActionKind maps a client action string to the engine kind.
func ParseActionKind(raw string) (holdem.ActionKind, bool) {
	switch raw {
	case "Fold", "fold":
		return holdem.ActionFold, true
	case "Check", "check":
		return holdem.ActionCheck, true
	case "Bet", "bet", "Call", "call", "Raise", "raise":
		return holdem.ActionBet, true
	default:
		return 0, false
	}
}

// CardCodes renders cards in the compact "As"/"Td" form.
func CardCodes(cards []card.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Code())
	}
	return out
}

// SnapshotFor converts a round snapshot for one viewer, hiding every
// other player's hole cards.
func SnapshotFor(handID string, snap holdem.RoundSnapshot, viewerID uint64) TableSnapshotMsg {
	msg := TableSnapshotMsg{
		HandID:    handID,
		Stage:     snap.Stage.String(),
		Pot:       snap.Pot,
		ActorID:   snap.ActorID,
		Over:      snap.Over,
		Community: CardCodes(snap.Community),
		Players:   make([]SeatState, 0, len(snap.Players)),
	}
	for _, p := range snap.Players {
		seat := SeatState{
			ID:       p.ID,
			Name:     p.Name,
			Behavior: string(p.Behavior),
			Funds:    p.Funds,
			StageBet: p.StageBet,
			Folded:   p.Folded,
			HasCards: len(p.HoleCards) > 0,
		}
		if p.ID == viewerID {
			seat.HoleCards = CardCodes(p.HoleCards)
		}
		msg.Players = append(msg.Players, seat)
	}
	return msg
}
