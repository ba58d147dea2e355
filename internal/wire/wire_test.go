package wire

import (
	"testing"

	"holdem-table/card"
	"holdem-table/holdem"
)

func mustParse(t *testing.T, code string) card.Card {
	t.Helper()
	c, err := card.Parse(code)
	if err != nil {
		t.Fatalf("parse %q: %v", code, err)
	}
	return c
}

func TestSnapshotFor_HidesOtherHoleCards(t *testing.T) {
	snap := holdem.RoundSnapshot{
		Stage: holdem.StageFlop,
		Pot:   30,
		Players: []holdem.PlayerSnapshot{
			{ID: 1, Name: "a", HoleCards: []card.Card{mustParse(t, "As"), mustParse(t, "Kd")}},
			{ID: 2, Name: "b", HoleCards: []card.Card{mustParse(t, "2c"), mustParse(t, "7h")}},
		},
	}

	msg := SnapshotFor("hand-1", snap, 1)
	if len(msg.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(msg.Players))
	}
	viewer, other := msg.Players[0], msg.Players[1]
	if len(viewer.HoleCards) != 2 {
		t.Fatalf("viewer hole cards = %v, want 2 codes", viewer.HoleCards)
	}
	if len(other.HoleCards) != 0 {
		t.Fatalf("other player's hole cards leaked: %v", other.HoleCards)
	}
	if !other.HasCards {
		t.Fatal("hidden cards must still report HasCards")
	}
}

func TestParseActionKind(t *testing.T) {
	cases := []struct {
		raw  string
		kind holdem.ActionKind
		ok   bool
	}{
		{"fold", holdem.ActionFold, true},
		{"Fold", holdem.ActionFold, true},
		{"check", holdem.ActionCheck, true},
		{"call", holdem.ActionBet, true},
		{"raise", holdem.ActionBet, true},
		{"Bet", holdem.ActionBet, true},
		{"jump", 0, false},
	}
	for _, tc := range cases {
		kind, ok := ParseActionKind(tc.raw)
		if ok != tc.ok || kind != tc.kind {
			t.Fatalf("ParseActionKind(%q) = (%v, %v), want (%v, %v)", tc.raw, kind, ok, tc.kind, tc.ok)
		}
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	env, err := NewServer("tbl", 7, TypeHandStart, HandStartMsg{HandID: "h1", DealerID: 3})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	data, err := env.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	client, err := DecodeClient([]byte(`{"type":"action","tableId":"tbl","payload":{"kind":"Bet","amount":40}}`))
	if err != nil {
		t.Fatalf("DecodeClient: %v", err)
	}
	var action ActionMsg
	if err := client.DecodePayload(&action); err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if action.Kind != "Bet" || action.Amount != 40 {
		t.Fatalf("action = %+v", action)
	}
	if len(data) == 0 || env.Seq != 7 {
		t.Fatalf("bad envelope: %s", data)
	}
}
