// Package table runs one live game: it drives rounds from the engine,
// bridges seated humans through the gateway, fills the remaining
// seats with rule-brain bots, and persists every finished hand.
package table

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"holdem-table/brain"
	"holdem-table/history"
	"holdem-table/holdem"
	"holdem-table/internal/ledger"
	"holdem-table/internal/wire"
)

var (
	ErrTableClosed  = errors.New("table closed")
	ErrTableStarted = errors.New("table already started")
	ErrTableFull    = errors.New("table is full")
	ErrNotSeated    = errors.New("not seated at this table")
)

type Config struct {
	SmallBlind int64
	BigBlind   int64
	Ante       int64
	BuyIn      int64
	Seats      int
	Seed       int64

	ActionTimeout time.Duration
	BotThinkDelay time.Duration
	HandDelay     time.Duration
}

func (c *Config) applyDefaults() {
	if c.Seats < 2 {
		c.Seats = 4
	}
	if c.BuyIn <= 0 {
		bb := c.BigBlind
		if bb <= 0 {
			bb = 2
		}
		c.BuyIn = 200 * bb
	}
	if c.ActionTimeout <= 0 {
		c.ActionTimeout = 30 * time.Second
	}
}

// humanSeat links one account to its engine player and the blocking
// decision bridge serviced by servePrompts.
type humanSeat struct {
	accountID uint64
	name      string
	playerID  uint64
	bridge    *brain.Interactive
	pending   chan holdem.Action
}

// Table state splits in two: the seat maps mutate only before Start,
// and the per-hand fields (round, handID) are guarded by mu. Sends
// never hold mu while touching the round, because the round's own
// mutex is held across blocking interactive decisions.
type Table struct {
	ID  string
	cfg Config

	mu        sync.Mutex
	humans    map[uint64]*humanSeat // accountID -> seat
	byPlayer  map[uint64]*humanSeat // engine player id -> seat
	joinOrder []*humanSeat
	game      *holdem.Game
	round     *holdem.Round
	handID    string
	started   bool
	closed    bool

	seq      atomic.Uint64
	done     chan struct{}
	stopOnce sync.Once

	broadcast func(accountID uint64, data []byte)
	ledger    ledger.Service
}

func New(id string, cfg Config, broadcastFn func(accountID uint64, data []byte), ledgerService ledger.Service) *Table {
	cfg.applyDefaults()
	if id == "" {
		id = uuid.NewString()
	}
	t := &Table{
		ID:        id,
		cfg:       cfg,
		humans:    make(map[uint64]*humanSeat),
		byPlayer:  make(map[uint64]*humanSeat),
		done:      make(chan struct{}),
		broadcast: broadcastFn,
		ledger:    ledgerService,
	}
	log.Printf("[Table %s] Created (seats=%d, blinds=%d/%d, buyIn=%d)",
		t.ID, cfg.Seats, cfg.SmallBlind, cfg.BigBlind, cfg.BuyIn)
	return t
}

// Join seats an account before the game starts. Joining again after a
// reconnect just resends the current snapshot.
func (t *Table) Join(accountID uint64, name string) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrTableClosed
	}
	if seat, exists := t.humans[accountID]; exists {
		started := t.started
		t.mu.Unlock()
		if started {
			go t.sendSnapshot(seat)
		}
		return nil
	}
	if t.started {
		t.mu.Unlock()
		return ErrTableStarted
	}
	if len(t.humans) >= t.cfg.Seats {
		t.mu.Unlock()
		return ErrTableFull
	}

	name = normalizeName(name, accountID)
	seat := &humanSeat{
		accountID: accountID,
		name:      name,
		bridge:    brain.NewInteractive(name),
		pending:   make(chan holdem.Action, 1),
	}
	t.humans[accountID] = seat
	t.joinOrder = append(t.joinOrder, seat)
	t.mu.Unlock()

	log.Printf("[Table %s] Account %d joined as %q", t.ID, accountID, name)
	return nil
}

// Start locks the roster: humans in join order, bots on the rest of
// the seats, then launches the hand loop.
func (t *Table) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrTableClosed
	}
	if t.started {
		return ErrTableStarted
	}
	if len(t.humans) == 0 {
		return fmt.Errorf("no seated players")
	}

	seats := make([]holdem.Seat, 0, t.cfg.Seats)
	for _, seat := range t.joinOrder {
		seats = append(seats, holdem.Seat{
			Name:     seat.name,
			Funds:    t.cfg.BuyIn,
			Behavior: holdem.BehaviorInteractive,
			Policy:   seat.bridge,
		})
	}
	botBehaviors := []holdem.Behavior{
		holdem.BehaviorStandard,
		holdem.BehaviorRisky,
		holdem.BehaviorConservative,
	}
	for i := len(seats); i < t.cfg.Seats; i++ {
		behavior := botBehaviors[i%len(botBehaviors)]
		name := fmt.Sprintf("%s_bot_%d", strings.ToLower(string(behavior)), i+1)
		policy := brain.ForBehavior(name, behavior, t.cfg.Seed+int64(i))
		if t.cfg.BotThinkDelay > 0 {
			policy = pacedPolicy{inner: policy, delay: t.cfg.BotThinkDelay}
		}
		seats = append(seats, holdem.Seat{
			Name:     name,
			Funds:    t.cfg.BuyIn,
			Behavior: behavior,
			Policy:   policy,
		})
	}

	game, err := holdem.NewGame(holdem.Config{
		SmallBlind: t.cfg.SmallBlind,
		BigBlind:   t.cfg.BigBlind,
		Ante:       t.cfg.Ante,
		Seed:       t.cfg.Seed,
	}, seats)
	if err != nil {
		return err
	}
	t.game = game

	// Engine ids follow seat order, so humans map to 1..len(joinOrder).
	for i, seat := range t.joinOrder {
		seat.playerID = uint64(i + 1)
		t.byPlayer[seat.playerID] = seat
		go t.servePrompts(seat)
	}

	t.started = true
	go t.runGame()
	log.Printf("[Table %s] Started with %d humans, %d bots", t.ID, len(t.joinOrder), t.cfg.Seats-len(t.joinOrder))
	return nil
}

// SubmitAction feeds a client action into the seat's pending slot.
// Stale actions are dropped when the next prompt arrives.
func (t *Table) SubmitAction(accountID uint64, action holdem.Action) error {
	t.mu.Lock()
	seat, exists := t.humans[accountID]
	closed := t.closed
	t.mu.Unlock()

	if closed {
		return ErrTableClosed
	}
	if !exists {
		return ErrNotSeated
	}
	select {
	case seat.pending <- action:
		return nil
	default:
		return fmt.Errorf("action already pending")
	}
}

// servePrompts is the per-human bridge loop: each blocking Decide call
// becomes an actionPrompt, answered by the client or by the timeout.
func (t *Table) servePrompts(seat *humanSeat) {
	for {
		select {
		case view := <-seat.bridge.Requests():
			// Drop anything submitted before this turn existed.
			select {
			case <-seat.pending:
			default:
			}
			t.sendPrompt(seat, view)

			select {
			case action := <-seat.pending:
				seat.bridge.Submit(action)
			case <-time.After(t.cfg.ActionTimeout):
				auto := autoAction(view)
				log.Printf("[Table %s] Action timeout player=%d -> auto %s", t.ID, seat.playerID, auto.Kind)
				seat.bridge.Submit(auto)
			case <-t.done:
				seat.bridge.Submit(holdem.Fold())
				return
			}
		case <-t.done:
			return
		}
	}
}

// autoAction picks the free option on timeout: check when possible,
// fold when chips are owed.
func autoAction(view holdem.TableView) holdem.Action {
	if view.BetToCall == 0 {
		return holdem.Check()
	}
	return holdem.Fold()
}

func (t *Table) runGame() {
	for {
		select {
		case <-t.done:
			return
		default:
		}

		// Funds before blinds and antes, for end-of-hand deltas.
		startFunds := make(map[uint64]int64)
		for _, p := range t.game.Players() {
			startFunds[p.ID()] = p.Funds()
		}

		round, err := t.game.PlayRound()
		if err != nil {
			if errors.Is(err, holdem.ErrGameOver) {
				log.Printf("[Table %s] Game over after %d rounds", t.ID, t.game.RoundsPlayed())
			} else {
				log.Printf("[Table %s] PlayRound failed: %v", t.ID, err)
			}
			t.Stop()
			return
		}

		handID := uuid.NewString()
		t.mu.Lock()
		t.round = round
		t.handID = handID
		t.mu.Unlock()

		t.playHand(round, handID, startFunds)

		if t.cfg.HandDelay > 0 {
			select {
			case <-time.After(t.cfg.HandDelay):
			case <-t.done:
				return
			}
		}
	}
}

func (t *Table) playHand(round *holdem.Round, handID string, startFunds map[uint64]int64) {
	recorder := history.NewRecorder(t.ID, handID)

	var dealerID uint64
	if dealer := t.game.Dealer(); dealer != nil {
		dealerID = dealer.ID()
	}
	t.broadcastAll(wire.TypeHandStart, wire.HandStartMsg{
		HandID:     handID,
		Round:      int(t.game.RoundsPlayed()),
		DealerID:   dealerID,
		SmallBlind: t.cfg.SmallBlind,
		BigBlind:   t.cfg.BigBlind,
	})
	t.sendHoleCards(round)

	for {
		ev, err := round.Advance()
		if err != nil {
			if !errors.Is(err, holdem.ErrRoundOver) {
				log.Printf("[Table %s] Advance failed: %v", t.ID, err)
			}
			break
		}
		if err := recorder.Record(ev); err != nil {
			log.Printf("[Table %s] record event failed: %v", t.ID, err)
		}
		t.broadcastEvent(round, ev)
	}

	t.finishHand(round, handID, recorder, startFunds)
}

func (t *Table) broadcastEvent(round *holdem.Round, ev holdem.RoundEvent) {
	switch ev.Kind {
	case holdem.EventPlayerTurn:
		t.broadcastAll(wire.TypeActionResult, wire.ActionResultMsg{
			PlayerID:    ev.PlayerID,
			Action:      ev.Action.Kind.String(),
			Contributed: ev.Contributed,
			AllIn:       ev.AllIn,
			Pot:         round.Pot(),
		})
		if ev.Result != nil && ev.Result.Walkover {
			t.broadcastShowdown(ev.Result)
		}
	case holdem.EventStageAdvance:
		t.broadcastAll(wire.TypeDealBoard, wire.DealBoardMsg{
			Stage: ev.Stage.String(),
			Cards: wire.CardCodes(ev.CardsDealt),
			Board: wire.CardCodes(round.CommunityCards()),
		})
	case holdem.EventShowdown:
		t.broadcastShowdown(ev.Result)
	}
}

func (t *Table) broadcastShowdown(result *holdem.RoundResult) {
	if result == nil {
		return
	}
	msg := wire.ShowdownMsg{
		Walkover:     result.Walkover,
		Pot:          result.Pot,
		RefundID:     result.RefundID,
		RefundAmount: result.RefundAmount,
	}
	for _, pr := range result.PlayerResults {
		if pr.IsWinner {
			msg.Winners = append(msg.Winners, wire.WinnerMsg{
				PlayerID:  pr.PlayerID,
				WinAmount: pr.WinAmount,
			})
		}
		if pr.Category > 0 {
			msg.Hands = append(msg.Hands, wire.ShowdownHandMsg{
				PlayerID:  pr.PlayerID,
				HoleCards: wire.CardCodes(pr.HoleCards),
				BestFive:  wire.CardCodes(pr.BestFive),
				Category:  holdem.HandTypeDictionary[pr.Category],
			})
		}
	}
	t.broadcastAll(wire.TypeShowdown, msg)
}

func (t *Table) finishHand(round *holdem.Round, handID string, recorder *history.Recorder, startFunds map[uint64]int64) {
	snap := round.Snapshot()
	deltas := make([]wire.DeltaMsg, 0, len(snap.Players))
	for _, p := range snap.Players {
		deltas = append(deltas, wire.DeltaMsg{
			PlayerID: p.ID,
			Delta:    p.Funds - startFunds[p.ID],
			NewFunds: p.Funds,
		})
	}
	t.broadcastAll(wire.TypeHandEnd, wire.HandEndMsg{HandID: handID, Deltas: deltas})

	t.persistHand(round.Result(), snap, recorder, startFunds)

	t.mu.Lock()
	t.round = nil
	t.handID = ""
	t.mu.Unlock()
}

// persistHand writes the tape and per-account summaries. Bot seats
// have no account and are skipped.
func (t *Table) persistHand(result *holdem.RoundResult, snap holdem.RoundSnapshot, recorder *history.Recorder, startFunds map[uint64]int64) {
	if t.ledger == nil {
		return
	}
	winners := make(map[uint64]bool)
	var pot int64
	if result != nil {
		pot = result.Pot
		for _, pr := range result.PlayerResults {
			if pr.IsWinner {
				winners[pr.PlayerID] = true
			}
		}
	}

	tape := recorder.Tape()
	results := make(map[uint64]ledger.Summary)
	for _, p := range snap.Players {
		seat := t.byPlayer[p.ID]
		if seat == nil {
			continue
		}
		results[seat.accountID] = ledger.Summary{
			HandID:   tape.HandID,
			TableID:  t.ID,
			PlayedAt: time.Now().UTC(),
			Pot:      pot,
			Delta:    p.Funds - startFunds[p.ID],
			Won:      winners[p.ID],
		}
	}
	if len(results) == 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := t.ledger.RecordHand(ctx, tape, results); err != nil {
			log.Printf("[Table %s] persist hand failed: %v", t.ID, err)
		}
	}()
}

func (t *Table) sendHoleCards(round *holdem.Round) {
	for _, p := range round.Snapshot().Players {
		seat := t.byPlayer[p.ID]
		if seat == nil {
			continue
		}
		t.send(seat, wire.TypeDealHole, wire.DealHoleMsg{
			Cards: wire.CardCodes(p.HoleCards),
		})
	}
}

func (t *Table) sendPrompt(seat *humanSeat, view holdem.TableView) {
	deadline := time.Now().Add(t.cfg.ActionTimeout)
	t.send(seat, wire.TypeActionPrompt, wire.ActionPromptMsg{
		PlayerID:     seat.playerID,
		BetToCall:    view.BetToCall,
		Pot:          view.Pot,
		Funds:        view.Funds,
		TimeLimitSec: int(t.cfg.ActionTimeout / time.Second),
		DeadlineMs:   deadline.UnixMilli(),
	})
}

func (t *Table) sendSnapshot(seat *humanSeat) {
	t.mu.Lock()
	round := t.round
	handID := t.handID
	t.mu.Unlock()
	if round == nil {
		return
	}
	t.send(seat, wire.TypeTableSnapshot, wire.SnapshotFor(handID, round.Snapshot(), seat.playerID))
}

// SendSnapshotTo pushes the current table state to one account, used
// by the gateway after join and reconnect. Runs async: the snapshot
// waits out any turn in flight without stalling the caller.
func (t *Table) SendSnapshotTo(accountID uint64) {
	t.mu.Lock()
	seat := t.humans[accountID]
	t.mu.Unlock()
	if seat != nil {
		go t.sendSnapshot(seat)
	}
}

func (t *Table) send(seat *humanSeat, msgType string, payload any) {
	env, err := wire.NewServer(t.ID, t.seq.Add(1), msgType, payload)
	if err != nil {
		log.Printf("[Table %s] marshal %s failed: %v", t.ID, msgType, err)
		return
	}
	data, err := env.Encode()
	if err != nil {
		return
	}
	t.broadcast(seat.accountID, data)
}

func (t *Table) broadcastAll(msgType string, payload any) {
	t.mu.Lock()
	seats := make([]*humanSeat, 0, len(t.humans))
	for _, seat := range t.humans {
		seats = append(seats, seat)
	}
	t.mu.Unlock()
	for _, seat := range seats {
		t.send(seat, msgType, payload)
	}
}

// SendError pushes an error message to one account outside the hand
// event flow.
func (t *Table) SendError(accountID uint64, code int, msg string) {
	t.mu.Lock()
	seat := t.humans[accountID]
	t.mu.Unlock()
	if seat == nil {
		return
	}
	t.send(seat, wire.TypeError, wire.ErrorMsg{Code: code, Message: msg})
}

func (t *Table) Started() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

func (t *Table) IsClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// Members lists the seated account ids.
func (t *Table) Members() []uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]uint64, 0, len(t.humans))
	for id := range t.humans {
		out = append(out, id)
	}
	return out
}

func (t *Table) Stop() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	t.stopOnce.Do(func() {
		close(t.done)
	})
}

type pacedPolicy struct {
	inner holdem.DecisionPolicy
	delay time.Duration
}

func (p pacedPolicy) Decide(view holdem.TableView) holdem.Action {
	time.Sleep(p.delay)
	return p.inner.Decide(view)
}

func (p pacedPolicy) Name() string { return p.inner.Name() }

func normalizeName(raw string, accountID uint64) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return fmt.Sprintf("player_%d", accountID)
	}
	return name
}
