package holdem

import (
	"math/rand"
	"sync"
	"time"
)

// Seat configures one player at game construction. The policy is the
// injected decision capability; configuration of names, funds and
// behavior comes from the caller's surface (form, CLI, file).
type Seat struct {
	Name     string
	Funds    int64
	Behavior Behavior
	Policy   DecisionPolicy
}

// Game owns the roster across rounds. The front of the roster is the
// current dealer; busted players leave the rotation but stay in the
// initial-roster history.
type Game struct {
	mu  sync.Mutex
	cfg Config
	rng *rand.Rand

	nextID  uint64
	players []*Player // roster, index 0 = dealer
	initial []*Player
	round   uint16
}

func NewGame(cfg Config, seats []Seat) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(seats) < 2 {
		return nil, ErrInsufficientPlayers
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}

	g.players = make([]*Player, 0, len(seats))
	for _, s := range seats {
		g.nextID++
		g.players = append(g.players, &Player{
			id:       g.nextID,
			name:     s.Name,
			behavior: s.Behavior,
			funds:    s.Funds,
			policy:   s.Policy,
		})
	}
	g.initial = append([]*Player{}, g.players...)

	// Random first dealer; rotate the roster so the dealer fronts it.
	g.rotate(g.rng.Intn(len(g.players)))
	return g, nil
}

// rotate moves the roster forward by n seats.
func (g *Game) rotate(n int) {
	if len(g.players) == 0 {
		return
	}
	n %= len(g.players)
	g.players = append(g.players[n:], g.players[:n]...)
}

// PlayRound sweeps out busted players, moves the button and starts the
// next hand. ErrGameOver signals the terminal state, not a fault.
func (g *Game) PlayRound() (*Round, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	kept := g.players[:0]
	for _, p := range g.players {
		if p.Funds() > 0 {
			kept = append(kept, p)
		}
	}
	g.players = kept

	if len(g.players) < 2 {
		return nil, ErrGameOver
	}

	if g.round > 0 {
		g.rotate(1)
	}
	g.round++

	// The roster front (the dealer) posts the small blind, exactly the
	// order the round expects.
	order := append([]*Player{}, g.players...)
	return newRound(order, g.cfg, g.rng)
}

// Players lists the active roster, dealer first.
func (g *Game) Players() []*Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*Player{}, g.players...)
}

// InitialPlayers preserves everyone who ever sat down, in the original
// seating order.
func (g *Game) InitialPlayers() []*Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*Player{}, g.initial...)
}

func (g *Game) Dealer() *Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.players) == 0 {
		return nil
	}
	return g.players[0]
}

func (g *Game) RoundsPlayed() uint16 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.round
}
