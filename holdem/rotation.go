package holdem

// rotation holds turn order as a fixed slice with a moving front index
// instead of a destructively rotated queue, so tests can inspect order
// without replaying mutations.
type rotation struct {
	players []*Player
	front   int
}

func newRotation(players []*Player) *rotation {
	out := make([]*Player, len(players))
	copy(out, players)
	return &rotation{players: out}
}

func (r *rotation) Len() int { return len(r.players) }

func (r *rotation) Front() *Player {
	if len(r.players) == 0 {
		return nil
	}
	return r.players[r.front]
}

// Advance passes the front to the next player in order.
func (r *rotation) Advance() {
	if len(r.players) == 0 {
		return
	}
	r.front = (r.front + 1) % len(r.players)
}

// NextAfter returns the player acting after p, nil if p is absent.
func (r *rotation) NextAfter(p *Player) *Player {
	i := r.indexOf(p)
	if i < 0 || len(r.players) < 2 {
		return nil
	}
	return r.players[(i+1)%len(r.players)]
}

// Remove drops p, keeping the front pointed at the same next actor.
func (r *rotation) Remove(p *Player) bool {
	i := r.indexOf(p)
	if i < 0 {
		return false
	}
	r.players = append(r.players[:i], r.players[i+1:]...)
	if len(r.players) == 0 {
		r.front = 0
		return true
	}
	if i < r.front {
		r.front--
	}
	r.front %= len(r.players)
	return true
}

// RotateTo makes p the front.
func (r *rotation) RotateTo(p *Player) bool {
	i := r.indexOf(p)
	if i < 0 {
		return false
	}
	r.front = i
	return true
}

// InOrder lists players starting from the front.
func (r *rotation) InOrder() []*Player {
	out := make([]*Player, 0, len(r.players))
	for i := 0; i < len(r.players); i++ {
		out = append(out, r.players[(r.front+i)%len(r.players)])
	}
	return out
}

func (r *rotation) Contains(p *Player) bool { return r.indexOf(p) >= 0 }

func (r *rotation) indexOf(p *Player) int {
	for i, q := range r.players {
		if q == p {
			return i
		}
	}
	return -1
}
