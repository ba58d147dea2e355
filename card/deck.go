package card

import (
	"errors"
	"math/rand"
)

// ErrInsufficientCards is returned when a deal asks for more cards than
// the deck still holds. Correct stage sequencing never triggers it.
var ErrInsufficientCards = errors.New("insufficient cards in deck")

type CardList []Card

func (ds *CardList) Init(cards []Card) {
	*ds = make([]Card, len(cards))
	copy(*ds, cards)
}

// Count 获取总牌数
func (ds CardList) Count() int {
	return len(ds)
}

func (ds CardList) Bytes() []byte {
	out := make([]byte, 0, len(ds))
	for _, c := range ds {
		out = append(out, byte(c))
	}
	return out
}

func (ds *CardList) Add(cards ...Card) {
	*ds = append(*ds, cards...)
}

// Contains 工具：判断牌是否在切片里
func (ds CardList) Contains(c Card) bool {
	for _, cc := range ds {
		if cc == c {
			return true
		}
	}
	return false
}

// Deck is a shuffled pile of the 52 distinct cards, exclusively owned
// by one round and discarded with it.
type Deck struct {
	cards CardList
}

// NewShuffledDeck builds a 52-card deck permuted by rng. A nil rng uses
// the shared math/rand source.
func NewShuffledDeck(rng *rand.Rand) *Deck {
	cards := make([]Card, len(FullDeck))
	copy(cards, FullDeck)
	if rng != nil {
		rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	} else {
		rand.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	}
	d := &Deck{}
	d.cards.Init(cards)
	return d
}

// Deal removes and returns the first n cards in deck order.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || n > len(d.cards) {
		return nil, ErrInsufficientCards
	}
	out := make([]Card, n)
	copy(out, d.cards[:n])
	d.cards = d.cards[n:]
	return out, nil
}

// Remaining reports how many cards are still undealt.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
