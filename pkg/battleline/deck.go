package battleline

import (
	"errors"
	"math/rand"
)

// ErrEmptyDeck is returned by Draw when the deck has no cards left. It is
// the engine's one recoverable error: the caller decides whether an empty
// deck ends drawing or ends the game.
var ErrEmptyDeck = errors.New("battleline: deck is empty")

// Deck is an ordered sequence of cards. Draw removes from the top, Back
// returns a card to the top, so Scout's returned cards are the next drawn.
// There is no implicit shuffling; callers inject randomness via Shuffle.
type Deck struct {
	cards []Card
}

// NewDeck creates a deck holding the given cards. The last card is the top.
func NewDeck(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// NewTroopDeck creates an unshuffled deck of the 60 troop cards.
func NewTroopDeck() *Deck {
	return &Deck{cards: TroopCards()}
}

// NewTacticDeck creates an unshuffled deck of the 10 tactic cards.
func NewTacticDeck() *Deck {
	return &Deck{cards: TacticCards()}
}

// Shuffle permutes the deck using the given source of randomness.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, nil
}

// Back places a card on top of the deck.
func (d *Deck) Back(c Card) {
	d.cards = append(d.cards, c)
}

// Peek returns the top n cards without removing them, topmost first.
// If fewer than n cards remain, all of them are returned.
func (d *Deck) Peek(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	out := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, d.cards[len(d.cards)-1-i])
	}
	return out
}

// Len returns the number of cards left in the deck.
func (d *Deck) Len() int { return len(d.cards) }

// Remaining reports whether any cards are left.
func (d *Deck) Remaining() bool { return len(d.cards) > 0 }

// Clone returns an independent copy of the deck.
func (d *Deck) Clone() *Deck {
	return NewDeck(d.cards)
}
