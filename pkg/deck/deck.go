package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"

	"github.com/sillypantscoder/falling/internal/rng"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Counts is how many of each card kind a deck is built from
type Counts map[Card]int

// DefaultCounts returns the standard deck composition
func DefaultCounts() Counts {
	return Counts{
		Hit:   12,
		Skip:  8,
		Split: 6,
		Extra: 12,
		Stop:  8,
	}
}

// Total returns the number of cards the counts produce
func (c Counts) Total() int {
	total := 0
	for _, kind := range Kinds {
		if n := c[kind]; n > 0 {
			total += n
		}
	}

	return total
}

// Deck is the finite set of cards dealt during one round.
// Cards are drawn from the end of the slice.
type Deck struct {
	Cards []Card `json:"cards"`
}

// New returns a new deck of cards built from the counts.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New(counts Counts) *Deck {
	cards := make([]Card, 0, counts.Total())
	for _, kind := range Kinds {
		for i := 0; i < counts[kind]; i++ {
			cards = append(cards, kind)
		}
	}

	return &Deck{Cards: cards}
}

// Shuffle will shuffle the remaining cards using a Fisher-Yates shuffle
func (d *Deck) Shuffle(gen rng.Generator) {
	for j := len(d.Cards) - 1; j > 0; j-- {
		i := gen.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned.
func (d *Deck) Draw() (Card, error) {
	n := len(d.Cards)
	if n == 0 {
		return "", ErrEndOfDeck
	}

	card := d.Cards[n-1]
	d.Cards = d.Cards[:n-1]

	return card, nil
}

// Empty discards every remaining card
func (d *Deck) Empty() {
	d.Cards = nil
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	if d == nil {
		return 0
	}

	return len(d.Cards)
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card))
		_, _ = hash.Write([]byte{','})
	}

	return hex.EncodeToString(hash.Sum(nil))
}
