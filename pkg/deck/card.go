package deck

import (
	"fmt"
	"strings"
)

// Card is a card kind. Cards carry no per-instance state, so two cards of the
// same kind are interchangeable and the kind doubles as the wire identifier.
type Card string

// card kinds
const (
	Ground Card = "ground"
	Hit    Card = "hit"
	Skip   Card = "skip"
	Split  Card = "split"
	Extra  Card = "extra"
	Stop   Card = "stop"
)

// Kinds lists every card kind, in the order the deck is built
var Kinds = []Card{Hit, Skip, Split, Extra, Stop, Ground}

// ID returns the stable wire identifier of the card
func (c Card) ID() string {
	return string(c)
}

func (c Card) String() string {
	return string(c)
}

// IsRider returns true if the card attaches to a player when played
func (c Card) IsRider() bool {
	return c == Hit || c == Skip || c == Split
}

// CardFromString parses a card identifier.
// Identifiers are case-insensitive and surrounding spaces are ignored.
func CardFromString(s string) (Card, error) {
	c := Card(strings.ToLower(strings.TrimSpace(s)))
	for _, kind := range Kinds {
		if c == kind {
			return c, nil
		}
	}

	return "", fmt.Errorf("unknown card: %q", s)
}

// CardsFromString returns a slice of cards from a comma-separated list
// It panics on an unknown card, so it should only be used with trusted input
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	parts := strings.Split(s, ",")
	cards := make([]Card, len(parts))
	for i, part := range parts {
		card, err := CardFromString(part)
		if err != nil {
			panic(err)
		}

		cards[i] = card
	}

	return cards
}

// CardsToString converts the cards into a comma-separated list
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = card.ID()
	}

	return strings.Join(c, ",")
}

// IDs returns the wire identifiers of the cards
// The result is never nil so it encodes as an empty JSON array
func IDs(cards []Card) []string {
	ids := make([]string, len(cards))
	for i, card := range cards {
		ids[i] = card.ID()
	}

	return ids
}
