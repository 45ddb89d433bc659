package deck

import (
	"testing"

	"github.com/sillypantscoder/falling/internal/rng"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	d := New(Counts{Hit: 2, Stop: 1})

	assert.Equal(t, 3, d.CardsLeft())
	assert.Equal(t, "hit,hit,stop", CardsToString(d.Cards))

	d = New(DefaultCounts())
	assert.Equal(t, DefaultCounts().Total(), d.CardsLeft())
	for _, card := range d.Cards {
		assert.NotEqual(t, Ground, card, "ground cards are never part of the deck")
	}
}

func TestDeck_Shuffle(t *testing.T) {
	d1 := New(DefaultCounts())
	d2 := New(DefaultCounts())
	unshuffled := d1.HashCode()

	d1.Shuffle(rng.NewSeeded(1))
	d2.Shuffle(rng.NewSeeded(1))

	assert.Equal(t, d1.HashCode(), d2.HashCode())
	assert.NotEqual(t, unshuffled, d1.HashCode())
	assert.Equal(t, DefaultCounts().Total(), d1.CardsLeft())

	counts := make(map[Card]int)
	for _, card := range d1.Cards {
		counts[card]++
	}
	assert.Equal(t, 12, counts[Hit])
	assert.Equal(t, 8, counts[Skip])
	assert.Equal(t, 6, counts[Split])
	assert.Equal(t, 12, counts[Extra])
	assert.Equal(t, 8, counts[Stop])
}

func TestDeck_Draw(t *testing.T) {
	d := &Deck{Cards: CardsFromString("hit,skip,stop")}

	card, err := d.Draw()
	assert.NoError(t, err)
	assert.Equal(t, Stop, card)

	card, err = d.Draw()
	assert.NoError(t, err)
	assert.Equal(t, Skip, card)

	card, err = d.Draw()
	assert.NoError(t, err)
	assert.Equal(t, Hit, card)

	card, err = d.Draw()
	assert.Equal(t, ErrEndOfDeck, err)
	assert.Equal(t, Card(""), card)
	assert.Equal(t, 0, d.CardsLeft())
}

func TestDeck_Empty(t *testing.T) {
	d := New(DefaultCounts())
	d.Empty()
	assert.Equal(t, 0, d.CardsLeft())

	var nilDeck *Deck
	assert.Equal(t, 0, nilDeck.CardsLeft())
}

func TestCardFromString(t *testing.T) {
	card, err := CardFromString(" Hit ")
	assert.NoError(t, err)
	assert.Equal(t, Hit, card)

	_, err = CardFromString("joker")
	assert.EqualError(t, err, `unknown card: "joker"`)

	assert.True(t, Split.IsRider())
	assert.False(t, Extra.IsRider())
	assert.Equal(t, []string{}, IDs(nil))
}

func TestPile(t *testing.T) {
	a := assert.New(t)

	var p Pile
	_, ok := p.Top()
	a.False(ok)

	p.AddCard(Hit)
	p.AddCard(Skip)
	p.AddCard(Ground)

	top, ok := p.Top()
	a.True(ok)
	a.Equal(Ground, top)

	card, ok := p.RemoveCard(1)
	a.True(ok)
	a.Equal(Skip, card)
	a.Equal("hit,ground", CardsToString(p))

	_, ok = p.RemoveCard(2)
	a.False(ok)
}
