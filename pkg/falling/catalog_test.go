package falling

import (
	"context"
	"fmt"
	"testing"

	"github.com/sillypantscoder/falling/pkg/deck"
	"github.com/stretchr/testify/assert"
)

func TestBehavior_CanPlay(t *testing.T) {
	withRider := &Player{Name: "B", rider: &RiderSlot{Rider: deck.Split, Extras: []deck.Card{}}}
	withoutRider := &Player{Name: "C"}
	from := &Player{Name: "A"}

	for _, card := range deck.Kinds {
		b := BehaviorOf(card)
		assert.Equal(t, card.ID(), b.ID())

		errWith := b.CanPlay(from, withRider)
		errWithout := b.CanPlay(from, withoutRider)

		switch {
		case card == deck.Ground:
			assert.Error(t, errWith, "ground")
			assert.Error(t, errWithout, "ground")
		case card.IsRider():
			assert.Error(t, errWith, card.String())
			assert.NoError(t, errWithout, card.String())
		default:
			assert.NoError(t, errWith, card.String())
			assert.Error(t, errWithout, card.String())
		}

		for _, err := range []error{errWith, errWithout} {
			if err != nil {
				assert.IsType(t, RuleError(""), err)
			}
		}
	}

	assert.Equal(t, groundCard{}, BehaviorOf("joker"))
}

func TestHitCard_Deal(t *testing.T) {
	for extras := 0; extras < 4; extras++ {
		t.Run(fmt.Sprintf("%d extras", extras), func(t *testing.T) {
			s, conns, _ := newTestSession(t, "A", "B")
			s.deck = deck.New(deck.DefaultCounts())
			a := s.playerByName("A")

			slot := &RiderSlot{Rider: deck.Hit, Extras: []deck.Card{}}
			for i := 0; i < extras; i++ {
				slot.Extras = append(slot.Extras, deck.Extra)
			}
			a.rider = slot
			resetConns(conns)

			BehaviorOf(deck.Hit).Deal(context.Background(), s, a, slot.amount())

			assert.Len(t, conns["B"].ofType("DealCard"), extras+2)
			assert.Equal(t, extras+2, a.piles[0].Len())
			assert.Nil(t, a.rider)
			assert.Len(t, conns["B"].ofType("RemoveRider"), 1)
		})
	}
}

func TestSession_clearRider(t *testing.T) {
	s, conns, _ := newTestSession(t, "A", "B")
	a := s.playerByName("A")
	a.rider = &RiderSlot{Rider: deck.Hit, Extras: []deck.Card{}}
	resetConns(conns)

	// a stop lands and a new rider is played before the clear
	replacement := &RiderSlot{Rider: deck.Skip, Extras: []deck.Card{}}
	s.mu.Lock()
	slot := a.rider
	a.rider = replacement
	s.clearRider(a, slot)
	s.mu.Unlock()

	assert.Equal(t, replacement, a.rider)
	assert.Empty(t, conns["B"].ofType("RemoveRider"))
}

func TestSkipCard_Deal(t *testing.T) {
	s, conns, _ := newTestSession(t, "A", "B")
	a := s.playerByName("A")
	a.rider = &RiderSlot{Rider: deck.Skip, Extras: []deck.Card{deck.Extra, deck.Extra}}
	resetConns(conns)

	skip := BehaviorOf(deck.Skip)
	ctx := context.Background()

	skip.Deal(ctx, s, a, a.rider.amount())
	assert.Len(t, a.rider.Extras, 1)

	skip.Deal(ctx, s, a, a.rider.amount())
	assert.Len(t, a.rider.Extras, 0)

	skip.Deal(ctx, s, a, a.rider.amount())
	assert.Nil(t, a.rider)

	msgs := conns["B"].ofType("RemoveRider")
	if assert.Len(t, msgs, 3) {
		assert.Equal(t, true, msgs[0]["justOneExtra"])
		assert.Equal(t, true, msgs[1]["justOneExtra"])
		assert.Equal(t, false, msgs[2]["justOneExtra"])
	}
	assert.Empty(t, conns["B"].ofType("DealCard"))
	assert.Equal(t, 0, a.piles[0].Len())
}

func TestSplitCard_Deal(t *testing.T) {
	s, conns, _ := newTestSession(t, "A", "B")
	s.deck = deck.New(deck.DefaultCounts())
	a := s.playerByName("A")
	a.piles = piles("ground")
	a.rider = &RiderSlot{Rider: deck.Split, Extras: []deck.Card{deck.Extra}}
	resetConns(conns)

	BehaviorOf(deck.Split).Deal(context.Background(), s, a, a.rider.amount())

	assert.Len(t, a.piles, 3)
	assert.Equal(t, 2, a.piles[0].Len())
	assert.Equal(t, 1, a.piles[1].Len())
	assert.Equal(t, 1, a.piles[2].Len())
	assert.Equal(t, []string{"NewPile", "NewPile", "DealCard", "DealCard", "DealCard", "RemoveRider"}, conns["B"].types())
	assert.Nil(t, a.rider)
}

func TestSplitCard_Deal_stopped(t *testing.T) {
	s, conns, _ := newTestSession(t, "A", "B")
	s.deck = deck.New(deck.DefaultCounts())
	a := s.playerByName("A")
	a.rider = &RiderSlot{Rider: deck.Split, Extras: []deck.Card{}}
	resetConns(conns)
	s.Stop()

	BehaviorOf(deck.Split).Deal(context.Background(), s, a, 1)
	assert.Len(t, a.piles, 1)
	assert.Empty(t, conns["B"].types())
}
