package falling

import (
	"context"
	"fmt"

	"github.com/sillypantscoder/falling/pkg/deck"
)

// Behavior is what a card does when it is played and when its owner's turn comes up
type Behavior interface {
	// ID is the wire identifier of the card
	ID() string

	// CanPlay returns a RuleError if the card may not move from one player to the other
	CanPlay(from, to *Player) error

	// Play applies the card to the target. The session lock is held.
	Play(s *Session, from *Player, pile, card int, to *Player)

	// Deal consumes the turn of a player carrying this card as a rider.
	// The session lock is NOT held; the deal sleeps between cards.
	Deal(ctx context.Context, s *Session, p *Player, amount int)
}

var catalog = map[deck.Card]Behavior{
	deck.Ground: groundCard{},
	deck.Hit:    hitCard{riderCard{card: deck.Hit}},
	deck.Skip:   skipCard{riderCard{card: deck.Skip}},
	deck.Split:  splitCard{riderCard{card: deck.Split}},
	deck.Extra:  extraCard{},
	deck.Stop:   stopCard{},
}

// BehaviorOf returns the behavior of a card
func BehaviorOf(card deck.Card) Behavior {
	if b, ok := catalog[card]; ok {
		return b
	}

	return groundCard{}
}

type groundCard struct{}

func (groundCard) ID() string {
	return deck.Ground.ID()
}

func (groundCard) CanPlay(from, to *Player) error {
	return RuleError("ground cards cannot be played")
}

func (groundCard) Play(s *Session, from *Player, pile, card int, to *Player) {}

func (groundCard) Deal(ctx context.Context, s *Session, p *Player, amount int) {}

// riderCard attaches to its target and is consumed on the target's turns
type riderCard struct {
	card deck.Card
}

func (r riderCard) ID() string {
	return r.card.ID()
}

func (r riderCard) CanPlay(from, to *Player) error {
	if to.rider != nil {
		return RuleError(fmt.Sprintf("%s already has a %s card", to.Name, to.rider.Rider))
	}

	return nil
}

func (r riderCard) Play(s *Session, from *Player, pile, card int, to *Player) {
	to.rider = &RiderSlot{Rider: r.card, Extras: []deck.Card{}}
	s.broadcast(newPlayRider(from, pile, card, to))
}

// Deal deals amount full passes over the player's piles, then removes the rider
func (r riderCard) Deal(ctx context.Context, s *Session, p *Player, amount int) {
	slot := s.riderOf(p)
	if slot == nil {
		return
	}

	for i := 0; i < amount; i++ {
		if !s.dealPass(ctx, p) {
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearRider(p, slot)
}

type hitCard struct {
	riderCard
}

// Deal adds one more pass than the base rider
func (h hitCard) Deal(ctx context.Context, s *Session, p *Player, amount int) {
	h.riderCard.Deal(ctx, s, p, amount+1)
}

type skipCard struct {
	riderCard
}

// Deal skips the turn, consuming one extra or the rider itself
func (skipCard) Deal(ctx context.Context, s *Session, p *Player, amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot := p.rider
	if slot == nil || slot.Rider != deck.Skip {
		return
	}

	if amount <= 1 || len(slot.Extras) == 0 {
		s.clearRider(p, slot)
		return
	}

	slot.Extras = slot.Extras[:len(slot.Extras)-1]
	s.broadcast(newRemoveRider(p, true))
}

type splitCard struct {
	riderCard
}

// Deal opens amount new piles, then deals a single pass
func (sp splitCard) Deal(ctx context.Context, s *Session, p *Player, amount int) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}

	for i := 0; i < amount; i++ {
		p.piles = append(p.piles, deck.Pile{})
		s.broadcast(newNewPile(p))
	}
	s.mu.Unlock()

	sp.riderCard.Deal(ctx, s, p, 1)
}

// extraCard stacks onto an existing rider
type extraCard struct{}

func (extraCard) ID() string {
	return deck.Extra.ID()
}

func (extraCard) CanPlay(from, to *Player) error {
	if to.rider == nil {
		return RuleError(fmt.Sprintf("%s has no card to add an extra to", to.Name))
	}

	return nil
}

func (extraCard) Play(s *Session, from *Player, pile, card int, to *Player) {
	if to.rider == nil {
		s.broadcast(newPlayAndDiscard(from, pile, card, to))
		return
	}

	to.rider.Extras = append(to.rider.Extras, deck.Extra)
	s.broadcast(newPlayRider(from, pile, card, to))
}

func (extraCard) Deal(ctx context.Context, s *Session, p *Player, amount int) {}

// stopCard cancels the target's rider
type stopCard struct{}

func (stopCard) ID() string {
	return deck.Stop.ID()
}

func (stopCard) CanPlay(from, to *Player) error {
	if to.rider == nil {
		return RuleError(fmt.Sprintf("%s has no card to stop", to.Name))
	}

	return nil
}

func (stopCard) Play(s *Session, from *Player, pile, card int, to *Player) {
	s.broadcast(newPlayAndDiscard(from, pile, card, to))
	to.rider = nil
	s.broadcast(newRemoveRider(to, false))
}

func (stopCard) Deal(ctx context.Context, s *Session, p *Player, amount int) {}
