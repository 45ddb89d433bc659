package falling

import (
	"time"

	"github.com/sillypantscoder/falling/pkg/deck"
)

// RiderSlot is a rider card attached to a player together with the extras stacked on it
type RiderSlot struct {
	Rider  deck.Card
	Extras []deck.Card
}

// amount is how many turns of effect the slot carries
func (r *RiderSlot) amount() int {
	return len(r.Extras) + 1
}

// HandHold is a player's claim on one card in their piles
type HandHold struct {
	PickedUp time.Time
	Pile     int
	Card     int
}

// Player is a participant in the session
// All fields are guarded by the session lock
type Player struct {
	Name string

	conn  Connection
	piles []deck.Pile
	rider *RiderSlot
	hand  *HandHold
	ready bool
}

func newPlayer(name string) *Player {
	return &Player{
		Name:  name,
		piles: []deck.Pile{{}},
	}
}

// resetRound clears everything a round leaves behind
func (p *Player) resetRound() {
	p.ready = false
	p.piles = []deck.Pile{{}}
	p.rider = nil
	p.hand = nil
}

// cardAt returns the card at the position, if it exists
func (p *Player) cardAt(pile, card int) (deck.Card, bool) {
	if pile < 0 || pile >= len(p.piles) {
		return "", false
	}

	return p.piles[pile].Get(card)
}

func (p *Player) removePile(i int) {
	p.piles = append(p.piles[:i], p.piles[i+1:]...)
}

// holdIsLive returns true if the hold exists and was taken within the window
func (p *Player) holdIsLive(now time.Time, window time.Duration) bool {
	return p.hand != nil && now.Sub(p.hand.PickedUp) <= window
}
