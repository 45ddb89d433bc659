package main

import (
	"fmt"
	"math/rand"

	"github.com/sillypantscoder/falling/pkg/deck"
	"github.com/sillypantscoder/falling/pkg/falling"
)

// event is any message the server sends
type event struct {
	Type         string             `json:"type"`
	Name         string             `json:"name"`
	Piles        [][]string         `json:"piles"`
	Rider        *falling.RiderView `json:"rider"`
	Player       string             `json:"player"`
	Pile         int                `json:"pile"`
	Card         string             `json:"card"`
	PlayerFrom   string             `json:"playerFrom"`
	FromPile     int                `json:"fromPile"`
	CardIndex    int                `json:"cardIndex"`
	PlayerTo     string             `json:"playerTo"`
	JustOneExtra bool               `json:"justOneExtra"`
	OnlyData     bool               `json:"onlyData"`
	Data         []bool             `json:"data"`
	ShowBtn      bool               `json:"showBtn"`
	Msg          string             `json:"msg"`
}

// which cards the bot plays on itself and on others
var playOn = map[deck.Card]struct{ self, other bool }{
	deck.Hit:   {self: false, other: true},
	deck.Skip:  {self: true, other: false},
	deck.Split: {self: false, other: true},
	deck.Extra: {self: true, other: true},
	deck.Stop:  {self: false, other: true},
}

type seat struct {
	name  string
	piles [][]string
	rider *falling.RiderView
}

// table mirrors the server's view of the game from the events it sends
type table struct {
	me      string
	seats   []*seat
	ready   []bool
	showBtn bool
}

func (t *table) seat(name string) (*seat, error) {
	for _, s := range t.seats {
		if s.name == name {
			return s, nil
		}
	}

	return nil, fmt.Errorf("player %q not found", name)
}

func (t *table) pile(name string, i int) (*seat, error) {
	s, err := t.seat(name)
	if err != nil {
		return nil, err
	}

	if i < 0 || i >= len(s.piles) {
		return nil, fmt.Errorf("player %q has no pile %d", name, i)
	}

	return s, nil
}

func (t *table) apply(ev event) error {
	switch ev.Type {
	case "CreatePlayer":
		t.seats = append(t.seats, &seat{name: ev.Name, piles: ev.Piles, rider: ev.Rider})
	case "ReadyUpdate":
		t.ready = ev.Data
		t.showBtn = ev.ShowBtn
	case "RemovePlayer":
		s, err := t.seat(ev.Name)
		if err != nil {
			return err
		}

		if ev.OnlyData {
			s.piles = [][]string{{}}
			s.rider = nil
			return nil
		}

		for i, other := range t.seats {
			if other == s {
				t.seats = append(t.seats[:i], t.seats[i+1:]...)
				break
			}
		}
	case "NewPile":
		s, err := t.seat(ev.Player)
		if err != nil {
			return err
		}

		s.piles = append(s.piles, []string{})
	case "RemovePile":
		s, err := t.pile(ev.Player, ev.Pile)
		if err != nil {
			return err
		}

		s.piles = append(s.piles[:ev.Pile], s.piles[ev.Pile+1:]...)
	case "DealCard":
		s, err := t.pile(ev.Player, ev.Pile)
		if err != nil {
			return err
		}

		s.piles[ev.Pile] = append(s.piles[ev.Pile], ev.Card)
	case "PlayRider", "PlayAndDiscard":
		from, err := t.pile(ev.PlayerFrom, ev.FromPile)
		if err != nil {
			return err
		}

		to, err := t.seat(ev.PlayerTo)
		if err != nil {
			return err
		}

		pile := from.piles[ev.FromPile]
		if ev.CardIndex < 0 || ev.CardIndex >= len(pile) {
			return fmt.Errorf("pile %d of %q has no card %d", ev.FromPile, from.name, ev.CardIndex)
		}

		card := pile[ev.CardIndex]
		from.piles[ev.FromPile] = append(pile[:ev.CardIndex:ev.CardIndex], pile[ev.CardIndex+1:]...)

		if ev.Type == "PlayRider" {
			if to.rider == nil {
				to.rider = &falling.RiderView{Rider: card, Extras: []string{}}
			} else {
				to.rider.Extras = append(to.rider.Extras, card)
			}
		}
	case "RemoveRider":
		s, err := t.seat(ev.Player)
		if err != nil {
			return err
		}

		if s.rider == nil {
			return nil
		}

		if ev.JustOneExtra && len(s.rider.Extras) > 0 {
			s.rider.Extras = s.rider.Extras[:len(s.rider.Extras)-1]
		} else {
			s.rider = nil
		}
	}

	return nil
}

// needsReady returns true if the ready check is open and the bot has not readied up
func (t *table) needsReady() bool {
	if !t.showBtn {
		return false
	}

	for i, s := range t.seats {
		if s.name == t.me {
			return i >= len(t.ready) || !t.ready[i]
		}
	}

	return false
}

// grounded returns true once a ground card reached one of the bot's piles
func (t *table) grounded() bool {
	me, err := t.seat(t.me)
	if err != nil {
		return false
	}

	for _, pile := range me.piles {
		for _, card := range pile {
			if card == deck.Ground.ID() {
				return true
			}
		}
	}

	return false
}

// move picks the top card of a random pile and a random target.
// ok is false when the pick is not worth playing.
func (t *table) move(r *rand.Rand) (pile int, target string, ok bool) {
	me, err := t.seat(t.me)
	if err != nil || len(me.piles) == 0 || len(t.seats) == 0 {
		return 0, "", false
	}

	pile = r.Intn(len(me.piles))
	cards := me.piles[pile]
	if len(cards) == 0 {
		return 0, "", false
	}

	card, err := deck.CardFromString(cards[len(cards)-1])
	if err != nil {
		return 0, "", false
	}

	to := t.seats[r.Intn(len(t.seats))]
	rule, playable := playOn[card]
	if !playable {
		return 0, "", false
	}

	if to.name == t.me && !rule.self || to.name != t.me && !rule.other {
		return 0, "", false
	}

	return pile, to.name, true
}
