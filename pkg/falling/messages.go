package falling

import (
	"encoding/json"
	"fmt"

	"github.com/sillypantscoder/falling/pkg/deck"
)

// inbound message types
const (
	typeLogin    = "Login"
	typeGrabCard = "GrabCard"
	typePlayCard = "PlayCard"
	typeReady    = "Ready"
)

// PayloadIn is a message from a client
type PayloadIn struct {
	Type      string  `json:"type"`
	Name      string  `json:"name,omitempty"`
	PileIndex *int    `json:"pileIndex,omitempty"`
	Slide     bool    `json:"slide,omitempty"`
	Target    *string `json:"target"`
}

// DecodePayload decodes and validates a client message
func DecodePayload(data []byte) (*PayloadIn, error) {
	var msg PayloadIn
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	switch msg.Type {
	case typeLogin:
		if msg.Name == "" {
			return nil, fmt.Errorf("%w: login requires a name", ErrMalformedMessage)
		}
	case typeGrabCard:
		if msg.PileIndex == nil {
			return nil, fmt.Errorf("%w: grab requires a pileIndex", ErrMalformedMessage)
		}
	case typePlayCard:
		// a null target cancels the hold, a missing one is a broken client
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(data, &keys); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
		}

		if _, ok := keys["target"]; !ok {
			return nil, fmt.Errorf("%w: play requires a target", ErrMalformedMessage)
		}
	case "":
		return nil, fmt.Errorf("%w: missing type", ErrMalformedMessage)
	}

	return &msg, nil
}

// RiderView is the wire form of a RiderSlot
type RiderView struct {
	Rider  string   `json:"rider"`
	Extras []string `json:"extras"`
}

func newRiderView(r *RiderSlot) *RiderView {
	if r == nil {
		return nil
	}

	return &RiderView{
		Rider:  r.Rider.ID(),
		Extras: deck.IDs(r.Extras),
	}
}

func pilesView(piles []deck.Pile) [][]string {
	view := make([][]string, len(piles))
	for i, pile := range piles {
		view[i] = deck.IDs(pile)
	}

	return view
}

// CreatePlayer is the full snapshot of a player
type CreatePlayer struct {
	Type  string     `json:"type"`
	Name  string     `json:"name"`
	Piles [][]string `json:"piles"`
	Rider *RiderView `json:"rider"`
}

func newCreatePlayer(p *Player) CreatePlayer {
	return CreatePlayer{
		Type:  "CreatePlayer",
		Name:  p.Name,
		Piles: pilesView(p.piles),
		Rider: newRiderView(p.rider),
	}
}

// ReadyUpdate carries the ready flag of every player in roster order
type ReadyUpdate struct {
	Type    string `json:"type"`
	Data    []bool `json:"data"`
	ShowBtn bool   `json:"showBtn"`
}

// RemovePlayer removes a player from the table. When OnlyData is set, the
// client clears the player's cards but keeps the seat.
type RemovePlayer struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	OnlyData bool   `json:"onlyData"`
}

func newRemovePlayer(p *Player, onlyData bool) RemovePlayer {
	return RemovePlayer{Type: "RemovePlayer", Name: p.Name, OnlyData: onlyData}
}

// NewPile appends an empty pile to a player
type NewPile struct {
	Type   string `json:"type"`
	Player string `json:"player"`
}

func newNewPile(p *Player) NewPile {
	return NewPile{Type: "NewPile", Player: p.Name}
}

// RemovePile removes the pile at the index. Later piles shift down.
type RemovePile struct {
	Type   string `json:"type"`
	Player string `json:"player"`
	Pile   int    `json:"pile"`
}

func newRemovePile(p *Player, pile int) RemovePile {
	return RemovePile{Type: "RemovePile", Player: p.Name, Pile: pile}
}

// DealCard appends a card to a pile
type DealCard struct {
	Type   string `json:"type"`
	Player string `json:"player"`
	Pile   int    `json:"pile"`
	Card   string `json:"card"`
}

func newDealCard(p *Player, pile int, card deck.Card) DealCard {
	return DealCard{Type: "DealCard", Player: p.Name, Pile: pile, Card: card.ID()}
}

// CardMove moves a card from one player's pile onto another player
type CardMove struct {
	Type       string `json:"type"`
	PlayerFrom string `json:"playerFrom"`
	FromPile   int    `json:"fromPile"`
	CardIndex  int    `json:"cardIndex"`
	PlayerTo   string `json:"playerTo"`
}

func newPlayRider(from *Player, pile, card int, to *Player) CardMove {
	return CardMove{Type: "PlayRider", PlayerFrom: from.Name, FromPile: pile, CardIndex: card, PlayerTo: to.Name}
}

func newPlayAndDiscard(from *Player, pile, card int, to *Player) CardMove {
	return CardMove{Type: "PlayAndDiscard", PlayerFrom: from.Name, FromPile: pile, CardIndex: card, PlayerTo: to.Name}
}

// RemoveRider removes a rider, or only its last extra
type RemoveRider struct {
	Type         string `json:"type"`
	Player       string `json:"player"`
	JustOneExtra bool   `json:"justOneExtra"`
}

func newRemoveRider(p *Player, justOneExtra bool) RemoveRider {
	return RemoveRider{Type: "RemoveRider", Player: p.Name, JustOneExtra: justOneExtra}
}

// Message is a private notice to one client
type Message struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

func newMessage(msg string) Message {
	return Message{Type: "Message", Msg: msg}
}
