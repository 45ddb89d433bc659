package falling

// PlayerView is the public state of a player
type PlayerView struct {
	Name      string     `json:"name"`
	Connected bool       `json:"connected"`
	Ready     bool       `json:"ready"`
	Piles     [][]string `json:"piles"`
	Rider     *RiderView `json:"rider"`
}

// View is a point in time snapshot of the session
type View struct {
	State    string       `json:"state"`
	Turn     int          `json:"turn"`
	DeckSize int          `json:"deckSize"`
	Players  []PlayerView `json:"players"`
}

// View returns a snapshot of the session
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	players := make([]PlayerView, len(s.players))
	for i, p := range s.players {
		players[i] = PlayerView{
			Name:      p.Name,
			Connected: p.conn != nil,
			Ready:     p.ready,
			Piles:     pilesView(p.piles),
			Rider:     newRiderView(p.rider),
		}
	}

	return View{
		State:    s.state.String(),
		Turn:     s.turnIndex,
		DeckSize: s.deck.CardsLeft(),
		Players:  players,
	}
}
