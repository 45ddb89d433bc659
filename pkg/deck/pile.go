package deck

// Pile is an ordered stack of cards. The top of the pile is the last element.
type Pile []Card

// Len returns the number of cards in the pile
func (p Pile) Len() int {
	return len(p)
}

// Top returns the most recently added card
// The second value is false if the pile is empty
func (p Pile) Top() (Card, bool) {
	if len(p) == 0 {
		return "", false
	}

	return p[len(p)-1], true
}

// Get returns the card at index i
func (p Pile) Get(i int) (Card, bool) {
	if i < 0 || i >= len(p) {
		return "", false
	}

	return p[i], true
}

// AddCard adds a card to the top of the pile
func (p *Pile) AddCard(card Card) {
	*p = append(*p, card)
}

// RemoveCard removes the card at index i, shifting later cards down
func (p *Pile) RemoveCard(i int) (Card, bool) {
	card, ok := p.Get(i)
	if !ok {
		return "", false
	}

	pile := *p
	copy(pile[i:], pile[i+1:])
	*p = pile[:len(pile)-1]

	return card, true
}
