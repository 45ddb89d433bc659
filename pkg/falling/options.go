package falling

import (
	"time"

	"github.com/sillypantscoder/falling/pkg/deck"
)

// Options are options for creating a new session
type Options struct {
	// DealInterval is the pause after every dealt card. It paces the visible dealing.
	DealInterval time.Duration

	// HoldWindow is how long a grabbed card may be held before a play is refused
	HoldWindow time.Duration

	// ReadyPollInterval is how often the ready check is re-evaluated
	ReadyPollInterval time.Duration

	// ExtraTurnsBase and ExtraTurnsPerPlayer size the countdown of turns that are
	// played after the deck runs out
	ExtraTurnsBase      int
	ExtraTurnsPerPlayer int

	// Deck is how many of each card a round is dealt from
	Deck deck.Counts

	// Players are seeded into the roster when the session is created
	Players []string
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		DealInterval:        750 * time.Millisecond,
		HoldWindow:          1500 * time.Millisecond,
		ReadyPollInterval:   250 * time.Millisecond,
		ExtraTurnsBase:      20,
		ExtraTurnsPerPlayer: 3,
		Deck:                deck.DefaultCounts(),
	}
}

// extraTurns returns the size of the exhaustion countdown for a round
func (o Options) extraTurns(players int) int {
	return o.ExtraTurnsBase + o.ExtraTurnsPerPlayer*players
}
