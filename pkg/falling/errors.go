package falling

import "errors"

// ErrMalformedMessage happens when an inbound message cannot be decoded
var ErrMalformedMessage = errors.New("malformed message")

// ErrUnknownMessage happens when an inbound message has an unsupported type
var ErrUnknownMessage = errors.New("unknown message type")

// ErrNotLoggedIn happens when a connection acts before logging in
var ErrNotLoggedIn = errors.New("connection is not logged in")

// ErrAlreadyLoggedIn happens when a logged in connection tries to log in as someone else
var ErrAlreadyLoggedIn = errors.New("connection is already logged in")

// ErrNameTaken happens when a name is bound to another live connection
var ErrNameTaken = errors.New("name is already in use")

// ErrRoundInProgress happens when a new name tries to join during a round
var ErrRoundInProgress = errors.New("cannot join while a round is in progress")

// ErrPileOutOfRange happens when a pile index does not exist
var ErrPileOutOfRange = errors.New("pile index is out of range")

// ErrNoCardToGrab happens when the requested card position is empty
var ErrNoCardToGrab = errors.New("no card to grab")

// ErrNoHold happens when a player plays without holding a card
var ErrNoHold = errors.New("player is not holding a card")

// ErrHoldExpired happens when a held card is played after the hold window
var ErrHoldExpired = errors.New("hold has expired")

// ErrUnknownPlayer happens when a play targets a name that is not in the roster
var ErrUnknownPlayer = errors.New("target player not found")

// ErrCardMoved happens when the held position no longer holds a card
var ErrCardMoved = errors.New("held card no longer exists")

// ErrNotWaitingForReady happens when a player readies up outside of the ready check
var ErrNotWaitingForReady = errors.New("session is not waiting for players")

// ErrAlreadyRunning happens when Run() is called twice
var ErrAlreadyRunning = errors.New("session is already running")

// errStopped is used internally to unwind the scheduler after Stop()
var errStopped = errors.New("session stopped")

// RuleError is a refused play. The text is safe to show to the player.
type RuleError string

func (r RuleError) Error() string {
	return string(r)
}
