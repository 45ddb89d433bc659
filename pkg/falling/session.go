package falling

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sillypantscoder/falling/internal/rng"
	"github.com/sillypantscoder/falling/pkg/deck"
	"github.com/sirupsen/logrus"
)

// Connection is a client the session can push messages to
type Connection interface {
	ID() string

	// Send queues a message. It must not block and returns false if the message was dropped.
	Send(msg interface{}) bool

	// Disconnect asks the transport to close the connection. It must not block.
	Disconnect(reason string)
}

// RoundSummary describes a finished round
type RoundSummary struct {
	ID         string    `json:"roundId"`
	Players    []string  `json:"players"`
	Turns      int       `json:"turns"`
	CardsDealt int       `json:"cardsDealt"`
	StartedAt  time.Time `json:"startedAt"`
	EndedAt    time.Time `json:"endedAt"`
}

// Historian records finished rounds. RoundEnded must not block.
type Historian interface {
	RoundEnded(summary RoundSummary)
}

// State is the phase of the session
type State int

// session states
const (
	StateLobby State = iota
	StateWaitingForReady
	StateDealing
)

func (s State) String() string {
	switch s {
	case StateWaitingForReady:
		return "waiting"
	case StateDealing:
		return "dealing"
	default:
		return "lobby"
	}
}

// Session is the single shared game. Every exported method is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	options   Options
	logger    logrus.FieldLogger
	gen       rng.Generator
	historian Historian
	now       func() time.Time

	players    []*Player
	deck       *deck.Deck
	turnIndex  int
	extraTurns int
	state      State
	running    bool
	round      *RoundSummary

	stop     chan struct{}
	stopOnce sync.Once
}

// NewSession returns a new session in the lobby
func NewSession(options Options, logger logrus.FieldLogger) *Session {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	defaults := DefaultOptions()
	if options.ReadyPollInterval <= 0 {
		options.ReadyPollInterval = defaults.ReadyPollInterval
	}
	if options.Deck == nil {
		options.Deck = defaults.Deck
	}

	s := &Session{
		options: options,
		logger:  logger,
		gen:     rng.Crypto{},
		now:     time.Now,
		deck:    &deck.Deck{},
		stop:    make(chan struct{}),
	}

	for _, name := range options.Players {
		if s.playerByName(name) == nil {
			s.players = append(s.players, newPlayer(name))
		}
	}

	return s
}

// SetGenerator replaces the shuffle source. Call before Run().
func (s *Session) SetGenerator(gen rng.Generator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen = gen
}

// SetHistorian sets where finished rounds are recorded. Call before Run().
func (s *Session) SetHistorian(h Historian) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.historian = h
}

// State returns the current phase
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Run alternates between the ready check and dealing until the context is
// cancelled or Stop() is called
func (s *Session) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}

	select {
	case <-s.stop:
		s.mu.Unlock()
		return nil
	default:
	}

	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	for {
		if err := s.waitForReady(ctx); err != nil {
			if errors.Is(err, errStopped) || errors.Is(err, context.Canceled) {
				s.logger.Info("session stopped")
				return nil
			}

			return err
		}

		s.dealRound(ctx)
	}
}

// Stop ends the session. The scheduler exits within one polling interval.
func (s *Session) Stop() {
	s.mu.Lock()
	s.running = false
	s.deck.Empty()
	s.mu.Unlock()

	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

// waitForReady resets the table and blocks until at least two players are ready
func (s *Session) waitForReady(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateWaitingForReady
	for _, p := range append([]*Player(nil), s.players...) {
		if p.conn == nil && !s.isSeed(p.Name) {
			s.dropPlayer(p)
			continue
		}

		p.resetRound()
		s.broadcast(newRemovePlayer(p, true))
	}
	s.broadcastReady(true)
	s.mu.Unlock()

	s.logger.Info("waiting for players")

	ticker := time.NewTicker(s.options.ReadyPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stop:
			return errStopped
		case <-ticker.C:
		}

		if s.tryStartRound() {
			return nil
		}
	}
}

// tryStartRound starts dealing if everyone is ready
func (s *Session) tryStartRound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || !s.everyoneReady() {
		return false
	}

	for _, p := range s.players {
		p.ready = false
	}
	s.broadcastReady(false)

	d := deck.New(s.options.Deck)
	d.Shuffle(s.gen)
	s.deck = d
	s.turnIndex = 0
	s.extraTurns = s.options.extraTurns(len(s.players))
	s.state = StateDealing

	names := make([]string, len(s.players))
	for i, p := range s.players {
		names[i] = p.Name
	}
	s.round = &RoundSummary{
		ID:        uuid.New().String(),
		Players:   names,
		StartedAt: s.now(),
	}

	s.logger.WithFields(logrus.Fields{
		"roundID":    s.round.ID,
		"players":    len(s.players),
		"deckSize":   d.CardsLeft(),
		"extraTurns": s.extraTurns,
	}).Info("round started")

	return true
}

// everyoneReady returns true if at least two connected players are ready and no connected
// player is not. Seeded seats without a connection do not hold up the round.
func (s *Session) everyoneReady() bool {
	bound := 0
	for _, p := range s.players {
		if p.conn == nil {
			continue
		}

		if !p.ready {
			return false
		}
		bound++
	}

	return bound >= 2
}

func (s *Session) isSeed(name string) bool {
	for _, seed := range s.options.Players {
		if seed == name {
			return true
		}
	}

	return false
}

// dealRound runs turns until the exhaustion countdown ends
func (s *Session) dealRound(ctx context.Context) {
	for s.takeTurn(ctx) {
	}

	s.mu.Lock()
	summary := s.round
	historian := s.historian
	stopped := !s.running
	s.round = nil
	s.mu.Unlock()

	if summary == nil || stopped || ctx.Err() != nil {
		s.logger.Info("round abandoned")
		return
	}

	summary.EndedAt = s.now()
	s.logger.WithFields(logrus.Fields{
		"roundID": summary.ID,
		"turns":   summary.Turns,
	}).Info("round over")

	if historian != nil {
		historian.RoundEnded(*summary)
	}
}

// takeTurn plays the turn of the current player and returns true if the round continues
func (s *Session) takeTurn(ctx context.Context) bool {
	s.mu.Lock()
	if !s.running || len(s.players) == 0 {
		s.mu.Unlock()
		return false
	}

	s.turnIndex %= len(s.players)
	p := s.players[s.turnIndex]
	if len(p.piles) == 0 {
		p.piles = append(p.piles, deck.Pile{})
		s.broadcast(newNewPile(p))
	}

	var behavior Behavior
	amount := 0
	if p.rider != nil {
		behavior = BehaviorOf(p.rider.Rider)
		amount = p.rider.amount()
	}
	s.mu.Unlock()

	if behavior == nil {
		s.dealPass(ctx, p)
	} else {
		s.logger.WithFields(logrus.Fields{
			"player": p.Name,
			"rider":  behavior.ID(),
			"amount": amount,
		}).Trace("rider turn")
		behavior.Deal(ctx, s, p, amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.round != nil {
		s.round.Turns++
	}

	if s.deck.CardsLeft() == 0 {
		s.extraTurns--
	}

	if len(s.players) > 0 {
		s.turnIndex = (s.turnIndex + 1) % len(s.players)
	}

	return s.running && ctx.Err() == nil && s.extraTurns > 0
}

// dealPass deals one card onto each of the player's piles. Returns false if the session stopped.
func (s *Session) dealPass(ctx context.Context, p *Player) bool {
	s.mu.Lock()
	piles := len(p.piles)
	s.mu.Unlock()

	for i := 0; i < piles; i++ {
		if !s.dealCard(ctx, p, i) {
			return false
		}
	}

	return true
}

// dealCard deals one card onto a pile and waits the deal interval.
// Returns false if the session stopped.
func (s *Session) dealCard(ctx context.Context, p *Player, pile int) bool {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return false
	}

	if pile >= len(p.piles) {
		s.mu.Unlock()
		return true
	}

	card, err := s.deck.Draw()
	if err != nil {
		if top, ok := p.piles[pile].Top(); ok && top == deck.Ground {
			card = ""
		} else {
			card = deck.Ground
		}
	}

	if card != "" {
		p.piles[pile].AddCard(card)
		s.broadcast(newDealCard(p, pile, card))
		if s.round != nil {
			s.round.CardsDealt++
		}
	}
	s.mu.Unlock()

	return s.wait(ctx, s.options.DealInterval)
}

// wait sleeps without holding the lock. Returns false if the session stopped.
func (s *Session) wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-s.stop:
		return false
	case <-t.C:
		return true
	}
}

// riderOf returns the player's current rider slot
func (s *Session) riderOf(p *Player) *RiderSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return p.rider
}

// clearRider removes the slot if it is still the player's rider. The lock must be held.
func (s *Session) clearRider(p *Player, slot *RiderSlot) {
	if p.rider == nil || p.rider != slot {
		return
	}

	p.rider = nil
	s.broadcast(newRemoveRider(p, false))
}

// broadcast sends a message to every bound connection. The lock must be held.
func (s *Session) broadcast(msg interface{}) {
	for _, p := range s.players {
		s.send(p, msg)
	}
}

// send sends a message to a single player. The lock must be held.
func (s *Session) send(p *Player, msg interface{}) {
	if p.conn == nil {
		return
	}

	if !p.conn.Send(msg) {
		s.logger.WithField("player", p.Name).Warn("send buffer full, message dropped")
	}
}

// broadcastReady sends the ready flags of all players. The lock must be held.
func (s *Session) broadcastReady(showBtn bool) {
	s.broadcast(s.readyUpdate(showBtn))
}

func (s *Session) readyUpdate(showBtn bool) ReadyUpdate {
	data := make([]bool, len(s.players))
	for i, p := range s.players {
		data[i] = p.ready
	}

	return ReadyUpdate{Type: "ReadyUpdate", Data: data, ShowBtn: showBtn}
}

func (s *Session) playerByName(name string) *Player {
	for _, p := range s.players {
		if p.Name == name {
			return p
		}
	}

	return nil
}

func (s *Session) playerByConn(conn Connection) *Player {
	for _, p := range s.players {
		if p.conn != nil && p.conn.ID() == conn.ID() {
			return p
		}
	}

	return nil
}

// dropPlayer takes the player off the table and tells everyone. The lock must be held.
func (s *Session) dropPlayer(p *Player) {
	s.removePlayer(p)
	s.broadcast(newRemovePlayer(p, false))
	s.logger.WithField("player", p.Name).Info("player left")
}

func (s *Session) removePlayer(target *Player) {
	for i, p := range s.players {
		if p == target {
			s.players = append(s.players[:i], s.players[i+1:]...)
			if s.turnIndex > i {
				s.turnIndex--
			}
			return
		}
	}
}
