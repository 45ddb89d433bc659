package falling

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// HandleConnect is called when a transport accepts a connection
func (s *Session) HandleConnect(conn Connection) {
	s.logger.WithField("conn", conn.ID()).Debug("connection opened")
}

// HandleDisconnect is called when a transport connection closes.
// Before a round the player leaves the table; during a round the seat is kept for a reconnect.
func (s *Session) HandleDisconnect(conn Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.playerByConn(conn)
	if p == nil {
		return
	}

	p.conn = nil
	p.hand = nil

	logger := s.logger.WithField("player", p.Name)
	if s.state == StateDealing {
		logger.Info("player disconnected, keeping seat")
		return
	}

	s.dropPlayer(p)
	s.broadcastReady(true)
}

// HandleMessage routes a raw message from a connection
func (s *Session) HandleMessage(conn Connection, data []byte) {
	msg, err := DecodePayload(data)
	if err != nil {
		s.logger.WithError(err).WithField("conn", conn.ID()).Warn("could not decode message")
		conn.Disconnect("malformed message")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.route(conn, msg); err != nil {
		s.reject(conn, msg, err)
	}
}

func (s *Session) route(conn Connection, msg *PayloadIn) error {
	switch msg.Type {
	case typeLogin:
		return s.login(conn, msg.Name)
	case typeGrabCard:
		return s.grabCard(conn, *msg.PileIndex, msg.Slide)
	case typePlayCard:
		return s.playCard(conn, msg.Target)
	case typeReady:
		return s.ready(conn)
	}

	return ErrUnknownMessage
}

// reject handles a refused message. The lock must be held.
func (s *Session) reject(conn Connection, msg *PayloadIn, err error) {
	logger := s.logger.WithError(err).WithFields(logrus.Fields{
		"conn": conn.ID(),
		"type": msg.Type,
	})

	var ruleErr RuleError
	switch {
	case errors.As(err, &ruleErr):
		logger.Debug("play refused")
		conn.Send(newMessage(ruleErr.Error()))
	case errors.Is(err, ErrUnknownMessage):
		logger.Warn("protocol violation")
		conn.Disconnect("unknown message")
	case errors.Is(err, ErrNameTaken):
		logger.Warn("login conflict")
		conn.Disconnect("name already in use")
	default:
		logger.Debug("message ignored")
	}
}

func (s *Session) login(conn Connection, name string) error {
	if bound := s.playerByConn(conn); bound != nil {
		if bound.Name == name {
			return nil
		}

		return ErrAlreadyLoggedIn
	}

	if p := s.playerByName(name); p != nil {
		if p.conn != nil {
			return ErrNameTaken
		}

		p.conn = conn
		s.sendSnapshot(conn)
		s.logger.WithField("player", name).Info("player reconnected")
		return nil
	}

	if s.state == StateDealing {
		return ErrRoundInProgress
	}

	s.sendSnapshot(conn)

	p := newPlayer(name)
	p.conn = conn
	s.players = append(s.players, p)
	s.broadcast(newCreatePlayer(p))
	s.broadcastReady(true)
	s.logger.WithField("player", name).Info("player joined")

	return nil
}

// sendSnapshot sends every player and the ready flags to one connection. The lock must be held.
func (s *Session) sendSnapshot(conn Connection) {
	for _, p := range s.players {
		conn.Send(newCreatePlayer(p))
	}

	conn.Send(s.readyUpdate(s.state != StateDealing))
}

func (s *Session) grabCard(conn Connection, pile int, slide bool) error {
	p := s.playerByConn(conn)
	if p == nil {
		return ErrNotLoggedIn
	}

	if pile < 0 || pile >= len(p.piles) {
		return ErrPileOutOfRange
	}

	card := p.piles[pile].Len() - 1
	if slide {
		card--
	}

	if card < 0 {
		return ErrNoCardToGrab
	}

	p.hand = &HandHold{
		PickedUp: s.now(),
		Pile:     pile,
		Card:     card,
	}

	return nil
}

func (s *Session) playCard(conn Connection, target *string) error {
	p := s.playerByConn(conn)
	if p == nil {
		return ErrNotLoggedIn
	}

	if p.hand == nil {
		return ErrNoHold
	}

	if target == nil {
		p.hand = nil
		return nil
	}

	if !p.holdIsLive(s.now(), s.options.HoldWindow) {
		return ErrHoldExpired
	}

	to := s.playerByName(*target)
	if to == nil {
		return ErrUnknownPlayer
	}

	hold := *p.hand
	card, ok := p.cardAt(hold.Pile, hold.Card)
	if !ok {
		p.hand = nil
		return ErrCardMoved
	}

	behavior := BehaviorOf(card)
	if err := behavior.CanPlay(p, to); err != nil {
		return err
	}

	p.piles[hold.Pile].RemoveCard(hold.Card)
	behavior.Play(s, p, hold.Pile, hold.Card, to)
	p.hand = nil

	s.logger.WithFields(logrus.Fields{
		"from": p.Name,
		"to":   to.Name,
		"card": behavior.ID(),
	}).Debug("card played")

	if p.piles[hold.Pile].Len() == 0 {
		p.removePile(hold.Pile)
		s.broadcast(newRemovePile(p, hold.Pile))
	}

	return nil
}

func (s *Session) ready(conn Connection) error {
	p := s.playerByConn(conn)
	if p == nil {
		return ErrNotLoggedIn
	}

	if s.state != StateWaitingForReady {
		return ErrNotWaitingForReady
	}

	p.ready = true
	s.broadcastReady(true)

	return nil
}
