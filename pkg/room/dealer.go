package room

import (
	"context"
	"sync"
	"time"

	"github.com/sillypantscoder/falling/pkg/falling"
	"github.com/sirupsen/logrus"
)

// Dealer owns the session and the websocket clients connected to it
type Dealer struct {
	session *falling.Session
	logger  logrus.FieldLogger
	clients map[*Client]bool
	lock    sync.RWMutex

	cancel context.CancelFunc
	done   chan struct{}
}

// NewDealer creates a new dealer object
func NewDealer(session *falling.Session, logger logrus.FieldLogger) *Dealer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Dealer{
		session: session,
		logger:  logger,
		clients: make(map[*Client]bool),
		done:    make(chan struct{}),
	}
}

// Session returns the session the dealer runs
func (d *Dealer) Session() *falling.Session {
	return d.session
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the session run loop
func (d *Dealer) StartShift() {
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	go func() {
		defer close(d.done)

		d.logger.Debug("starting session run loop")
		if err := d.session.Run(ctx); err != nil {
			d.logger.WithError(err).Error("session run loop failed")
			return
		}

		d.logger.Debug("session run loop terminated")
	}()
}

// EndShift stops the session and disconnects every client.
// It waits up to timeout for the run loop to exit and returns false if it did not.
func (d *Dealer) EndShift(timeout time.Duration) bool {
	d.session.Stop()
	if d.cancel != nil {
		d.cancel()
	}

	for _, client := range d.Clients() {
		client.Disconnect("server shutting down")
	}

	if d.cancel == nil {
		return true
	}

	select {
	case <-d.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.session.HandleConnect(client)
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	d.session.HandleDisconnect(client)

	return nClients == 0
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, data []byte) {
	d.logger.WithField("client", c.String()).WithField("message", string(data)).Trace("received message")
	d.session.HandleMessage(c, data)
}
