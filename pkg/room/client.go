package room

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// close carries the reason the server wants the connection closed
	close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	id         string
	remoteAddr string
	dealer     *Dealer
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		Conn:       conn,
		send:       make(chan interface{}, 256),
		close:      make(chan string, 1),
		id:         uuid.New().String(),
		remoteAddr: remoteAddr,
	}
}

// ID returns the unique identifier of the connection
func (c *Client) ID() string {
	return c.id
}

// Send send a message to the web client
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// Disconnect asks the write loop to close the connection
// Only the first reason is kept
func (c *Client) Disconnect(reason string) {
	select {
	case c.close <- reason:
	default:
	}
}

// CloseChan returns a read-only channel of close requests
func (c *Client) CloseChan() <-chan string {
	return c.close
}

// String returns a traceable identifier for the connection
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.remoteAddr, c.id)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(data []byte) {
	if c.dealer == nil {
		logrus.WithField("client", c.String()).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, data)
}
