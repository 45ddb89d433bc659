// Command bot joins a falling server and plays random cards until it is grounded
package main

import (
	"encoding/json"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sillypantscoder/falling/internal/util"
	"github.com/sirupsen/logrus"
)

var (
	url      = flag.String("url", util.Getenv("FALLING_BOT_URL", "ws://localhost:8080/ws"), "the websocket endpoint")
	name     = flag.String("name", "", "the player name (random if empty)")
	interval = flag.Duration("interval", 600*time.Millisecond, "how often the bot acts")
)

type bot struct {
	conn   *websocket.Conn
	logger logrus.FieldLogger

	mu    sync.Mutex
	table table
}

func main() {
	flag.Parse()

	if *name == "" {
		*name = util.GetRandomName()
	}

	logger := logrus.WithField("name", *name)
	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		logger.WithError(err).Fatal("could not connect")
	}
	defer conn.Close()

	b := &bot{
		conn:   conn,
		logger: logger,
		table:  table{me: *name},
	}

	if err := b.send(map[string]interface{}{"type": "Login", "name": *name}); err != nil {
		logger.WithError(err).Fatal("could not log in")
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		b.readLoop()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	r := rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
	for {
		select {
		case <-closed:
			logger.Info("server closed the connection")
			return
		case <-sig:
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
			return
		case <-ticker.C:
			if err := b.tick(r); err != nil {
				logger.WithError(err).Error("could not send")
				return
			}
		}
	}
}

func (b *bot) readLoop() {
	for {
		var ev event
		if err := b.conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure) {
				b.logger.WithError(err).Warn("could not read message")
			}
			return
		}

		if ev.Type == "Message" {
			b.logger.WithField("msg", ev.Msg).Debug("play refused")
			continue
		}

		b.mu.Lock()
		err := b.table.apply(ev)
		b.mu.Unlock()

		if err != nil {
			b.logger.WithError(err).WithField("type", ev.Type).Warn("out of sync with server")
		}
	}
}

// tick readies up or plays one card
func (b *bot) tick(r *rand.Rand) error {
	b.mu.Lock()
	needsReady := b.table.needsReady()
	grounded := b.table.grounded()
	pile, target, ok := b.table.move(r)
	b.mu.Unlock()

	switch {
	case needsReady:
		return b.send(map[string]interface{}{"type": "Ready"})
	case grounded || !ok:
		return nil
	}

	if err := b.send(map[string]interface{}{"type": "GrabCard", "pileIndex": pile, "slide": false}); err != nil {
		return err
	}

	return b.send(map[string]interface{}{"type": "PlayCard", "target": target})
}

func (b *bot) send(msg map[string]interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	b.logger.WithField("message", string(data)).Trace("sending")
	return b.conn.WriteMessage(websocket.TextMessage, data)
}
