package falling

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sillypantscoder/falling/internal/rng"
	"github.com/sillypantscoder/falling/pkg/deck"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	id string

	mu           sync.Mutex
	messages     []map[string]interface{}
	disconnected string
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (f *fakeConn) ID() string {
	return f.id
}

func (f *fakeConn) Send(msg interface{}) bool {
	b, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, m)

	return true
}

func (f *fakeConn) Disconnect(reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnected = reason
}

func (f *fakeConn) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = nil
}

func (f *fakeConn) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	types := make([]string, len(f.messages))
	for i, m := range f.messages {
		types[i] = m["type"].(string)
	}

	return types
}

func (f *fakeConn) ofType(t string) []map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []map[string]interface{}
	for _, m := range f.messages {
		if m["type"] == t {
			out = append(out, m)
		}
	}

	return out
}

func (f *fakeConn) disconnectReason() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disconnected
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.DealInterval = 0
	opts.ReadyPollInterval = time.Millisecond

	return opts
}

// newTestSession returns a running session with every name logged in
func newTestSession(t *testing.T, names ...string) (*Session, map[string]*fakeConn, *testClock) {
	t.Helper()

	logger, _ := test.NewNullLogger()
	s := NewSession(testOptions(), logger)
	s.SetGenerator(rng.NewSeeded(0))
	clock := &testClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s.now = clock.Now
	s.running = true

	conns := make(map[string]*fakeConn)
	for _, name := range names {
		conn := newFakeConn("conn-" + name)
		login(s, conn, name)
		require.NotNil(t, s.playerByConn(conn))
		conns[name] = conn
	}

	return s, conns, clock
}

func login(s *Session, conn Connection, name string) {
	s.HandleMessage(conn, []byte(fmt.Sprintf(`{"type":"Login","name":%q}`, name)))
}

func grab(s *Session, conn Connection, pile int, slide bool) {
	s.HandleMessage(conn, []byte(fmt.Sprintf(`{"type":"GrabCard","pileIndex":%d,"slide":%t}`, pile, slide)))
}

func play(s *Session, conn Connection, target string) {
	s.HandleMessage(conn, []byte(fmt.Sprintf(`{"type":"PlayCard","target":%q}`, target)))
}

func piles(cards ...string) []deck.Pile {
	out := make([]deck.Pile, len(cards))
	for i, c := range cards {
		out[i] = deck.CardsFromString(c)
	}

	return out
}

func resetConns(conns map[string]*fakeConn) {
	for _, c := range conns {
		c.reset()
	}
}
