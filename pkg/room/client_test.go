package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_Send(t *testing.T) {
	c := NewClient(nil, "127.0.0.1")
	assert.NotEmpty(t, c.ID())
	assert.NotEqual(t, c.ID(), NewClient(nil, "127.0.0.1").ID())

	for i := 0; i < 256; i++ {
		assert.True(t, c.Send(i))
	}

	// the buffer is full, the message is dropped instead of blocking
	assert.False(t, c.Send("overflow"))
	assert.Equal(t, 0, <-c.SendChan())
}

func TestClient_Disconnect(t *testing.T) {
	c := NewClient(nil, "127.0.0.1")
	c.Disconnect("first")
	c.Disconnect("second")

	assert.Equal(t, "first", <-c.CloseChan())
	select {
	case reason := <-c.CloseChan():
		t.Fatalf("unexpected close reason %q", reason)
	default:
	}
}
