package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/sillypantscoder/falling/pkg/falling"
	"github.com/stretchr/testify/assert"
)

func TestMux_getSession(t *testing.T) {
	ts := httptest.NewServer(newTestMux("A", "B"))
	defer ts.Close()

	var view falling.View
	assertGet(t, ts, "/session", &view, 200)
	assert.Equal(t, "lobby", view.State)
	if assert.Len(t, view.Players, 2) {
		assert.Equal(t, "A", view.Players[0].Name)
		assert.False(t, view.Players[0].Connected)
		assert.Equal(t, [][]string{{}}, view.Players[0].Piles)
	}
}
