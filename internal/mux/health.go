package mux

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	State   string `json:"state"`
	Players int    `json:"players"`
	Uptime  string `json:"uptime"`
}

func (m *Mux) getHealth() http.HandlerFunc {
	started := time.Now()

	return func(w http.ResponseWriter, r *http.Request) {
		view := m.dealer.Session().View()
		writeJSON(w, http.StatusOK, healthResponse{
			Status:  "OK",
			Version: m.version,
			State:   view.State,
			Players: len(view.Players),
			Uptime:  time.Since(started).Round(time.Second).String(),
		})
	}
}
