package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"
	"github.com/sillypantscoder/falling/pkg/room"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config  config
	version string
	dealer  *room.Dealer
}

type config struct {
	// maxMessageSize is the largest websocket message a client may send
	maxMessageSize int64
}

// NewMux returns a new HTTP mux
func NewMux(version string, dealer *room.Dealer) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		dealer:  dealer,
		config: config{
			maxMessageSize: 4096,
		},
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/session").Handler(this.getSession())
	r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, nil)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, nil)
	})

	return this
}

// ServeStatic serves the browser client from dir for every path not matched by the API
func (m *Mux) ServeStatic(dir string) {
	m.Router.PathPrefix("/").Handler(http.FileServer(http.Dir(dir)))
}
