package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/cors"
	"github.com/sillypantscoder/falling/internal/config"
	"github.com/sillypantscoder/falling/internal/history"
	"github.com/sillypantscoder/falling/internal/mux"
	"github.com/sillypantscoder/falling/pkg/falling"
	"github.com/sillypantscoder/falling/pkg/room"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const shutdownTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":8080", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	opts, err := config.Instance().SessionOptions()
	if err != nil {
		logrus.WithError(err).Fatal("invalid game configuration")
	}

	session := falling.NewSession(opts, logrus.WithField("component", "session"))
	redisHistorian := setupHistorian(session)

	dealer := room.NewDealer(session, logrus.WithField("component", "dealer"))
	dealer.StartShift()

	m := mux.NewMux(Version, dealer)
	if dir := config.Instance().PublicDir; dir != "" {
		m.ServeStatic(dir)
	}

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	// websocket connections are long lived, so there is no write timeout
	srv := &http.Server{
		Addr:        *addr,
		Handler:     loggingHandler(c.Handler(m)),
		ReadTimeout: readTimeout,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("could not listen")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	logrus.WithField("signal", (<-sig).String()).Info("shutting down")

	if !dealer.EndShift(shutdownTimeout) {
		logrus.Warn("session did not stop in time")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("could not shut down cleanly")
	}

	if redisHistorian != nil {
		redisHistorian.Wait()
	}
}

// setupHistorian records rounds to Redis when configured, otherwise to the log
func setupHistorian(session *falling.Session) *history.RedisHistorian {
	cfg := config.Instance()
	if cfg.Redis.Addr == "" {
		session.SetHistorian(history.LogHistorian{Logger: logrus.WithField("component", "history")})
		return nil
	}

	rdb, err := history.Connect(context.Background(), cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to redis")
	}

	h := history.NewRedisHistorian(rdb, cfg.Redis.Queue, logrus.WithField("component", "history"))
	session.SetHistorian(h)

	return h
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
