// Package history records finished rounds
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sillypantscoder/falling/pkg/falling"
	"github.com/sirupsen/logrus"
)

// DefaultQueueName is the Redis list finished rounds are pushed onto
const DefaultQueueName = "falling_rounds"

const pushTimeout = 5 * time.Second

// lister is the subset of the Redis client used for publishing
type lister interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// Connect returns a Redis client after verifying the server answers
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	return rdb, nil
}

// RedisHistorian pushes every finished round onto a Redis list as JSON
type RedisHistorian struct {
	rdb    lister
	queue  string
	logger logrus.FieldLogger
	wg     sync.WaitGroup
}

// NewRedisHistorian returns a historian that pushes onto queue
func NewRedisHistorian(rdb *redis.Client, queue string, logger logrus.FieldLogger) *RedisHistorian {
	return newRedisHistorian(rdb, queue, logger)
}

func newRedisHistorian(rdb lister, queue string, logger logrus.FieldLogger) *RedisHistorian {
	if queue == "" {
		queue = DefaultQueueName
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &RedisHistorian{
		rdb:    rdb,
		queue:  queue,
		logger: logger,
	}
}

// RoundEnded publishes the round in the background
func (h *RedisHistorian) RoundEnded(summary falling.RoundSummary) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()

		if err := h.Publish(ctx, summary); err != nil {
			h.logger.WithError(err).WithField("roundID", summary.ID).Error("could not publish round")
		}
	}()
}

// Publish serializes the round and pushes it onto the queue
func (h *RedisHistorian) Publish(ctx context.Context, summary falling.RoundSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal round: %w", err)
	}

	if err := h.rdb.RPush(ctx, h.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", h.queue, err)
	}

	return nil
}

// Wait blocks until every pending publish has finished
func (h *RedisHistorian) Wait() {
	h.wg.Wait()
}

// LogHistorian writes finished rounds to the log
type LogHistorian struct {
	Logger logrus.FieldLogger
}

// RoundEnded logs the round
func (l LogHistorian) RoundEnded(summary falling.RoundSummary) {
	logger := l.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	logger.WithFields(logrus.Fields{
		"roundID":    summary.ID,
		"players":    summary.Players,
		"turns":      summary.Turns,
		"cardsDealt": summary.CardsDealt,
		"duration":   summary.EndedAt.Sub(summary.StartedAt).String(),
	}).Info("round recorded")
}
