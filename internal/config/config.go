package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sillypantscoder/falling/internal/util"
	"github.com/sillypantscoder/falling/pkg/deck"
	"github.com/sillypantscoder/falling/pkg/falling"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the falling server
type Config struct {
	loaded bool
	Game   struct {
		DealInterval        time.Duration  `yaml:"dealInterval" envconfig:"deal_interval"`
		HoldWindow          time.Duration  `yaml:"holdWindow" envconfig:"hold_window"`
		ReadyPollInterval   time.Duration  `yaml:"readyPollInterval" envconfig:"ready_poll_interval"`
		ExtraTurnsBase      int            `yaml:"extraTurnsBase" envconfig:"extra_turns_base"`
		ExtraTurnsPerPlayer int            `yaml:"extraTurnsPerPlayer" envconfig:"extra_turns_per_player"`
		Deck                map[string]int `yaml:"deck"`
		Players             []string       `yaml:"players"`
	} `yaml:"game"`
	Redis struct {
		Addr  string `yaml:"addr"`
		DB    int    `yaml:"db" envconfig:"db"`
		Queue string `yaml:"queue"`
	} `yaml:"redis"`
	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	PublicDir string `yaml:"publicDir" envconfig:"public_dir"`
}

var config Config

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	opts := falling.DefaultOptions()

	var cfg Config
	cfg.Game.DealInterval = opts.DealInterval
	cfg.Game.HoldWindow = opts.HoldWindow
	cfg.Game.ReadyPollInterval = opts.ReadyPollInterval
	cfg.Game.ExtraTurnsBase = opts.ExtraTurnsBase
	cfg.Game.ExtraTurnsPerPlayer = opts.ExtraTurnsPerPlayer
	cfg.Game.Deck = make(map[string]int, len(opts.Deck))
	for card, n := range opts.Deck {
		cfg.Game.Deck[card.ID()] = n
	}
	cfg.Game.Players = []string{}
	cfg.Redis.Queue = "falling_rounds"
	cfg.Log.Level = "info"

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error, the defaults are used instead
func Load() error {
	cfg, err := LoadFile(util.Getenv("FALLING_CONFIG_FILE", "config.yaml"))
	if err != nil {
		return err
	}

	config = cfg
	return nil
}

// LoadFile loads the configuration from a YAML file and the environment
func LoadFile(configFile string) (Config, error) {
	cfg := DefaultConfig()

	file, err := os.Open(configFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, err
	default:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("could not decode %s: %w", configFile, err)
		}
	}

	if err := envconfig.Process("falling", &cfg); err != nil {
		return Config{}, err
	}

	cfg.loaded = true
	return cfg, nil
}

// SessionOptions converts the game section into session options
func (c Config) SessionOptions() (falling.Options, error) {
	counts := make(deck.Counts, len(c.Game.Deck))
	for id, n := range c.Game.Deck {
		card, err := deck.CardFromString(id)
		if err != nil {
			return falling.Options{}, err
		}

		if card == deck.Ground {
			return falling.Options{}, errors.New("ground cards are dealt when the deck runs out and cannot be part of it")
		}

		if n < 0 {
			return falling.Options{}, fmt.Errorf("deck count for %s cannot be negative", card)
		}

		counts[card] = n
	}

	if c.Game.DealInterval < 0 || c.Game.HoldWindow < 0 {
		return falling.Options{}, errors.New("intervals cannot be negative")
	}

	return falling.Options{
		DealInterval:        c.Game.DealInterval,
		HoldWindow:          c.Game.HoldWindow,
		ReadyPollInterval:   c.Game.ReadyPollInterval,
		ExtraTurnsBase:      c.Game.ExtraTurnsBase,
		ExtraTurnsPerPlayer: c.Game.ExtraTurnsPerPlayer,
		Deck:                counts,
		Players:             c.Game.Players,
	}, nil
}
