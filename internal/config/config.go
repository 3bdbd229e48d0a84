package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Probe    Probe
	Metrics  Metrics
	Postgres Postgres
	Redis    Redis
	Ethos    Ethos
	Bot      Bot
	Voting   Voting
	Contest  Contest
	Worker   Worker
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"trustrace"`
	Version string `env:"APP_VERSION" envDefault:"v1.0.0"`
	Debug   bool   `env:"APP_DEBUG" envDefault:"false"`
}

type HTTP struct {
	ListenAddress   string        `env:"HTTP_LISTEN_ADDRESS" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogFieldMaxLen  int           `env:"HTTP_LOG_FIELD_MAX_LEN" envDefault:"4096"`
}

type Probe struct {
	ListenAddress string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
}

type Metrics struct {
	ListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
}

type Worker struct {
	Concurrency    int           `env:"WORKER_CONCURRENCY" envDefault:"4"`
	RecalcDebounce time.Duration `env:"WORKER_RECALC_DEBOUNCE" envDefault:"5s"`
}

// Bot is optional: an empty token disables both the command bot and alerts.
type Bot struct {
	Token       string `env:"BOT_TOKEN"`
	AlertChatID int64  `env:"BOT_ALERT_CHAT_ID"`
	AdminID     int64  `env:"BOT_ADMIN_ID"`
}

func (b Bot) Enabled() bool {
	return b.Token != ""
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.validate(); err != nil {
		return Config{}, fmt.Errorf("config.validate: %w", err)
	}

	return config, nil
}

func (c Config) validate() error {
	if c.Voting.MinVoteAmount <= 0 || c.Voting.MinVoteAmount > c.Voting.MaxVoteAmount {
		return fmt.Errorf("voting amount bounds [%v, %v]", c.Voting.MinVoteAmount, c.Voting.MaxVoteAmount)
	}

	if c.Contest.MinSubmissionDuration > c.Contest.MaxSubmissionDuration ||
		c.Contest.MinVotingDuration > c.Contest.MaxVotingDuration {
		return errors.New("contest duration bounds")
	}

	switch c.Ethos.CacheBackend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("unknown ethos cache backend %q", c.Ethos.CacheBackend)
	}

	return nil
}
