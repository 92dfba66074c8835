package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// App holds the auction service connection and dashboard settings, read
// from AUCTIONDESK_* environment variables.
type App struct {
	// Service
	BaseURL       string `envconfig:"BASE_URL" required:"true"`
	SessionCookie string `envconfig:"SESSION_COOKIE"`
	// Timing
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"1s"`
	HTTPTimeout  time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	// Local cache
	SnapshotPath string `envconfig:"SNAPSHOT_PATH"`
	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("auctiondesk", &c)
	return c, err
}
