// Package main provides the auctiondesk binary: a seller-side dashboard
// for auction lifecycle management. It lists the seller's auctions with
// live countdowns, shows ranked bid history, and drives lifecycle
// transitions through the auction service.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/marketbay/auctiondesk/client"
	"github.com/marketbay/auctiondesk/config"
	"github.com/marketbay/auctiondesk/core"
	"github.com/marketbay/auctiondesk/dashboard"
)

const appName = "auctiondesk"

// deps is the wiring shared by every subcommand.
type deps struct {
	cfg  config.App
	log  zerolog.Logger
	api  *client.Client
	ctrl *dashboard.Controller
}

func buildDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	opts := []client.Option{
		client.WithLogger(log),
		client.WithTimeout(cfg.HTTPTimeout),
	}
	if cfg.SessionCookie != "" {
		opts = append(opts, client.WithSessionCookie(cfg.SessionCookie))
	}
	api, err := client.New(cfg.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("build client: %w", err)
	}

	return &deps{
		cfg:  cfg,
		log:  log,
		api:  api,
		ctrl: dashboard.NewController(api, log),
	}, nil
}

func main() {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Seller dashboard for auction lifecycle management",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newListCmd(),
		newWatchCmd(),
		newShowCmd(),
		newBidsCmd(),
		newTransitionCmd(core.ActionActivateNow, "activate", "Activate a scheduled auction immediately"),
		newTransitionCmd(core.ActionPause, "pause", "Pause an active auction"),
		newTransitionCmd(core.ActionResume, "resume", "Resume a paused auction"),
		newTransitionCmd(core.ActionCancel, "cancel", "Cancel an active or paused auction"),
		newEditCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode separates domain rejections (validation failures, disallowed or
// stale transitions) from usage and transport failures.
func exitCode(err error) int {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Stale {
			return 1
		}
		return 2
	}
	if errors.Is(err, client.ErrUnsupported) {
		return 2
	}
	// Core validation errors are domain rejections.
	for _, domainErr := range []error{
		core.ErrBadStartPrice, core.ErrBadReservePrice, core.ErrReserveBelowStart,
		core.ErrBadIncrement, core.ErrMissingStartAt, core.ErrMissingEndAt,
		core.ErrEndNotAfterStart, dashboard.ErrNotEditable,
	} {
		if errors.Is(err, domainErr) {
			return 1
		}
	}
	return 2
}
