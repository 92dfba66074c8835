package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marketbay/auctiondesk/client"
	"github.com/marketbay/auctiondesk/core"
	"github.com/marketbay/auctiondesk/dashboard"
)

func newListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your auctions with countdowns and available actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps()
			if err != nil {
				return err
			}

			auctions, err := d.api.ListMyAuctions(cmd.Context(), status)
			if err != nil {
				return err
			}

			// One clock snapshot for every row.
			now := time.Now()
			for _, a := range auctions {
				printAuctionLine(cmd, a, now)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by status (scheduled, active, paused, ended, cancelled, settled)")
	return cmd
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch your auctions with a live one-second countdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			poller := dashboard.NewPoller(d.api, dashboard.Hooks{
				OnTick: func(now time.Time, rows []dashboard.CountdownRow) {
					for _, row := range rows {
						fmt.Fprintf(cmd.OutOrStdout(), "%s  [%s]  %s\n", row.AuctionID, row.Status, row.Countdown.Label)
					}
				},
				OnList: func(auctions []core.Auction) {
					d.log.Info().Int("count", len(auctions)).Msg("auction list refreshed")
				},
				OnError: func(err error) {
					if errors.Is(err, client.ErrUnsupported) {
						fmt.Fprintln(cmd.ErrOrStderr(), "Note: feature not available yet on this service")
						return
					}
					d.log.Error().Err(err).Msg("refresh failed")
				},
			},
				dashboard.WithInterval(d.cfg.PollInterval),
				dashboard.WithPollerLogger(d.log),
			)

			if d.cfg.SnapshotPath != "" {
				if snap, err := dashboard.LoadSnapshot(d.cfg.SnapshotPath); err != nil {
					d.log.Warn().Err(err).Msg("ignoring unreadable snapshot")
				} else {
					poller.Restore(snap)
				}
			}

			poller.Start(ctx)
			<-ctx.Done()
			poller.Stop()

			if d.cfg.SnapshotPath != "" {
				if err := dashboard.SaveSnapshot(d.cfg.SnapshotPath, poller.Snapshot()); err != nil {
					d.log.Warn().Err(err).Msg("snapshot not saved")
				}
			}
			return nil
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <auction-id>",
		Short: "Show one auction with countdown, participants, and actions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps()
			if err != nil {
				return err
			}

			auction, err := d.api.GetAuction(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printAuctionLine(cmd, auction, time.Now())
			fmt.Fprintf(cmd.OutOrStdout(), "  start price %s, reserve %s, min increment %s\n",
				auction.StartPrice, auction.ReservePrice, auction.MinIncrement)
			fmt.Fprintf(cmd.OutOrStdout(), "  window %s -> %s\n",
				core.FormatLocalInput(auction.StartAt), core.FormatLocalInput(auction.EndAt))
			fmt.Fprintf(cmd.OutOrStdout(), "  participants: %d\n", auction.ParticipantsCount)
			return nil
		},
	}
}

func newBidsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bids <auction-id>",
		Short: "Show the ranked bid history of an auction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps()
			if err != nil {
				return err
			}

			bids, err := d.api.ListBids(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, client.ErrUnsupported) {
					fmt.Fprintln(cmd.OutOrStdout(), "Bid history is not available yet on this service.")
					return nil
				}
				return err
			}

			ranked := core.RankBids(bids)
			if len(ranked) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No bids yet.")
				return nil
			}
			for i, b := range ranked {
				marker := "  "
				if i == 0 {
					marker = "* " // top bid
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%2d. %s  %s  (%s)\n",
					marker, i+1, b.Amount, b.Bidder.Name, b.CreatedAt.Local().Format(time.RFC822))
			}
			return nil
		},
	}
}

func newTransitionCmd(action core.Action, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <auction-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps()
			if err != nil {
				return err
			}

			auction, err := d.api.GetAuction(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fresh, err := d.ctrl.Apply(cmd.Context(), auction, action)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", fresh.AuctionID, fresh.Status)
			return nil
		},
	}
}

func newEditCmd() *cobra.Command {
	var form core.EditForm
	cmd := &cobra.Command{
		Use:   "edit <auction-id>",
		Short: "Edit an auction's prices and schedule",
		Long: "Edit an auction's prices and schedule. All values are validated locally\n" +
			"before anything is sent; times use the local wall-clock format " + core.LocalInputLayout + ".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps()
			if err != nil {
				return err
			}

			auction, err := d.api.GetAuction(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			updated, err := d.ctrl.SubmitEdit(cmd.Context(), auction, form)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s updated: start %s, reserve %s, increment %s, %s -> %s\n",
				updated.AuctionID, updated.StartPrice, updated.ReservePrice, updated.MinIncrement,
				core.FormatLocalInput(updated.StartAt), core.FormatLocalInput(updated.EndAt))
			return nil
		},
	}
	cmd.Flags().StringVar(&form.StartPrice, "start-price", "", "starting price")
	cmd.Flags().StringVar(&form.ReservePrice, "reserve-price", "", "reserve price (must be >= start price)")
	cmd.Flags().StringVar(&form.MinIncrement, "min-increment", "", "minimum bid increment")
	cmd.Flags().StringVar(&form.StartAt, "start-at", "", "start time, "+core.LocalInputLayout)
	cmd.Flags().StringVar(&form.EndAt, "end-at", "", "end time, "+core.LocalInputLayout)
	return cmd
}

func printAuctionLine(cmd *cobra.Command, a core.Auction, now time.Time) {
	cd := core.ComputePhase(now, a.StartAt, a.EndAt)

	actions := core.ActionsFor(string(a.Status), core.DefaultEditPolicy)
	labels := make([]string, len(actions))
	for i, action := range actions {
		labels[i] = action.Label()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s  %q  [%s]  %s  actions: %v\n",
		a.AuctionID, a.Item.Title, a.Status, cd.Label, labels)
}
