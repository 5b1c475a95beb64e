package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/apptime/internal/notify"
	"github.com/sadopc/apptime/internal/store"
	"github.com/sadopc/apptime/internal/tracker"
)

func newSampler(e *env) *tracker.Sampler {
	cfg := tracker.Config{MetricsFile: e.cfg.Tracker.MetricsFile}
	if e.cfg.Tracker.Notifications {
		cfg.Checker = notify.NewChecker(notify.Desktop{}, e.logger)
	}
	return tracker.NewSampler(e.store, tracker.NewProcessOracle(e.logger), cfg, e.logger)
}

func newUpdateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Record one sample tick",
		Long: `Record one minute for every tracked app that is running, and for the
session. Rows older than the storage size are purged first. Nothing happens
while the state setting is off. Run it once a minute, e.g. from cron or a
systemd timer, or use "apptime watch".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts, false)
			if err != nil {
				return err
			}
			defer e.Close()

			res, err := newSampler(e).Run()
			if errors.Is(err, store.ErrConfigMismatch) {
				e.logger.Fatal().Err(err).Msg("Tracked apps and stored values disagree")
			}
			if err != nil {
				return err
			}
			if res.Active {
				e.logger.Debug().Int("alerts", len(res.Alerts)).Msg("Update done")
			}
			return nil
		},
	}
}

func newWatchCmd(opts *globalOptions) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sample continuously until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts, false)
			if err != nil {
				return err
			}
			defer e.Close()

			if interval <= 0 {
				interval = e.cfg.Tracker.Interval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = newSampler(e).Watch(ctx, interval)
			if errors.Is(err, store.ErrConfigMismatch) {
				e.logger.Fatal().Err(err).Msg("Tracked apps and stored values disagree")
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Tick interval (default from tracker.interval)")
	return cmd
}
