package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	"github.com/sadopc/apptime/internal/store"
)

// Watch ticks once immediately and then every interval until ctx is done.
// A schema mismatch stops the loop; other tick errors are logged.
func (s *Sampler) Watch(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid watch interval %s", interval)
	}

	if err := s.tick(); err != nil {
		return err
	}
	if err := notifySystemd(daemon.SdNotifyReady); err != nil {
		s.logger.Warn().Err(err).Msg("sd_notify ready failed")
	}
	s.logger.Info().Dur("interval", interval).Msg("Watching")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := notifySystemd(daemon.SdNotifyStopping); err != nil {
				s.logger.Warn().Err(err).Msg("sd_notify stopping failed")
			}
			s.logger.Info().Msg("Watch stopped")
			return nil
		case <-ticker.C:
			if err := s.tick(); err != nil {
				return err
			}
			if err := notifySystemd(daemon.SdNotifyWatchdog); err != nil {
				s.logger.Warn().Err(err).Msg("sd_notify watchdog failed")
			}
		}
	}
}

func (s *Sampler) tick() error {
	_, err := s.Run()
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrConfigMismatch) {
		return err
	}
	s.logger.Error().Err(err).Msg("Tick failed")
	return nil
}

// notifySystemd sends state to systemd. Outside systemd it does nothing.
func notifySystemd(state string) error {
	if _, err := daemon.SdNotify(false, state); err != nil {
		return fmt.Errorf("failed to send sd_notify: %w", err)
	}
	return nil
}
