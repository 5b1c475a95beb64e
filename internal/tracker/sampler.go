// Package tracker runs sample ticks: retention purge, counter update,
// notification check and metrics export.
package tracker

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sadopc/apptime/internal/notify"
	"github.com/sadopc/apptime/internal/store"
)

// Config holds the optional parts of a tick.
type Config struct {
	MetricsFile string
	Checker     *notify.Checker // nil disables notifications
}

// Result describes one tick.
type Result struct {
	Active bool // false when sampling is switched off
	Purged int64
	Record *store.DailyRecord
	Alerts []notify.Alert
}

type Sampler struct {
	store  *store.Store
	oracle Oracle
	config Config
	logger zerolog.Logger
	now    func() time.Time
}

func NewSampler(s *store.Store, oracle Oracle, config Config, logger zerolog.Logger) *Sampler {
	return &Sampler{
		store:  s,
		oracle: oracle,
		config: config,
		logger: logger.With().Str("component", "sampler").Logger(),
		now:    time.Now,
	}
}

// Run performs one tick. Ticks are skipped while the state setting is off.
func (s *Sampler) Run() (*Result, error) {
	settings, err := s.store.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if !settings.Active() {
		s.logger.Debug().Msg("Sampling is off, skipping tick")
		return &Result{Active: false}, nil
	}

	res := &Result{Active: true}

	res.Purged, err = s.store.PurgeOlderThan(settings.StorageSize)
	if err != nil {
		return nil, err
	}
	if res.Purged > 0 {
		s.logger.Info().
			Int64("rows_deleted", res.Purged).
			Int("storage_size", settings.StorageSize).
			Msg("Old usage rows purged")
	}

	res.Record, err = s.store.SampleTick(s.oracle.IsRunning)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Int("apps", len(res.Record.Counters)).Msg("Tick recorded")

	if s.config.Checker != nil {
		rules, err := s.store.Notifications()
		if err != nil {
			return nil, err
		}
		res.Alerts = s.config.Checker.Check(rules, res.Record)
	}

	if s.config.MetricsFile != "" {
		if err := WriteMetrics(s.config.MetricsFile, res.Record, s.now()); err != nil {
			// Metrics are best effort; the tick itself is already stored.
			s.logger.Warn().Err(err).Str("path", s.config.MetricsFile).Msg("Failed to write metrics")
		}
	}

	return res, nil
}
