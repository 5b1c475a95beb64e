package tracker

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sadopc/apptime/internal/store"
)

// WriteMetrics writes today's counters as a node-exporter textfile.
func WriteMetrics(path string, record *store.DailyRecord, sampledAt time.Time) error {
	reg := prometheus.NewRegistry()

	minutes := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "apptime_minutes_today",
			Help: "Minutes each tracked app has been seen running today",
		},
		[]string{"app"},
	)
	lastSample := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "apptime_last_sample_timestamp_seconds",
			Help: "Unix time of the last sample tick",
		},
	)
	reg.MustRegister(minutes, lastSample)

	for _, c := range record.Counters {
		minutes.WithLabelValues(c.App).Set(float64(c.Minutes))
	}
	lastSample.Set(float64(sampledAt.Unix()))

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
