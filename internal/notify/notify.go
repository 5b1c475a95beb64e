// Package notify delivers threshold alerts when a tracked app reaches its
// configured daily running time.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog"

	"github.com/sadopc/apptime/internal/series"
	"github.com/sadopc/apptime/internal/store"
)

// AppName is shown by the desktop notification daemon.
const AppName = "apptime"

// Notifier delivers a single message.
type Notifier interface {
	Notify(title, body string) error
}

// Desktop sends notifications through the platform notification service.
type Desktop struct{}

func (Desktop) Notify(title, body string) error {
	beeep.AppName = AppName
	return beeep.Notify(title, body, "")
}

// Alert is a rule that fired on the current tick.
type Alert struct {
	App     string
	Minutes int
	Title   string
	Body    string
}

// Checker compares a freshly sampled record against the notification rules.
type Checker struct {
	Notifier Notifier
	Logger   zerolog.Logger
}

func NewChecker(n Notifier, logger zerolog.Logger) *Checker {
	return &Checker{
		Notifier: n,
		Logger:   logger.With().Str("component", "notify").Logger(),
	}
}

// Check fires every rule whose app counter equals its threshold. Counters
// move by one per tick, so a rule fires at most once a day. Delivery errors
// are logged and never returned.
func (c *Checker) Check(rules []store.NotificationRule, record *store.DailyRecord) []Alert {
	if record == nil {
		return nil
	}

	var alerts []Alert
	for _, rule := range rules {
		minutes, ok := record.Minutes(rule.App)
		if !ok || minutes != rule.Minutes {
			continue
		}

		a := Alert{
			App:     rule.App,
			Minutes: minutes,
			Title:   fmt.Sprintf("%s: %s", AppName, rule.App),
			Body:    fmt.Sprintf("%s has been running for %s", rule.App, series.FormatMinutes(minutes)),
		}
		alerts = append(alerts, a)

		if c.Notifier == nil {
			continue
		}
		if err := c.Notifier.Notify(a.Title, a.Body); err != nil {
			c.Logger.Warn().Err(err).Str("app", rule.App).Msg("Failed to deliver notification")
			continue
		}
		c.Logger.Info().Str("app", rule.App).Int("minutes", minutes).Msg("Notification sent")
	}
	return alerts
}
