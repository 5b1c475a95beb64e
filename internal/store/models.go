package store

import (
	"time"

	"github.com/sadopc/apptime/internal/series"
)

// DailyRecord is one row of the usage table: a day and one counter per
// tracked app, in registry order.
type DailyRecord struct {
	Date     time.Time
	Counters []series.Counter
}

// Minutes returns the counter for app.
func (r DailyRecord) Minutes(app string) (int, bool) {
	for _, c := range r.Counters {
		if c.App == app {
			return c.Minutes, true
		}
	}
	return 0, false
}

// Values projects the record onto display values.
func (r DailyRecord) Values() []series.TimeApp {
	return series.FromCounters(r.Date, r.Counters)
}

type Setting struct {
	Attribute string
	Value     string
}

// Settings is the typed view of the settings table with defaults applied.
type Settings struct {
	State       string
	StorageSize int
}

// Active reports whether sampling is switched on.
func (s Settings) Active() bool {
	return s.State == StateOn
}

// NotificationRule fires once when an app reaches Minutes in a day.
type NotificationRule struct {
	App     string
	Minutes int
}
