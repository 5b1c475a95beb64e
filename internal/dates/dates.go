// Package dates turns user-typed date inputs into calendar days.
package dates

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/apptime/internal/series"
)

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// Parse resolves s against now. It accepts YYYY-MM-DD, today, yesterday,
// last_week and weekday names. A weekday means its most recent occurrence
// strictly before today, so "monday" on a Monday is a week ago.
func Parse(s string, now time.Time) (time.Time, error) {
	today := series.Day(now)
	key := strings.ToLower(strings.TrimSpace(s))

	switch key {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "last_week", "last-week", "lastweek":
		return today.AddDate(0, 0, -7), nil
	}

	if wd, ok := weekdays[key]; ok {
		diff := int(today.Weekday()-wd+7) % 7
		if diff == 0 {
			diff = 7
		}
		return today.AddDate(0, 0, -diff), nil
	}

	d, err := time.ParseInLocation(series.DateLayout, key, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD, today, yesterday, last_week or a weekday", s)
	}
	return d, nil
}

// Label renders d the way option panels show it, e.g. "Sun 2024-06-30".
func Label(d time.Time) string {
	return d.Format("Mon " + series.DateLayout)
}
