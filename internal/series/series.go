package series

import (
	"sort"
	"time"
)

// DateLayout is the on-disk and display format for calendar days.
const DateLayout = "2006-01-02"

// Order selects the direction of a filled series.
type Order int

const (
	Descending Order = iota // anchor date first
	Ascending
)

// TimeApp is the minutes one app accumulated on one day.
type TimeApp struct {
	App     string
	Date    time.Time
	Minutes int
}

// Duration renders the minutes the way every view shows them.
func (t TimeApp) Duration() string {
	return FormatMinutes(t.Minutes)
}

// Counter is one named column of a daily row.
type Counter struct {
	App     string
	Minutes int
}

// Day truncates t to midnight of its calendar day in t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Fill returns exactly lookback+1 entries for app, one per calendar day from
// anchor-lookback to anchor. Days missing from known get zero minutes.
// known is keyed by DateLayout.
func Fill(app string, anchor time.Time, lookback int, known map[string]int, order Order) []TimeApp {
	if lookback < 0 {
		lookback = 0
	}
	anchor = Day(anchor)

	values := make([]TimeApp, 0, lookback+1)
	for i := 0; i <= lookback; i++ {
		date := anchor.AddDate(0, 0, -i)
		values = append(values, TimeApp{
			App:     app,
			Date:    date,
			Minutes: known[date.Format(DateLayout)],
		})
	}

	if order == Ascending {
		for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
			values[i], values[j] = values[j], values[i]
		}
	}
	return values
}

// Zero synthesizes one zero entry per app for date, keeping the given order.
func Zero(apps []string, date time.Time) []TimeApp {
	date = Day(date)
	values := make([]TimeApp, len(apps))
	for i, app := range apps {
		values[i] = TimeApp{App: app, Date: date}
	}
	return values
}

// FromCounters projects a daily row onto TimeApp values.
func FromCounters(date time.Time, counters []Counter) []TimeApp {
	date = Day(date)
	values := make([]TimeApp, len(counters))
	for i, c := range counters {
		values[i] = TimeApp{App: c.App, Date: date, Minutes: c.Minutes}
	}
	return values
}

// SortByMinutes orders values busiest first, or quietest first when reverse
// is set. Ties keep alphabetical order.
func SortByMinutes(values []TimeApp, reverse bool) {
	sort.SliceStable(values, func(i, j int) bool {
		if values[i].Minutes == values[j].Minutes {
			return values[i].App < values[j].App
		}
		if reverse {
			return values[i].Minutes < values[j].Minutes
		}
		return values[i].Minutes > values[j].Minutes
	})
}

// SortByDate orders values most recent first, or oldest first when reverse
// is set.
func SortByDate(values []TimeApp, reverse bool) {
	sort.SliceStable(values, func(i, j int) bool {
		if reverse {
			return values[i].Date.Before(values[j].Date)
		}
		return values[i].Date.After(values[j].Date)
	})
}
