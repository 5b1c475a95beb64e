package tui

import (
	"time"

	"github.com/sadopc/apptime/internal/store"
)

// viewMode selects what the chart shows.
type viewMode int

const (
	modeDay viewMode = iota // every app on one day range
	modeApp                 // one app across days
)

var modeNames = []string{"Day", "App"}

// inputKind is the parameter being edited, if any.
type inputKind int

const (
	inputNone inputKind = iota
	inputDate
	inputApp
	inputCount
)

const (
	defaultDays     = 1
	defaultLookback = 7
)

type dayOptions struct {
	date    time.Time
	days    int // days aggregated, ending at date
	reverse bool
	offset  int
}

type appOptions struct {
	app      string
	date     time.Time
	lookback int // days shown before date
	reverse  bool
	offset   int
}

func newDayOptions(today time.Time) dayOptions {
	return dayOptions{date: today, days: defaultDays}
}

func newAppOptions(today time.Time) appOptions {
	return appOptions{app: store.SessionApp, date: today, lookback: defaultLookback}
}

// window is the visible slice [start, end] of the bars.
type window struct {
	start    int
	end      int
	barWidth int
	left     bool // bars hidden on the left
	right    bool // bars hidden on the right
}

func (w window) size() int {
	return w.end - w.start + 1
}

// computeWindow fits n bars into width columns starting at offset. Bars are
// at least 5 columns wide with a one column gap. The window never runs past
// the last bar: an offset too far right is pulled back.
func computeWindow(width, n, offset int) window {
	if n <= 0 {
		return window{end: -1}
	}

	bw := max(5, width/(n+1))
	perPage := max(1, width/(bw+1))
	offset = max(0, offset)

	start := offset
	end := start + perPage - 1
	if end > n-1 {
		end = n - 1
		start = max(0, end-perPage+1)
	}

	return window{
		start:    start,
		end:      end,
		barWidth: bw,
		left:     start > 0,
		right:    end < n-1,
	}
}

// truncate cuts s to w runes, marking the cut with "…".
func truncate(s string, w int) string {
	r := []rune(s)
	if w <= 0 {
		return ""
	}
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}
