package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/apptime/internal/dates"
	"github.com/sadopc/apptime/internal/series"
)

// fullDay is the chart ceiling when every bar is empty.
const fullDay = 24 * 60

type field struct {
	label string
	value string
}

// renderer holds what differs between the Day and App views.
type renderer interface {
	title(a App) string
	options(a App) []field
	stats(a App) []field
	label(v series.TimeApp) string
	empty() string
}

type dayRenderer struct{}

func (dayRenderer) title(a App) string {
	if a.day.days == 1 {
		return "Apps on " + dates.Label(a.day.date)
	}
	return fmt.Sprintf("Apps over %d days to %s", a.day.days, dates.Label(a.day.date))
}

func (dayRenderer) options(a App) []field {
	order := "busiest first"
	if a.day.reverse {
		order = "quietest first"
	}
	return []field{
		{"<D>ate", dates.Label(a.day.date)},
		{"<N>umber of days", strconv.Itoa(a.day.days)},
		{"<R>everse", order},
	}
}

func (dayRenderer) stats(a App) []field {
	return []field{
		{"Session", series.FormatMinutes(a.session)},
		{"Apps", strconv.Itoa(len(a.values))},
		{"Total", series.FormatMinutes(a.stat.Sum)},
	}
}

func (dayRenderer) label(v series.TimeApp) string {
	return v.App
}

func (dayRenderer) empty() string {
	return "No tracked apps. Add one with: apptime app add NAME"
}

type appRenderer struct{}

func (appRenderer) title(a App) string {
	return fmt.Sprintf("%s until %s", a.app.app, dates.Label(a.app.date))
}

func (appRenderer) options(a App) []field {
	order := "most recent first"
	if a.app.reverse {
		order = "oldest first"
	}
	return []field{
		{"<A>pp", a.app.app},
		{"<D>ate", dates.Label(a.app.date)},
		{"<N>umber of days", strconv.Itoa(a.app.lookback)},
		{"<R>everse", order},
	}
}

func (appRenderer) stats(a App) []field {
	return []field{
		{"Max", series.FormatMinutes(a.stat.Max)},
		{"Min", series.FormatMinutes(a.stat.Min)},
		{"Sum", series.FormatMinutes(a.stat.Sum)},
		{"Mean", series.FormatMinutes(a.stat.Mean)},
	}
}

func (appRenderer) label(v series.TimeApp) string {
	return v.Date.Format("Mon 02")
}

func (appRenderer) empty() string {
	return "No data"
}

func (a App) renderer() renderer {
	if a.mode == modeApp {
		return appRenderer{}
	}
	return dayRenderer{}
}

// chartMax keeps one scale across pages of the same data.
func chartMax(values []series.TimeApp) float64 {
	m := 0
	for _, v := range values {
		m = max(m, v.Minutes)
	}
	if m == 0 {
		return fullDay
	}
	return float64(m)
}

func (a App) renderChart(width, height int) string {
	r := a.renderer()
	if len(a.values) == 0 {
		return mutedStyle.Render(r.empty())
	}

	// one column each side for the scroll arrows
	win := computeWindow(width-2, len(a.values), a.offset())
	visible := a.values[win.start : win.end+1]

	chart := barchart.New(win.size()*(win.barWidth+1), height, barchart.WithMaxValue(chartMax(a.values)))

	bars := make([]barchart.BarData, 0, len(visible))
	durations := make([]string, 0, len(visible))
	cell := lipgloss.NewStyle().Width(win.barWidth + 1).Align(lipgloss.Center)
	for _, v := range visible {
		style := barStyle
		if v.Minutes == 0 {
			style = emptyBarStyle
		}
		bars = append(bars, barchart.BarData{
			Label: truncate(r.label(v), win.barWidth),
			Values: []barchart.BarValue{{
				Name:  v.App,
				Value: float64(v.Minutes),
				Style: style,
			}},
		})
		durations = append(durations, cell.Render(truncate(v.Duration(), win.barWidth)))
	}

	chart.PushAll(bars)
	chart.Draw()

	body := lipgloss.JoinVertical(lipgloss.Left,
		chart.View(),
		valueStyle.Render(strings.Join(durations, "")),
	)

	bodyHeight := lipgloss.Height(body)
	left, right := " ", " "
	if win.left {
		left = arrowStyle.Render("◀")
	}
	if win.right {
		right = arrowStyle.Render("▶")
	}
	left = lipgloss.PlaceVertical(bodyHeight, lipgloss.Center, left)
	right = lipgloss.PlaceVertical(bodyHeight, lipgloss.Center, right)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, body, right)
}

func renderFields(fields []field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, labelStyle.Render(f.label+": ")+valueStyle.Render(f.value))
	}
	return strings.Join(parts, "   ")
}
