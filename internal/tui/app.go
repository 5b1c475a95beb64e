package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/sadopc/apptime/internal/dates"
	"github.com/sadopc/apptime/internal/series"
	"github.com/sadopc/apptime/internal/store"
)

// App is the root Bubble Tea model. Every key is handled synchronously and
// any parameter change re-queries the store before Update returns.
type App struct {
	store  *store.Store
	logger zerolog.Logger
	width  int
	height int

	mode     viewMode
	input    inputKind
	showHelp bool

	day dayOptions
	app appOptions

	values  []series.TimeApp
	stat    series.Stat
	session int // session minutes, Day mode only

	editor textinput.Model
	help   help.Model
	status string
	isErr  bool
}

func NewApp(s *store.Store, logger zerolog.Logger) App {
	h := help.New()
	h.ShowAll = false

	ed := textinput.New()
	ed.CharLimit = 64
	ed.Width = 30

	today := s.Today()
	a := App{
		store:  s,
		logger: logger.With().Str("component", "tui").Logger(),
		mode:   modeDay,
		day:    newDayOptions(today),
		app:    newAppOptions(today),
		editor: ed,
		help:   h,
	}
	a.refresh()
	return a
}

// Run starts the browser on the alternate screen and blocks until it quits.
func Run(s *store.Store, logger zerolog.Logger) error {
	p := tea.NewProgram(NewApp(s, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		if a.input != inputNone {
			return a.updateInput(msg)
		}

		if a.showHelp {
			if key.Matches(msg, keys.Close) {
				a.showHelp = false
				a.help.ShowAll = false
			}
			return a, nil
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = true
			a.help.ShowAll = true
		case key.Matches(msg, keys.Mode):
			if a.mode == modeDay {
				a.mode = modeApp
			} else {
				a.mode = modeDay
			}
			a.refresh()
		case key.Matches(msg, keys.Reverse):
			if a.mode == modeDay {
				a.day.reverse = !a.day.reverse
			} else {
				a.app.reverse = !a.app.reverse
			}
			a.setOffset(0)
			a.refresh()
		case key.Matches(msg, keys.Date):
			return a.startInput(inputDate)
		case key.Matches(msg, keys.Count):
			return a.startInput(inputCount)
		case key.Matches(msg, keys.App):
			if a.mode == modeApp {
				return a.startInput(inputApp)
			}
		case key.Matches(msg, keys.Today):
			a.setDate(a.store.Today())
		case key.Matches(msg, keys.Next):
			a.setDate(a.date().AddDate(0, 0, 1))
		case key.Matches(msg, keys.Prev):
			a.setDate(a.date().AddDate(0, 0, -1))
		case key.Matches(msg, keys.Right):
			a.scrollRight()
		case key.Matches(msg, keys.Left):
			a.scrollLeft()
		}
	}
	return a, nil
}

// --- Parameters ---

func (a App) date() time.Time {
	if a.mode == modeApp {
		return a.app.date
	}
	return a.day.date
}

func (a *App) setDate(d time.Time) {
	if a.mode == modeApp {
		a.app.date = d
	} else {
		a.day.date = d
	}
	a.setOffset(0)
	a.refresh()
}

func (a App) offset() int {
	if a.mode == modeApp {
		return a.app.offset
	}
	return a.day.offset
}

func (a *App) setOffset(o int) {
	if a.mode == modeApp {
		a.app.offset = o
	} else {
		a.day.offset = o
	}
}

func (a App) chartWidth() int {
	return max(1, a.width-6)
}

func (a *App) scrollRight() {
	win := computeWindow(a.chartWidth()-2, len(a.values), a.offset())
	if win.right {
		a.setOffset(win.start + 1)
	}
}

func (a *App) scrollLeft() {
	win := computeWindow(a.chartWidth()-2, len(a.values), a.offset())
	if win.left {
		a.setOffset(win.start - 1)
	}
}

// refresh re-runs the query for the current mode.
func (a *App) refresh() {
	var err error
	if a.mode == modeApp {
		err = a.loadApp()
	} else {
		err = a.loadDay()
	}
	if err != nil {
		a.values = nil
		a.stat = series.Stat{}
		a.session = 0
		a.setStatus(err.Error(), true)
		a.logger.Error().Err(err).Msg("Query failed")
		return
	}
	a.logger.Debug().
		Str("mode", modeNames[a.mode]).
		Int("bars", len(a.values)).
		Msg("Query done")
}

func (a *App) loadDay() error {
	totals, err := a.store.DayTotals(a.day.date, a.day.days)
	if err != nil {
		return err
	}

	a.session = 0
	values := make([]series.TimeApp, 0, len(totals))
	for _, v := range totals {
		if v.App == store.SessionApp {
			a.session = v.Minutes
			continue
		}
		values = append(values, v)
	}
	series.SortByMinutes(values, a.day.reverse)

	a.values = values
	a.stat = series.Compute(values)
	return nil
}

func (a *App) loadApp() error {
	values, err := a.store.AppSeries(a.app.app, a.app.date, a.app.lookback)
	if err != nil {
		return err
	}
	series.SortByDate(values, a.app.reverse)

	a.values = values
	a.stat = series.Compute(values)
	return nil
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.isErr = isErr
}

// --- Modal input ---

var inputPrompts = map[inputKind]string{
	inputDate:  "Date (YYYY-MM-DD, today, yesterday, monday..): ",
	inputApp:   "App: ",
	inputCount: "Number of days: ",
}

func (a App) startInput(kind inputKind) (tea.Model, tea.Cmd) {
	a.input = kind
	a.editor.Reset()
	a.editor.Prompt = inputPrompts[kind]
	if kind == inputDate {
		a.editor.SetValue(a.date().Format(series.DateLayout))
	}
	a.setStatus("", false)
	cmd := a.editor.Focus()
	return a, cmd
}

func (a App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel):
		a.input = inputNone
		a.editor.Blur()
		return a, nil
	case key.Matches(msg, keys.Confirm):
		value := strings.TrimSpace(a.editor.Value())
		kind := a.input
		a.input = inputNone
		a.editor.Blur()
		if err := a.commit(kind, value); err != nil {
			a.setStatus(err.Error(), true)
			return a, nil
		}
		a.setOffset(0)
		a.refresh()
		return a, nil
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

var errNegativeCount = errors.New("number of days must not be negative")

// commit applies an edited value. On error the previous value is kept.
func (a *App) commit(kind inputKind, value string) error {
	switch kind {
	case inputDate:
		d, err := dates.Parse(value, a.store.Today())
		if err != nil {
			return err
		}
		if a.mode == modeApp {
			a.app.date = d
		} else {
			a.day.date = d
		}

	case inputCount:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid number %q", value)
		}
		if n < 0 {
			return errNegativeCount
		}
		if a.mode == modeApp {
			a.app.lookback = n
		} else {
			if n < 1 {
				return fmt.Errorf("at least one day is needed")
			}
			a.day.days = n
		}

	case inputApp:
		apps, err := a.store.TrackedApps()
		if err != nil {
			return err
		}
		for _, name := range apps {
			if strings.EqualFold(name, value) {
				a.app.app = name
				return nil
			}
		}
		return fmt.Errorf("%q is not tracked", value)
	}
	return nil
}

// --- View ---

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	contentHeight := a.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	if a.showHelp {
		content = activePanelStyle.Width(a.width - 2).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Keys"), "", a.help.View(keys)),
		)
	} else {
		content = a.renderBody(contentHeight)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range modeNames {
		if viewMode(i) == a.mode {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("apptime")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderBody(height int) string {
	r := a.renderer()
	w := a.width - 2

	options := panelStyle.Width(w).Render(renderFields(r.options(a)))
	stats := panelStyle.Width(w).Render(renderFields(r.stats(a)))

	var editLine string
	if a.input != inputNone {
		editLine = activePanelStyle.Width(w).Render(a.editor.View())
	}

	// title line + axis + label + duration rows + borders
	used := lipgloss.Height(options) + lipgloss.Height(stats) + 6
	if editLine != "" {
		used += lipgloss.Height(editLine)
	}
	chartHeight := max(3, height-used)

	chart := activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(r.title(a)),
			a.renderChart(a.chartWidth(), chartHeight),
		),
	)

	parts := []string{chart, stats, options}
	if editLine != "" {
		parts = append(parts, editLine)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a App) renderFooter() string {
	// The overlay already shows the full table.
	short := a.help
	short.ShowAll = false
	helpView := short.View(keys)

	status := ""
	if a.status != "" {
		if a.isErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	left := footerStyle.Render(helpView)
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}
