package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sadopc/apptime/internal/dates"
	"github.com/sadopc/apptime/internal/export"
	"github.com/sadopc/apptime/internal/series"
	"github.com/sadopc/apptime/internal/store"
)

// outputOptions are the flags shared by day and query.
type outputOptions struct {
	date    string
	reverse bool
	format  string
	output  string
}

func (o *outputOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.date, "date", "d", "today", "Date: YYYY-MM-DD, today, yesterday, last_week or a weekday")
	cmd.Flags().BoolVarP(&o.reverse, "reverse", "r", false, "Reverse the order")
	cmd.Flags().StringVarP(&o.format, "format", "f", "text", "Output format: text, csv or json")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Write to this file instead of stdout")
}

func (o *outputOptions) validate() error {
	switch o.format {
	case "text", "csv", "json":
		return nil
	}
	return fmt.Errorf("invalid format %q: want text, csv or json", o.format)
}

// report is what a text rendering needs besides the values.
type report struct {
	title  string
	column string // first column header
	label  func(series.TimeApp) string
	stats  [][2]string
}

func newDayCmd(opts *globalOptions) *cobra.Command {
	o := &outputOptions{}
	var days int

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show every tracked app for a day",
		Example: `  apptime day
  apptime day --date yesterday
  apptime day --date monday --days 7 --format csv -o week.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}

			e, err := setup(opts, false)
			if err != nil {
				return err
			}
			defer e.Close()

			date, err := dates.Parse(o.date, e.store.Today())
			if err != nil {
				return err
			}

			totals, err := e.store.DayTotals(date, days)
			if err != nil {
				return err
			}
			session := 0
			values := make([]series.TimeApp, 0, len(totals))
			for _, v := range totals {
				if v.App == store.SessionApp {
					session = v.Minutes
					continue
				}
				values = append(values, v)
			}
			series.SortByMinutes(values, o.reverse)

			title := "Apps on " + dates.Label(date)
			if days > 1 {
				title = fmt.Sprintf("Apps over %d days to %s", days, dates.Label(date))
			}
			return o.write(cmd, values, report{
				title:  title,
				column: "App",
				label:  func(v series.TimeApp) string { return v.App },
				stats: [][2]string{
					{"Session", series.FormatMinutes(session)},
					{"Apps", strconv.Itoa(len(values))},
				},
			})
		},
	}

	o.bind(cmd)
	cmd.Flags().IntVarP(&days, "days", "n", 1, "Number of days to add up, ending at --date")
	return cmd
}

func newQueryCmd(opts *globalOptions) *cobra.Command {
	o := &outputOptions{}
	var number int

	cmd := &cobra.Command{
		Use:   "query APP",
		Short: "Show one app across days",
		Example: `  apptime query pc
  apptime query firefox --number 28 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			if number < 0 {
				return fmt.Errorf("--number must not be negative")
			}

			e, err := setup(opts, false)
			if err != nil {
				return err
			}
			defer e.Close()

			date, err := dates.Parse(o.date, e.store.Today())
			if err != nil {
				return err
			}

			values, err := e.store.AppSeries(args[0], date, number)
			if err != nil {
				return err
			}
			series.SortByDate(values, o.reverse)

			stat := series.Compute(values)
			return o.write(cmd, values, report{
				title:  fmt.Sprintf("%s, %d days to %s", args[0], number+1, dates.Label(date)),
				column: "Date",
				label:  func(v series.TimeApp) string { return dates.Label(v.Date) },
				stats: [][2]string{
					{"Max", series.FormatMinutes(stat.Max)},
					{"Min", series.FormatMinutes(stat.Min)},
					{"Sum", series.FormatMinutes(stat.Sum)},
					{"Mean", series.FormatMinutes(stat.Mean)},
				},
			})
		},
	}

	o.bind(cmd)
	cmd.Flags().IntVarP(&number, "number", "n", 7, "Number of days to show before --date")
	return cmd
}

func (o *outputOptions) write(cmd *cobra.Command, values []series.TimeApp, r report) error {
	if o.output != "" {
		return o.writeFile(values, r)
	}

	w := cmd.OutOrStdout()
	switch o.format {
	case "csv":
		return export.WriteCSV(w, values)
	case "json":
		return export.WriteJSON(w, values, time.Now())
	}
	printReport(w, values, r)
	return nil
}

func (o *outputOptions) writeFile(values []series.TimeApp, r report) error {
	switch o.format {
	case "csv":
		return export.ToCSV(values, o.output)
	case "json":
		return export.ToJSON(values, o.output)
	}

	f, err := os.Create(o.output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	printReport(f, values, r)
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}

func printReport(w io.Writer, values []series.TimeApp, r report) {
	heading(w, r.title)

	if len(values) == 0 {
		mutedNote(w, "no tracked apps")
	} else {
		rows := make([][]string, 0, len(values))
		for _, v := range values {
			rows = append(rows, []string{r.label(v), v.Duration(), strconv.Itoa(v.Minutes)})
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers(r.column, "Time", "Minutes").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				s := lipgloss.NewStyle().Padding(0, 1)
				if col > 0 {
					s = s.Align(lipgloss.Right)
				}
				return s
			})
		fmt.Fprintln(w, t.String())
	}

	for _, s := range r.stats {
		fmt.Fprintf(w, "  %-8s %s\n", s[0]+":", s[1])
	}
}
