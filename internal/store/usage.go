package store

import (
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sadopc/apptime/internal/series"
)

// scanRecords reads SELECT * rows of the usage table.
func (s *Store) scanRecords(rows *sql.Rows) ([]DailyRecord, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 || cols[0] != dateColumn {
		return nil, fmt.Errorf("unexpected usage columns %v: %w", cols, ErrConfigMismatch)
	}

	var records []DailyRecord
	for rows.Next() {
		var dateStr string
		values := make([]sql.NullInt64, len(cols)-1)
		dest := make([]any, len(cols))
		dest[0] = &dateStr
		for i := range values {
			dest[i+1] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		date, err := time.ParseInLocation(series.DateLayout, dateStr, s.location())
		if err != nil {
			return nil, fmt.Errorf("parse usage date %q: %w", dateStr, err)
		}

		rec := DailyRecord{Date: date, Counters: make([]series.Counter, len(values))}
		for i, v := range values {
			rec.Counters[i] = series.Counter{App: cols[i+1], Minutes: int(v.Int64)}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// todayValues loads today's counters, or zeros sized to the current column
// count when the day has no row yet.
func (s *Store) todayValues(today string) ([]string, []int, error) {
	rows, err := s.db.Query(`SELECT * FROM usage WHERE date = ?`, today)
	if err != nil {
		return nil, nil, fmt.Errorf("load today: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	records, err := s.scanRecords(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("load today: %w", err)
	}

	names := cols[1:]
	values := make([]int, len(names))
	if len(records) > 0 {
		for i, c := range records[0].Counters {
			values[i] = c.Minutes
		}
	}
	return names, values, nil
}

// SampleTick adds one minute to every app that active reports running, and
// always to the session app, then rewrites today's row. The registry snapshot
// drives the increments; today's row must carry exactly those columns.
func (s *Store) SampleTick(active func(app string) bool) (*DailyRecord, error) {
	apps, err := s.TrackedApps()
	if err != nil {
		return nil, fmt.Errorf("sample tick: %w", err)
	}

	today := s.Today()
	todayStr := today.Format(series.DateLayout)

	names, values, err := s.todayValues(todayStr)
	if err != nil {
		return nil, fmt.Errorf("sample tick: %w", err)
	}
	if !slices.Equal(names, apps) {
		return nil, fmt.Errorf("sample tick: columns %v, row %v: %w", apps, names, ErrConfigMismatch)
	}

	rec := &DailyRecord{Date: today, Counters: make([]series.Counter, len(apps))}
	for i, app := range apps {
		if app == SessionApp || active(app) {
			values[i]++
		}
		rec.Counters[i] = series.Counter{App: app, Minutes: values[i]}
	}

	quoted := make([]string, len(apps))
	placeholders := make([]string, len(apps))
	args := make([]any, 0, len(apps)+1)
	args = append(args, todayStr)
	for i, app := range apps {
		quoted[i] = quoteIdent(app)
		placeholders[i] = "?"
		args = append(args, values[i])
	}
	insert := fmt.Sprintf(`INSERT INTO usage (date, %s) VALUES (?, %s)`,
		strings.Join(quoted, ", "), strings.Join(placeholders, ", "))

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin sample tick: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM usage WHERE date = ?`, todayStr); err != nil {
		return nil, fmt.Errorf("delete today: %w", err)
	}
	if _, err := tx.Exec(insert, args...); err != nil {
		return nil, fmt.Errorf("insert today: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit sample tick: %w", err)
	}
	return rec, nil
}

// PurgeOlderThan deletes rows dated more than days before today. A row dated
// exactly days ago is kept.
func (s *Store) PurgeOlderThan(days int) (int64, error) {
	if days < 0 {
		return 0, fmt.Errorf("purge %d days: %w", days, ErrInvalidValue)
	}
	cutoff := s.Today().AddDate(0, 0, -days).Format(series.DateLayout)
	res, err := s.db.Exec(`DELETE FROM usage WHERE date < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge usage: %w", err)
	}
	return res.RowsAffected()
}

// RangeQuery returns the stored rows from date-lookback to date inclusive,
// most recent first. Days without a row are absent; see AppSeries for a
// dense series.
func (s *Store) RangeQuery(date time.Time, lookback int) ([]DailyRecord, error) {
	if lookback < 0 {
		lookback = 0
	}
	to := series.Day(date)
	from := to.AddDate(0, 0, -lookback)

	rows, err := s.db.Query(
		`SELECT * FROM usage WHERE date >= ? AND date <= ? ORDER BY date DESC`,
		from.Format(series.DateLayout), to.Format(series.DateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("range query: %w", err)
	}
	defer rows.Close()

	records, err := s.scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("range query: %w", err)
	}
	return records, nil
}

// AppSeries returns lookback+1 consecutive days of app ending at date, most
// recent first, with zeros for days that have no row.
func (s *Store) AppSeries(app string, date time.Time, lookback int) ([]series.TimeApp, error) {
	stored, ok, err := s.lookupApp(app)
	if err != nil {
		return nil, fmt.Errorf("app series: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("app series %q: %w", app, ErrUnknownColumn)
	}

	records, err := s.RangeQuery(date, lookback)
	if err != nil {
		return nil, err
	}

	known := make(map[string]int, len(records))
	for _, r := range records {
		if m, ok := r.Minutes(stored); ok {
			known[r.Date.Format(series.DateLayout)] = m
		}
	}
	return series.Fill(stored, date, lookback, known, series.Descending), nil
}

// DayQuery returns the row for date, or a zero row covering every tracked app.
func (s *Store) DayQuery(date time.Time) (*DailyRecord, error) {
	records, err := s.RangeQuery(date, 0)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		return &records[0], nil
	}

	apps, err := s.TrackedApps()
	if err != nil {
		return nil, fmt.Errorf("day query: %w", err)
	}
	rec := &DailyRecord{Date: series.Day(date), Counters: make([]series.Counter, len(apps))}
	for i, app := range apps {
		rec.Counters[i] = series.Counter{App: app}
	}
	return rec, nil
}

// DayTotals sums each tracked app over days days ending at date. Values come
// back in registry order, dated date.
func (s *Store) DayTotals(date time.Time, days int) ([]series.TimeApp, error) {
	if days < 1 {
		days = 1
	}
	if days == 1 {
		rec, err := s.DayQuery(date)
		if err != nil {
			return nil, err
		}
		return rec.Values(), nil
	}

	apps, err := s.TrackedApps()
	if err != nil {
		return nil, fmt.Errorf("day totals: %w", err)
	}
	records, err := s.RangeQuery(date, days-1)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int, len(apps))
	for _, r := range records {
		for _, c := range r.Counters {
			totals[c.App] += c.Minutes
		}
	}

	values := series.Zero(apps, date)
	for i := range values {
		values[i].Minutes = totals[values[i].App]
	}
	return values, nil
}
