package tracker

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sadopc/apptime/internal/notify"
	"github.com/sadopc/apptime/internal/store"
)

func newTestStore(t *testing.T, apps ...string) *store.Store {
	t.Helper()
	clock := &store.FixedClock{Time: time.Date(2024, 6, 30, 10, 0, 0, 0, time.Local)}
	s, err := store.NewMemory(store.WithClock(clock))
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	for _, a := range apps {
		if err := s.AddApp(a); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func running(names ...string) Oracle {
	return OracleFunc(func(app string) bool {
		for _, n := range names {
			if n == app {
				return true
			}
		}
		return false
	})
}

type recordingNotifier struct{ titles []string }

func (r *recordingNotifier) Notify(title, body string) error {
	r.titles = append(r.titles, title)
	return nil
}

func TestRunRecordsTick(t *testing.T) {
	s := newTestStore(t, "editor", "browser")
	sampler := NewSampler(s, running("editor"), Config{}, zerolog.Nop())

	res, err := sampler.Run()
	if err != nil {
		t.Fatal(err)
	}
	if !res.Active {
		t.Fatal("default state should be on")
	}
	if m, _ := res.Record.Minutes("editor"); m != 1 {
		t.Fatalf("editor = %d", m)
	}
	if m, _ := res.Record.Minutes("browser"); m != 0 {
		t.Fatalf("browser = %d", m)
	}
	if m, _ := res.Record.Minutes(store.SessionApp); m != 1 {
		t.Fatalf("pc = %d", m)
	}
}

func TestRunSkippedWhenOff(t *testing.T) {
	s := newTestStore(t, "editor")
	if err := s.SetState(store.StateOff); err != nil {
		t.Fatal(err)
	}
	sampler := NewSampler(s, running("editor"), Config{}, zerolog.Nop())

	res, err := sampler.Run()
	if err != nil {
		t.Fatal(err)
	}
	if res.Active || res.Record != nil {
		t.Fatalf("tick should be skipped: %+v", res)
	}

	rec, _ := s.DayQuery(s.Today())
	if m, _ := rec.Minutes(store.SessionApp); m != 0 {
		t.Fatalf("nothing should be recorded, pc = %d", m)
	}
}

func TestRunNotifiesAtThreshold(t *testing.T) {
	s := newTestStore(t, "editor")
	if err := s.SetNotification("editor", 2); err != nil {
		t.Fatal(err)
	}
	n := &recordingNotifier{}
	sampler := NewSampler(s, running("editor"), Config{Checker: notify.NewChecker(n, zerolog.Nop())}, zerolog.Nop())

	for i := 0; i < 4; i++ {
		if _, err := sampler.Run(); err != nil {
			t.Fatal(err)
		}
	}
	if len(n.titles) != 1 || n.titles[0] != "apptime: editor" {
		t.Fatalf("expected exactly one notification, got %v", n.titles)
	}
}

func TestRunWritesMetrics(t *testing.T) {
	s := newTestStore(t, "editor")
	path := filepath.Join(t.TempDir(), "apptime.prom")
	sampler := NewSampler(s, running("editor"), Config{MetricsFile: path}, zerolog.Nop())

	sampler.Run()
	sampler.Run()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		`apptime_minutes_today{app="editor"} 2`,
		`apptime_minutes_today{app="pc"} 2`,
		"apptime_last_sample_timestamp_seconds",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics missing %q:\n%s", want, text)
		}
	}
}

func TestWatchStopsOnCancel(t *testing.T) {
	s := newTestStore(t, "editor")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	oracle := OracleFunc(func(app string) bool {
		if calls.Add(1) >= 3 {
			cancel()
		}
		return true
	})
	sampler := NewSampler(s, oracle, Config{}, zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- sampler.Watch(ctx, 5*time.Millisecond) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}

	rec, _ := s.DayQuery(s.Today())
	if m, _ := rec.Minutes("editor"); m < 3 {
		t.Fatalf("expected at least 3 ticks, got %d", m)
	}
}

func TestWatchStopsOnColumnMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apptime.db")
	s, err := store.New(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.AddApp("editor"); err != nil {
		t.Fatal(err)
	}

	// A second connection rewrites the table without leading date column.
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	for _, q := range []string{
		`DROP TABLE usage`,
		`CREATE TABLE usage (editor INTEGER NOT NULL DEFAULT 0, date TEXT PRIMARY KEY, pc INTEGER NOT NULL DEFAULT 0)`,
	} {
		if _, err := db.Exec(q); err != nil {
			t.Fatalf("%s: %v", q, err)
		}
	}

	sampler := NewSampler(s, running("editor"), Config{}, zerolog.Nop())
	done := make(chan error, 1)
	go func() { done <- sampler.Watch(context.Background(), 5*time.Millisecond) }()

	select {
	case err := <-done:
		if !errors.Is(err, store.ErrConfigMismatch) {
			t.Fatalf("expected ErrConfigMismatch, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch kept running after a column mismatch")
	}
}

func TestWatchRejectsZeroInterval(t *testing.T) {
	s := newTestStore(t)
	sampler := NewSampler(s, running(), Config{}, zerolog.Nop())
	if err := sampler.Watch(context.Background(), 0); err == nil {
		t.Fatal("expected error")
	}
}

func TestProcessOracleSession(t *testing.T) {
	o := NewProcessOracle(zerolog.Nop())
	if !o.IsRunning(store.SessionApp) {
		t.Fatal("session app must always be running")
	}
	if o.IsRunning("") {
		t.Fatal("empty name must not be running")
	}
}
