package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sadopc/apptime/internal/series"
	"github.com/sadopc/apptime/internal/store"
)

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) Notify(title, body string) error {
	f.sent = append(f.sent, title+"|"+body)
	return f.err
}

func record(counters ...series.Counter) *store.DailyRecord {
	return &store.DailyRecord{
		Date:     time.Date(2024, 6, 30, 0, 0, 0, 0, time.Local),
		Counters: counters,
	}
}

func TestCheckFiresAtThresholdOnly(t *testing.T) {
	n := &fakeNotifier{}
	c := NewChecker(n, zerolog.Nop())
	rules := []store.NotificationRule{{App: "editor", Minutes: 90}}

	for _, m := range []int{89, 91, 120} {
		if alerts := c.Check(rules, record(series.Counter{App: "editor", Minutes: m})); len(alerts) != 0 {
			t.Fatalf("minutes %d: unexpected alerts %+v", m, alerts)
		}
	}
	if len(n.sent) != 0 {
		t.Fatalf("nothing should be sent, got %v", n.sent)
	}

	alerts := c.Check(rules, record(series.Counter{App: "editor", Minutes: 90}))
	if len(alerts) != 1 {
		t.Fatalf("expected one alert, got %d", len(alerts))
	}
	if alerts[0].Title != "apptime: editor" || alerts[0].Body != "editor has been running for 1h30" {
		t.Fatalf("alert text: %+v", alerts[0])
	}
	if len(n.sent) != 1 {
		t.Fatalf("expected one delivery, got %v", n.sent)
	}
}

func TestCheckIgnoresUntrackedRule(t *testing.T) {
	c := NewChecker(&fakeNotifier{}, zerolog.Nop())
	rules := []store.NotificationRule{{App: "ghost", Minutes: 1}}
	if alerts := c.Check(rules, record(series.Counter{App: "pc", Minutes: 1})); len(alerts) != 0 {
		t.Fatalf("unexpected alerts: %+v", alerts)
	}
}

func TestCheckDeliveryFailureIsNotFatal(t *testing.T) {
	n := &fakeNotifier{err: errors.New("no notification daemon")}
	c := NewChecker(n, zerolog.Nop())
	rules := []store.NotificationRule{
		{App: "editor", Minutes: 5},
		{App: "pc", Minutes: 5},
	}

	alerts := c.Check(rules, record(
		series.Counter{App: "pc", Minutes: 5},
		series.Counter{App: "editor", Minutes: 5},
	))
	if len(alerts) != 2 {
		t.Fatalf("both rules should fire despite failures, got %d", len(alerts))
	}
	if len(n.sent) != 2 {
		t.Fatalf("expected two delivery attempts, got %d", len(n.sent))
	}
}

func TestCheckNilRecord(t *testing.T) {
	c := NewChecker(nil, zerolog.Nop())
	if alerts := c.Check([]store.NotificationRule{{App: "pc", Minutes: 1}}, nil); alerts != nil {
		t.Fatalf("expected nil, got %+v", alerts)
	}
}
