package series

import "fmt"

const minutesPerHour = 60

// Stat summarizes a sequence of TimeApp values.
type Stat struct {
	Max  int
	Min  int
	Sum  int
	Mean int
}

// Compute returns max, min, sum and truncated mean of values. An empty input
// yields the zero Stat.
func Compute(values []TimeApp) Stat {
	if len(values) == 0 {
		return Stat{}
	}

	s := Stat{Max: values[0].Minutes, Min: values[0].Minutes}
	for _, v := range values {
		s.Sum += v.Minutes
		if v.Minutes > s.Max {
			s.Max = v.Minutes
		}
		if v.Minutes < s.Min {
			s.Min = v.Minutes
		}
	}
	s.Mean = s.Sum / len(values)
	return s
}

// FormatMinutes renders 5 as "5m", 65 as "1h05" and 120 as "2h00".
func FormatMinutes(mins int) string {
	if mins < 0 {
		mins = 0
	}
	h := mins / minutesPerHour
	m := mins % minutesPerHour
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02d", h, m)
}
