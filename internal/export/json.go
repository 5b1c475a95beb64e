package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sadopc/apptime/internal/series"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Stats      jsonStats   `json:"stats"`
	Values     []jsonValue `json:"values"`
}

type jsonStats struct {
	MaxMinutes  int `json:"max_minutes"`
	MinMinutes  int `json:"min_minutes"`
	SumMinutes  int `json:"sum_minutes"`
	MeanMinutes int `json:"mean_minutes"`
}

type jsonValue struct {
	Date     string `json:"date"`
	App      string `json:"app"`
	Minutes  int    `json:"minutes"`
	Duration string `json:"duration"`
}

// WriteJSON writes values and their stats as an indented document.
func WriteJSON(out io.Writer, values []series.TimeApp, exportedAt time.Time) error {
	stat := series.Compute(values)
	export := jsonExport{
		ExportedAt: exportedAt.UTC().Format(time.RFC3339),
		Count:      len(values),
		Stats: jsonStats{
			MaxMinutes:  stat.Max,
			MinMinutes:  stat.Min,
			SumMinutes:  stat.Sum,
			MeanMinutes: stat.Mean,
		},
		Values: make([]jsonValue, 0, len(values)),
	}

	for _, v := range values {
		export.Values = append(export.Values, jsonValue{
			Date:     v.Date.Format(series.DateLayout),
			App:      v.App,
			Minutes:  v.Minutes,
			Duration: v.Duration(),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func ToJSON(values []series.TimeApp, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, values, time.Now()); err != nil {
		return err
	}
	return f.Close()
}
