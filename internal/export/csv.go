package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sadopc/apptime/internal/series"
)

// WriteCSV writes one row per value.
func WriteCSV(out io.Writer, values []series.TimeApp) error {
	w := csv.NewWriter(out)

	// Header
	if err := w.Write([]string{"Date", "App", "Minutes", "Duration"}); err != nil {
		return err
	}

	for _, v := range values {
		row := []string{
			v.Date.Format(series.DateLayout),
			v.App,
			strconv.Itoa(v.Minutes),
			v.Duration(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func ToCSV(values []series.TimeApp, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, values); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return f.Close()
}
