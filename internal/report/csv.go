// Package report renders sweep results as CSV, human-readable text, and
// rows in a SQLite run archive.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/cwbudde/algo-bench/measure/sweep"
)

var csvHeader = []string{"freq_hz", "vrms", "pkpk", "thd_ratio"}

// WriteCSV writes one record per sweep row. NaN values from failed points
// are written literally so the gaps stay visible downstream.
func WriteCSV(w io.Writer, rows []sweep.Row) error {
	cw := csv.NewWriter(w)

	err := cw.Write(csvHeader)
	if err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			formatFloat(row.FreqHz),
			formatFloat(row.Vrms),
			formatFloat(row.Vpp),
			formatFloat(row.THD),
		}

		err = cw.Write(record)
		if err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatTHDRows renders one human-readable line per sweep row, keeping NaN
// rows in place so a failed point reads as a gap rather than vanishing.
func FormatTHDRows(rows []sweep.Row) []string {
	lines := make([]string, 0, len(rows))

	for _, row := range rows {
		if math.IsNaN(row.THD) {
			lines = append(lines, fmt.Sprintf("%8.2f Hz -> THD NaN", row.FreqHz))
			continue
		}

		lines = append(lines, fmt.Sprintf("%8.2f Hz -> THD %6.3f%%", row.FreqHz, row.THD*100))
	}

	return lines
}
