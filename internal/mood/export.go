package mood

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rcliao/mindmate/internal/model"
)

// ErrNoEntries is returned when exporting an empty ledger.
var ErrNoEntries = errors.New("no mood entries to export")

// CSVHeader is the first row of a CSV export.
const CSVHeader = "Date,Mood Value,Emoji,Timestamp"

// isoMillis matches JavaScript's Date.prototype.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z"

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Export is the JSON export document.
type Export struct {
	ExportDate   string            `json:"exportDate"`
	TotalEntries int               `json:"totalEntries"`
	MoodData     []model.MoodEntry `json:"moodData"`
}

// Filename returns the export file name for format on the day of now.
func Filename(format Format, now time.Time) string {
	return fmt.Sprintf("mindmate-mood-data-%s.%s", now.UTC().Format(model.DateLayout), format)
}

// WriteCSV writes entries as CSV in the given order. The emoji column is
// always quoted.
func WriteCSV(w io.Writer, entries []model.MoodEntry) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}

	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')
	for _, e := range entries {
		b.WriteString(e.Date)
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(e.Value))
		b.WriteByte(',')
		b.WriteString(quoteField(e.Emoji))
		b.WriteByte(',')
		b.WriteString(e.Time().UTC().Format(isoMillis))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteJSON writes the entries wrapped in an Export document.
func WriteJSON(w io.Writer, entries []model.MoodEntry, now time.Time) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}

	doc := Export{
		ExportDate:   now.UTC().Format(isoMillis),
		TotalEntries: len(entries),
		MoodData:     entries,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// Write dispatches to WriteCSV or WriteJSON.
func Write(w io.Writer, format Format, entries []model.MoodEntry, now time.Time) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, entries)
	case FormatJSON:
		return WriteJSON(w, entries, now)
	default:
		return fmt.Errorf("unknown export format %q (valid: csv, json)", format)
	}
}
