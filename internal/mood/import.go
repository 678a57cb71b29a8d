package mood

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/mindmate/internal/model"
)

// ErrInvalidFormat is returned for an import document without a valid
// moodData array.
var ErrInvalidFormat = errors.New("invalid file format: expected an export with a moodData array")

// ImportResult reports the outcome of an import.
type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// ParseImport decodes an export document and validates every entry.
func ParseImport(r io.Reader) ([]model.MoodEntry, error) {
	var doc struct {
		MoodData json.RawMessage `json:"moodData"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(doc.MoodData) == 0 || string(doc.MoodData) == "null" {
		return nil, ErrInvalidFormat
	}

	var entries []model.MoodEntry
	if err := json.Unmarshal(doc.MoodData, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	for i, e := range entries {
		if _, err := time.Parse(model.DateLayout, e.Date); err != nil {
			return nil, fmt.Errorf("%w: entry %d has invalid date %q", ErrInvalidFormat, i, e.Date)
		}
		if !model.ValidMoodValue(e.Value) {
			return nil, fmt.Errorf("%w: entry %d has mood value %d outside 1-10", ErrInvalidFormat, i, e.Value)
		}
	}
	return entries, nil
}

// Merge appends each incoming entry whose date is not already present.
// Existing entries win over incoming ones, and earlier incoming entries win
// over later ones. It returns the merged list and the accepted entries.
func Merge(existing, incoming []model.MoodEntry) (merged, accepted []model.MoodEntry) {
	dates := make(map[string]bool, len(existing)+len(incoming))
	for _, e := range existing {
		dates[e.Date] = true
	}

	merged = append([]model.MoodEntry(nil), existing...)
	for _, e := range incoming {
		if dates[e.Date] {
			continue
		}
		dates[e.Date] = true
		merged = append(merged, e)
		accepted = append(accepted, e)
	}
	return merged, accepted
}

// SortByDateDesc orders entries newest date first, keeping the relative
// order of entries that share a date.
func SortByDateDesc(entries []model.MoodEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}

// Import merges an export document into the ledger by date, sorts the
// result newest date first, trims it to MaxEntries, and persists it.
// A format error leaves the ledger untouched.
func (l *Ledger) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	incoming, err := ParseImport(r)
	if err != nil {
		return ImportResult{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make(map[string]bool, len(l.entries)+len(incoming))
	for _, e := range l.entries {
		ids[e.ID] = true
	}
	for i := range incoming {
		e := &incoming[i]
		if e.ID == "" || ids[e.ID] {
			e.ID = l.newID(l.now())
		}
		ids[e.ID] = true
		if e.Emoji == "" {
			e.Emoji = EmojiFor(e.Value)
		}
		if e.Timestamp == 0 {
			day, _ := time.ParseInLocation(model.DateLayout, e.Date, l.now().Location())
			e.Timestamp = day.UnixMilli()
		}
	}

	merged, accepted := Merge(l.entries, incoming)
	SortByDateDesc(merged)
	if len(merged) > MaxEntries {
		merged = merged[:MaxEntries]
	}

	kept := make(map[string]bool, len(merged))
	for _, e := range merged {
		kept[e.ID] = true
	}
	res := ImportResult{Total: len(merged)}
	for _, e := range accepted {
		if kept[e.ID] {
			res.Added++
		}
	}
	res.Skipped = len(incoming) - res.Added

	if err := l.persist(ctx, merged); err != nil {
		return ImportResult{}, err
	}
	l.logger.Info("Imported mood data",
		zap.Int("incoming", len(incoming)),
		zap.Int("added", res.Added),
		zap.Int("total", res.Total))
	return res, nil
}
