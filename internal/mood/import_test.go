package mood

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/mindmate/internal/model"
)

func exportDoc(entries ...model.MoodEntry) string {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, entries, testDay); err != nil {
		panic(err)
	}
	return buf.String()
}

func TestImportSkipsExistingDates(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t, nil)
	existing, err := l.Add(ctx, AddParams{Date: "2024-01-01", Value: 5})
	require.NoError(t, err)

	res, err := l.Import(ctx, strings.NewReader(exportDoc(
		model.MoodEntry{ID: "x1", Date: "2024-01-01", Value: 9, Emoji: "😁", Timestamp: 1},
	)))
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Added: 0, Skipped: 1, Total: 1}, res)
	require.Len(t, l.Entries(), 1)
	assert.Equal(t, existing, l.Entries()[0])

	res, err = l.Import(ctx, strings.NewReader(exportDoc(
		model.MoodEntry{ID: "x2", Date: "2024-01-02", Value: 9, Emoji: "😁", Timestamp: 2},
	)))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "2024-01-02", l.Entries()[0].Date, "sorted newest date first")
}

func TestImportFirstIncomingWins(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t, nil)

	res, err := l.Import(ctx, strings.NewReader(exportDoc(
		model.MoodEntry{ID: "a", Date: "2024-01-03", Value: 2},
		model.MoodEntry{ID: "b", Date: "2024-01-03", Value: 7},
	)))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Skipped)

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, 2, entries[0].Value)
	assert.Equal(t, "😢", entries[0].Emoji, "missing emoji is filled in")
	assert.NotZero(t, entries[0].Timestamp)
}

func TestImportRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `mood,5`},
		{"missing moodData", `{"exportDate":"2024-01-01T00:00:00.000Z"}`},
		{"null moodData", `{"moodData":null}`},
		{"moodData not a list", `{"moodData":{"date":"2024-01-01"}}`},
		{"value off scale", `{"moodData":[{"date":"2024-01-01","value":11}]}`},
		{"bad date", `{"moodData":[{"date":"Jan 1","value":5}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			l, _ := newTestLedger(t, nil)
			l.Add(ctx, AddParams{Date: "2024-01-05", Value: 5})
			before := l.Entries()

			_, err := l.Import(ctx, strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidFormat)
			assert.Equal(t, before, l.Entries())
		})
	}
}

func TestImportRespectsRetentionCap(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t, nil)
	for i := 0; i < MaxEntries; i++ {
		_, err := l.Add(ctx, AddParams{Date: fmt.Sprintf("2024-02-%02d", i%28+1), Value: 5})
		require.NoError(t, err)
	}

	// Older dates sort past the cap and are dropped.
	res, err := l.Import(ctx, strings.NewReader(exportDoc(
		model.MoodEntry{Date: "2023-06-01", Value: 3},
		model.MoodEntry{Date: "2024-03-01", Value: 9},
	)))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, MaxEntries, res.Total)
	assert.Equal(t, MaxEntries, l.Len())
	assert.Equal(t, "2024-03-01", l.Entries()[0].Date)
}

func TestImportAssignsFreshIDsOnCollision(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t, nil)
	existing, _ := l.Add(ctx, AddParams{Date: "2024-01-01", Value: 5})

	_, err := l.Import(ctx, strings.NewReader(exportDoc(
		model.MoodEntry{ID: existing.ID, Date: "2024-01-02", Value: 6},
		model.MoodEntry{Date: "2024-01-03", Value: 7},
	)))
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, e := range l.Entries() {
		assert.NotEmpty(t, e.ID)
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
	assert.Len(t, seen, 3)
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, _ := newTestLedger(t, nil)
	for i := 0; i < 5; i++ {
		src.Add(ctx, AddParams{Date: day(-i), Value: i + 1})
	}
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, src.Entries(), testDay))

	dst, _ := newTestLedger(t, nil)
	res, err := dst.Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Added)
	assert.ElementsMatch(t, src.Entries(), dst.Entries())
}

func TestMergeIsPure(t *testing.T) {
	existing := []model.MoodEntry{{ID: "a", Date: "2024-01-01", Value: 5}}
	incoming := []model.MoodEntry{
		{ID: "b", Date: "2024-01-01", Value: 9},
		{ID: "c", Date: "2024-01-02", Value: 4},
	}

	merged, accepted := Merge(existing, incoming)
	require.Len(t, merged, 2)
	require.Len(t, accepted, 1)
	assert.Equal(t, "c", accepted[0].ID)
	assert.Len(t, existing, 1)
}
