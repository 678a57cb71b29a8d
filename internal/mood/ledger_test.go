package mood

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rcliao/mindmate/internal/model"
	"github.com/rcliao/mindmate/internal/store"
)

// fakeClock advances one second per reading so consecutive adds get
// distinct timestamps on the same day.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

var testDay = time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)

func newTestLedger(t *testing.T, s store.Store) (*Ledger, *fakeClock) {
	t.Helper()
	if s == nil {
		s = store.NewMemoryStore()
	}
	clock := &fakeClock{t: testDay}
	l, err := NewLedger(context.Background(), s, zap.NewNop(), WithClock(clock.Now))
	require.NoError(t, err)
	return l, clock
}

func day(offset int) string {
	return testDay.AddDate(0, 0, offset).Format(model.DateLayout)
}

// failingStore rejects every write.
type failingStore struct {
	*store.MemoryStore
}

func (f failingStore) Set(ctx context.Context, key, value string) error {
	return errors.New("disk full")
}

func TestAddPrependsAndPersists(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	l, _ := newTestLedger(t, s)

	first, err := l.Add(ctx, AddParams{Date: day(-1), Value: 4})
	require.NoError(t, err)
	second, err := l.Add(ctx, AddParams{Value: 8, Emoji: "🌞"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "😔", first.Emoji, "emoji defaults from value")
	assert.Equal(t, "🌞", second.Emoji)
	assert.Equal(t, day(0), second.Date, "empty date means today")

	entries := l.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID, "newest first")

	// A fresh ledger over the same store sees the write
	reloaded, err := NewLedger(ctx, s, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, entries, reloaded.Entries())
}

func TestAddRejectsMalformedDate(t *testing.T) {
	l, _ := newTestLedger(t, nil)
	_, err := l.Add(context.Background(), AddParams{Date: "10/01/2024", Value: 5})
	assert.Error(t, err)
	assert.Zero(t, l.Len())
}

func TestRetentionWindowKeepsMostRecentlyAdded(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t, nil)

	// Dates run backwards as entries are added, so the oldest additions
	// carry the newest dates.
	var ids []string
	for i := 0; i < 35; i++ {
		e, err := l.Add(ctx, AddParams{Date: day(-i), Value: i%10 + 1})
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	entries := l.Entries()
	require.Len(t, entries, MaxEntries)
	for i, e := range entries {
		assert.Equal(t, ids[34-i], e.ID, "position %d", i)
	}
	for _, evicted := range ids[:5] {
		for _, e := range entries {
			assert.NotEqual(t, evicted, e.ID)
		}
	}
}

func TestFailedWriteLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	require.NoError(t, store.SetJSON(ctx, mem, store.KeyMoodHistory, []model.MoodEntry{
		{ID: "a", Date: day(0), Value: 5, Emoji: "😐", Timestamp: 1},
	}))

	l, _ := newTestLedger(t, failingStore{mem})
	_, err := l.Add(ctx, AddParams{Value: 9})
	require.Error(t, err)

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].ID)
}

func TestCorruptHistoryFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	s.Set(ctx, store.KeyMoodHistory, `{"not":"a list"`)

	l, _ := newTestLedger(t, s)
	assert.Zero(t, l.Len())

	_, err := l.Add(ctx, AddParams{Value: 6})
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
}

func TestEntriesForDateAllowsSeveralPerDay(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t, nil)

	l.Add(ctx, AddParams{Value: 3})
	l.Add(ctx, AddParams{Value: 7})
	l.Add(ctx, AddParams{Date: day(-1), Value: 5})

	assert.Len(t, l.EntriesForDate(day(0)), 2)
	assert.Len(t, l.Today(), 2)
	assert.Len(t, l.EntriesForDate(day(-1)), 1)
	assert.Empty(t, l.EntriesForDate(day(-2)))
}

func TestQueryDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t, nil)
	for i := 1; i <= 4; i++ {
		l.Add(ctx, AddParams{Date: day(-i), Value: i})
	}
	before := l.Entries()

	got := l.Query(func(e model.MoodEntry) bool { return e.Value%2 == 0 })
	require.Len(t, got, 2)
	got[0].Value = 99

	assert.Equal(t, before, l.Entries())
}

func TestStreak(t *testing.T) {
	ctx := context.Background()

	t.Run("empty ledger", func(t *testing.T) {
		l, _ := newTestLedger(t, nil)
		assert.Equal(t, 0, l.Streak())
	})

	t.Run("gap ends the streak", func(t *testing.T) {
		l, _ := newTestLedger(t, nil)
		for _, offset := range []int{-3, -1, 0} {
			_, err := l.Add(ctx, AddParams{Date: day(offset), Value: 5})
			require.NoError(t, err)
		}
		assert.Equal(t, 2, l.Streak())
	})

	t.Run("several entries on one day count once", func(t *testing.T) {
		l, _ := newTestLedger(t, nil)
		for _, offset := range []int{-2, -1, -1, 0, 0} {
			l.Add(ctx, AddParams{Date: day(offset), Value: 5})
		}
		assert.Equal(t, 3, l.Streak())
	})

	t.Run("nothing today", func(t *testing.T) {
		l, _ := newTestLedger(t, nil)
		l.Add(ctx, AddParams{Date: day(-1), Value: 5})
		assert.Equal(t, 0, l.Streak())
	})
}

func TestEmojiFor(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{0, ""}, {1, "😢"}, {4, "😔"}, {5, "😐"}, {8, "😊"}, {10, "😁"}, {11, ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.value), func(t *testing.T) {
			assert.Equal(t, tt.want, EmojiFor(tt.value))
		})
	}
}

func TestReloadSeesOtherWriters(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	reader, _ := newTestLedger(t, s)
	writer, _ := newTestLedger(t, s)

	_, err := writer.Add(ctx, AddParams{Date: day(0), Value: 7})
	require.NoError(t, err)
	assert.Equal(t, 0, reader.Len())

	require.NoError(t, reader.Reload(ctx))
	assert.Equal(t, 1, reader.Len())
}

func TestEmptyLedgerEncodesAsEmptyList(t *testing.T) {
	l, _ := newTestLedger(t, nil)

	assert.NotNil(t, l.Entries())
	for _, tf := range []Timeframe{All, Daily, Weekly, Monthly} {
		b, err := json.Marshal(l.History(tf))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(b), "timeframe %s", tf)
	}
}
