// Package mood implements the mood ledger: a retention-capped list of mood
// check-ins persisted under a single key, with aggregation helpers and
// CSV/JSON export and merge-by-date import.
package mood

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/rcliao/mindmate/internal/model"
	"github.com/rcliao/mindmate/internal/store"
)

// MaxEntries is the retention window: the ledger keeps the most recently
// added entries up to this count.
const MaxEntries = 30

// AddParams holds parameters for recording a mood.
type AddParams struct {
	Date  string // YYYY-MM-DD; empty means today
	Value int    // 1..10, enforced by the caller
	Emoji string // empty means the default emoji for Value
}

// Ledger owns the list of mood entries, newest first by insertion.
// Reads are served from memory; every mutation writes the full list through.
type Ledger struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	entropy io.Reader
	entries []model.MoodEntry
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the ledger's time source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// NewLedger loads the persisted ledger. A corrupt blob is logged and
// replaced by an empty ledger.
func NewLedger(ctx context.Context, s store.Store, logger *zap.Logger, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store:   s,
		logger:  logger,
		now:     time.Now,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	for _, opt := range opts {
		opt(l)
	}

	var entries []model.MoodEntry
	err := store.GetJSON(ctx, s, store.KeyMoodHistory, &entries)
	switch {
	case err == nil:
		if entries == nil {
			entries = []model.MoodEntry{}
		}
		l.entries = entries
	case store.IsMissing(err):
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warn("Failed to parse mood history, starting empty", zap.Error(err))
		}
		l.entries = []model.MoodEntry{}
	default:
		return nil, fmt.Errorf("load mood history: %w", err)
	}

	return l, nil
}

func (l *Ledger) newID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), l.entropy).String()
}

// Add records a mood, prepends it, and trims to MaxEntries.
// On a failed write the in-memory ledger is unchanged.
func (l *Ledger) Add(ctx context.Context, p AddParams) (model.MoodEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	date := p.Date
	if date == "" {
		date = now.Format(model.DateLayout)
	} else if _, err := time.Parse(model.DateLayout, date); err != nil {
		return model.MoodEntry{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", date)
	}
	emoji := p.Emoji
	if emoji == "" {
		emoji = EmojiFor(p.Value)
	}

	entry := model.MoodEntry{
		ID:        l.newID(now),
		Date:      date,
		Value:     p.Value,
		Emoji:     emoji,
		Timestamp: now.UnixMilli(),
	}

	updated := make([]model.MoodEntry, 0, len(l.entries)+1)
	updated = append(updated, entry)
	updated = append(updated, l.entries...)
	if len(updated) > MaxEntries {
		updated = updated[:MaxEntries]
	}

	if err := l.persist(ctx, updated); err != nil {
		return model.MoodEntry{}, err
	}
	return entry, nil
}

// persist writes entries and, on success, adopts them. Caller holds mu.
func (l *Ledger) persist(ctx context.Context, entries []model.MoodEntry) error {
	if err := store.SetJSON(ctx, l.store, store.KeyMoodHistory, entries); err != nil {
		return fmt.Errorf("save mood history: %w", err)
	}
	l.entries = entries
	return nil
}

// Entries returns a copy of the ledger in stored order.
func (l *Ledger) Entries() []model.MoodEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.MoodEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Query returns the entries matching pred, in stored order.
func (l *Ledger) Query(pred func(model.MoodEntry) bool) []model.MoodEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []model.MoodEntry{}
	for _, e := range l.entries {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// EntriesForDate returns every entry recorded for the given calendar day.
func (l *Ledger) EntriesForDate(date string) []model.MoodEntry {
	return l.Query(func(e model.MoodEntry) bool { return e.Date == date })
}

// Today returns today's entries.
func (l *Ledger) Today() []model.MoodEntry {
	return l.EntriesForDate(l.now().Format(model.DateLayout))
}

// Streak counts consecutive calendar days with at least one entry, walking
// back from today. A day without entries ends the streak.
func (l *Ledger) Streak() int {
	l.mu.Lock()
	days := make(map[string]bool, len(l.entries))
	for _, e := range l.entries {
		days[e.Date] = true
	}
	l.mu.Unlock()

	streak := 0
	day := l.now()
	for days[day.Format(model.DateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// Reload re-reads the ledger from the store, picking up writes made by
// another process.
func (l *Ledger) Reload(ctx context.Context) error {
	fresh, err := NewLedger(ctx, l.store, l.logger, WithClock(l.now))
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.entries = fresh.entries
	l.mu.Unlock()
	return nil
}

// moodEmojis maps each value on the scale to its emoji.
var moodEmojis = [...]string{
	1: "😢", 2: "😢",
	3: "😔", 4: "😔",
	5: "😐", 6: "😐",
	7: "😊", 8: "😊",
	9: "😁", 10: "😁",
}

// EmojiFor returns the emoji for a mood value, or "" off the scale.
func EmojiFor(value int) string {
	if !model.ValidMoodValue(value) {
		return ""
	}
	return moodEmojis[value]
}
