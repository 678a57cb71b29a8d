package mood

import (
	"math"
	"sort"
	"time"

	"github.com/rcliao/mindmate/internal/model"
)

// Average is the mean Value of entries rounded to one decimal place.
// An empty subset averages to 0.
func Average(entries []model.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.Value
	}
	return math.Round(float64(sum)/float64(len(entries))*10) / 10
}

// SinceTime matches entries created at or after t.
func SinceTime(t time.Time) func(model.MoodEntry) bool {
	ms := t.UnixMilli()
	return func(e model.MoodEntry) bool { return e.Timestamp >= ms }
}

// SinceDate matches entries dated on or after t's calendar day.
func SinceDate(t time.Time) func(model.MoodEntry) bool {
	day := t.Format(model.DateLayout)
	// YYYY-MM-DD sorts lexically in calendar order.
	return func(e model.MoodEntry) bool { return e.Date >= day }
}

// Timeframe selects a window of history.
type Timeframe string

const (
	Daily   Timeframe = "daily"
	Weekly  Timeframe = "weekly"
	Monthly Timeframe = "monthly"
	All     Timeframe = "all"
)

// ValidTimeframes are the accepted timeframe names.
var ValidTimeframes = map[Timeframe]bool{
	Daily:   true,
	Weekly:  true,
	Monthly: true,
	All:     true,
}

// History returns the entries created within tf, newest first by timestamp.
func (l *Ledger) History(tf Timeframe) []model.MoodEntry {
	now := l.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var entries []model.MoodEntry
	switch tf {
	case Daily:
		entries = l.Query(SinceTime(midnight))
	case Weekly:
		entries = l.Query(SinceTime(midnight.AddDate(0, 0, -7)))
	case Monthly:
		entries = l.Query(SinceTime(midnight.AddDate(0, -1, 0)))
	default:
		entries = l.Entries()
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries
}

// WeeklyAverage averages the entries dated within the last 7 days.
func (l *Ledger) WeeklyAverage() (float64, int) {
	entries := l.Query(SinceDate(l.now().AddDate(0, 0, -7)))
	return Average(entries), len(entries)
}

// MonthlyAverage averages the entries dated within the last month.
func (l *Ledger) MonthlyAverage() (float64, int) {
	entries := l.Query(SinceDate(l.now().AddDate(0, -1, 0)))
	return Average(entries), len(entries)
}

// Trend describes the direction of recent moods.
type Trend string

const (
	TrendImproving    Trend = "improving"
	TrendDeclining    Trend = "declining"
	TrendStable       Trend = "stable"
	TrendInsufficient Trend = "insufficient data"
)

// trendWindow is how many recent entries are compared with the ones before.
const trendWindow = 3

// TrendOf compares the newest trendWindow entries with the next trendWindow.
// entries must be newest first.
func TrendOf(entries []model.MoodEntry) Trend {
	if len(entries) < trendWindow {
		return TrendInsufficient
	}
	recent := entries[:trendWindow]
	older := entries[trendWindow:min(len(entries), 2*trendWindow)]

	recentAvg, olderAvg := Average(recent), Average(older)
	switch {
	case recentAvg > olderAvg+0.5:
		return TrendImproving
	case recentAvg < olderAvg-0.5:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// Summary is the profile-page digest of the ledger.
type Summary struct {
	TotalEntries   int     `json:"total_entries"`
	AverageMood    float64 `json:"average_mood"`
	DaysSinceFirst int     `json:"days_since_first"`
	StreakDays     int     `json:"streak_days"`
	WeeklyAverage  float64 `json:"weekly_average"`
	WeeklyEntries  int     `json:"weekly_entries"`
	MonthlyAverage float64 `json:"monthly_average"`
	MonthlyEntries int     `json:"monthly_entries"`
	Trend          Trend   `json:"trend"`
	TodayEntries   int     `json:"today_entries"`
}

// Summarize computes the ledger summary. An empty ledger yields zeros and
// TrendInsufficient.
func (l *Ledger) Summarize() Summary {
	entries := l.Entries()
	s := Summary{
		TotalEntries: len(entries),
		AverageMood:  Average(entries),
		StreakDays:   l.Streak(),
		Trend:        TrendOf(entries),
		TodayEntries: len(l.Today()),
	}
	s.WeeklyAverage, s.WeeklyEntries = l.WeeklyAverage()
	s.MonthlyAverage, s.MonthlyEntries = l.MonthlyAverage()

	if len(entries) > 0 {
		oldest := entries[0].Date
		for _, e := range entries[1:] {
			if e.Date < oldest {
				oldest = e.Date
			}
		}
		if first, err := time.ParseInLocation(model.DateLayout, oldest, l.now().Location()); err == nil {
			s.DaysSinceFirst = int(l.now().Sub(first).Hours() / 24)
		}
	}
	return s
}
