package notify

import (
	"context"
	"fmt"
	"time"
)

// Daily check-in reminder texts.
const (
	ReminderTitle   = "Daily Mood Check-in"
	ReminderMessage = "How are you feeling today? Take a moment to track your mood."
)

// NextReminder returns the next instant at hh:mm local to now, today if it
// is still ahead, otherwise tomorrow.
func NextReminder(now time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reminder time %q (use HH:MM)", hhmm)
	}
	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, nil
}

// Reminder sends the check-in notice every day at At until stopped.
type Reminder struct {
	At       string // HH:MM
	Notifier Notifier
	Now      func() time.Time
	After    func(time.Duration) <-chan time.Time
}

// Run blocks until ctx is done, sending one notice per day.
func (r *Reminder) Run(ctx context.Context) error {
	now, after := r.Now, r.After
	if now == nil {
		now = time.Now
	}
	if after == nil {
		after = time.After
	}

	for {
		next, err := NextReminder(now(), r.At)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-after(next.Sub(now())):
			r.Notifier.Notify(Notice{Level: LevelInfo, Title: ReminderTitle, Message: ReminderMessage})
		}
	}
}
