// Package profile manages the single user profile of this device.
package profile

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rcliao/mindmate/internal/model"
	"github.com/rcliao/mindmate/internal/store"
)

// ErrNoProfile is returned before onboarding has created a profile.
var ErrNoProfile = errors.New("no profile yet")

const maxNameLen = 50

const isoMillis = "2006-01-02T15:04:05.000Z"

var reminderRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// DefaultPreferences are applied when a profile is created.
var DefaultPreferences = model.Preferences{
	Notifications: true,
	DarkMode:      false,
	ReminderTime:  "20:00",
	Theme:         model.ThemeTeal,
}

// Update is a partial update. Nil fields are left unchanged.
type Update struct {
	Name          *string
	Notifications *bool
	DarkMode      *bool
	ReminderTime  *string
	Theme         *model.Theme
}

// Service reads and writes the profile under its own key.
type Service struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(s store.Store, logger *zap.Logger) *Service {
	return &Service{store: s, logger: logger, now: time.Now}
}

// Get returns the stored profile. A corrupt profile is logged and treated
// as absent.
func (s *Service) Get(ctx context.Context) (model.UserProfile, error) {
	var p model.UserProfile
	err := store.GetJSON(ctx, s.store, store.KeyUserProfile, &p)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, store.ErrNotFound):
		return model.UserProfile{}, ErrNoProfile
	case errors.Is(err, store.ErrCorrupt):
		s.logger.Warn("Failed to parse user profile", zap.Error(err))
		return model.UserProfile{}, ErrNoProfile
	default:
		return model.UserProfile{}, fmt.Errorf("load profile: %w", err)
	}
}

// Create stores a new profile named name with the default preferences,
// replacing any existing one.
func (s *Service) Create(ctx context.Context, name string) (model.UserProfile, error) {
	p := model.UserProfile{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		JoinedDate:  s.now().UTC().Format(isoMillis),
		Preferences: DefaultPreferences,
	}
	if err := Validate(p); err != nil {
		return model.UserProfile{}, err
	}
	if err := s.save(ctx, p); err != nil {
		return model.UserProfile{}, err
	}
	s.logger.Info("Created profile", zap.String("id", p.ID))
	return p, nil
}

// Update applies u to the stored profile.
func (s *Service) Update(ctx context.Context, u Update) (model.UserProfile, error) {
	p, err := s.Get(ctx)
	if err != nil {
		return model.UserProfile{}, err
	}

	if u.Name != nil {
		p.Name = strings.TrimSpace(*u.Name)
	}
	if u.Notifications != nil {
		p.Preferences.Notifications = *u.Notifications
	}
	if u.DarkMode != nil {
		p.Preferences.DarkMode = *u.DarkMode
	}
	if u.ReminderTime != nil {
		p.Preferences.ReminderTime = *u.ReminderTime
	}
	if u.Theme != nil {
		p.Preferences.Theme = *u.Theme
	}

	if err := Validate(p); err != nil {
		return model.UserProfile{}, err
	}
	if err := s.save(ctx, p); err != nil {
		return model.UserProfile{}, err
	}
	return p, nil
}

// DisplayName returns the profile name, or "" without a profile.
func (s *Service) DisplayName(ctx context.Context) string {
	p, err := s.Get(ctx)
	if err != nil {
		return ""
	}
	return p.Name
}

func (s *Service) save(ctx context.Context, p model.UserProfile) error {
	if err := store.SetJSON(ctx, s.store, store.KeyUserProfile, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Validate checks the user-editable fields of p.
func Validate(p model.UserProfile) error {
	var v model.ValidationError
	switch n := utf8.RuneCountInString(p.Name); {
	case n == 0:
		v.Add("name", "is required")
	case n > maxNameLen:
		v.Add("name", fmt.Sprintf("must be at most %d characters", maxNameLen))
	}
	if !reminderRe.MatchString(p.Preferences.ReminderTime) {
		v.Add("reminderTime", "must be HH:MM in 24-hour time")
	}
	if !model.ValidThemes[p.Preferences.Theme] {
		v.Add("theme", "must be one of teal, blue, purple, green")
	}
	return v.Err()
}
