package profile

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rcliao/mindmate/internal/model"
	"github.com/rcliao/mindmate/internal/store"
)

func newTestService() (*Service, *store.MemoryStore) {
	s := store.NewMemoryStore()
	svc := NewService(s, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 2, 3, 4, 5, 6, 7_000_000, time.UTC) }
	return svc, s
}

func ptr[T any](v T) *T { return &v }

func TestGetWithoutProfile(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, ErrNoProfile)
	assert.Empty(t, svc.DisplayName(context.Background()))
}

func TestCreateUsesDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	p, err := svc.Create(ctx, "  Sam ")
	require.NoError(t, err)
	assert.Equal(t, "Sam", p.Name)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "2024-02-03T04:05:06.007Z", p.JoinedDate)
	assert.Equal(t, model.Preferences{Notifications: true, ReminderTime: "20:00", Theme: model.ThemeTeal}, p.Preferences)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.Equal(t, "Sam", svc.DisplayName(ctx))
}

func TestUpdateIsPartial(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	created, _ := svc.Create(ctx, "Sam")

	p, err := svc.Update(ctx, Update{DarkMode: ptr(true), Theme: ptr(model.ThemePurple)})
	require.NoError(t, err)
	assert.Equal(t, created.ID, p.ID)
	assert.Equal(t, "Sam", p.Name)
	assert.True(t, p.Preferences.DarkMode)
	assert.True(t, p.Preferences.Notifications)
	assert.Equal(t, model.ThemePurple, p.Preferences.Theme)
}

func TestUpdateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	before, _ := svc.Create(ctx, "Sam")

	_, err := svc.Update(ctx, Update{
		Name:         ptr(strings.Repeat("x", 51)),
		ReminderTime: ptr("25:00"),
		Theme:        ptr(model.Theme("orange")),
	})
	var ve *model.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "reminderTime")
	assert.Contains(t, ve.Fields, "theme")

	after, _ := svc.Get(ctx)
	assert.Equal(t, before, after, "rejected update is not saved")
}

func TestUpdateWithoutProfile(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Update(context.Background(), Update{Name: ptr("Sam")})
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestCreateRejectsEmptyName(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), "   ")
	var ve *model.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "is required", ve.Fields["name"])
}

func TestCorruptProfileIsAbsent(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService()
	s.Set(ctx, store.KeyUserProfile, "{broken")

	_, err := svc.Get(ctx)
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestReminderFormat(t *testing.T) {
	for in, ok := range map[string]bool{"00:00": true, "23:59": true, "7:30": false, "24:00": false, "12:60": false} {
		p := model.UserProfile{Name: "a", Preferences: model.Preferences{ReminderTime: in, Theme: model.ThemeBlue}}
		assert.Equal(t, ok, Validate(p) == nil, in)
	}
}
