// Package resources serves the curated support directory and the user's
// favorites.
package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/mindmate/internal/model"
	"github.com/rcliao/mindmate/internal/notify"
	"github.com/rcliao/mindmate/internal/store"
)

// ErrUnknownResource is returned for an id not in the catalog.
var ErrUnknownResource = errors.New("unknown resource")

// Categories returns the category filter values, "All" first.
func Categories() []string {
	return append([]string(nil), categories...)
}

// Catalog returns every resource in catalog order.
func Catalog() []model.Resource {
	return append([]model.Resource(nil), catalog...)
}

// Get looks up a resource by id.
func Get(id string) (model.Resource, bool) {
	for _, r := range catalog {
		if r.ID == id {
			return r, true
		}
	}
	return model.Resource{}, false
}

// Filter returns resources in category (or every category for "All" or "")
// whose title, description or a tag contains query, ignoring case. Crisis
// resources come first.
func Filter(category, query string) []model.Resource {
	q := strings.ToLower(strings.TrimSpace(query))

	var crisis, other []model.Resource
	for _, r := range catalog {
		if category != "" && category != CategoryAll && r.Category != category {
			continue
		}
		if q != "" && !matches(r, q) {
			continue
		}
		if r.Category == CategoryCrisis {
			crisis = append(crisis, r)
		} else {
			other = append(other, r)
		}
	}
	out := make([]model.Resource, 0, len(crisis)+len(other))
	out = append(out, crisis...)
	return append(out, other...)
}

func matches(r model.Resource, q string) bool {
	if strings.Contains(strings.ToLower(r.Title), q) || strings.Contains(strings.ToLower(r.Description), q) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Favorites is the list of favorited resource ids.
type Favorites struct {
	store    store.Store
	logger   *zap.Logger
	notifier notify.Notifier
}

func NewFavorites(s store.Store, logger *zap.Logger, n notify.Notifier) *Favorites {
	if n == nil {
		n = notify.Multi{}
	}
	return &Favorites{store: s, logger: logger, notifier: n}
}

// List returns the favorited ids in the order they were added.
func (f *Favorites) List(ctx context.Context) ([]string, error) {
	var ids []string
	err := store.GetJSON(ctx, f.store, store.KeyFavorites, &ids)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
	case errors.Is(err, store.ErrCorrupt):
		f.logger.Warn("Failed to parse favorite resources", zap.Error(err))
	default:
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	if ids == nil || err != nil {
		ids = []string{}
	}
	return ids, nil
}

// Resources returns the favorited catalog entries. Ids no longer in the
// catalog are skipped.
func (f *Favorites) Resources(ctx context.Context) ([]model.Resource, error) {
	ids, err := f.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Resource{}
	for _, id := range ids {
		if r, ok := Get(id); ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *Favorites) IsFavorite(ctx context.Context, id string) (bool, error) {
	ids, err := f.List(ctx)
	if err != nil {
		return false, err
	}
	for _, x := range ids {
		if x == id {
			return true, nil
		}
	}
	return false, nil
}

// Toggle adds id to the favorites, or removes it if present. It reports
// whether id is a favorite afterwards.
func (f *Favorites) Toggle(ctx context.Context, id string) (bool, error) {
	if _, ok := Get(id); !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownResource, id)
	}
	ids, err := f.List(ctx)
	if err != nil {
		return false, err
	}

	updated := make([]string, 0, len(ids)+1)
	removed := false
	for _, x := range ids {
		if x == id {
			removed = true
			continue
		}
		updated = append(updated, x)
	}
	if !removed {
		updated = append(updated, id)
	}

	if err := store.SetJSON(ctx, f.store, store.KeyFavorites, updated); err != nil {
		return false, fmt.Errorf("save favorites: %w", err)
	}
	if removed {
		f.notifier.Notify(notify.Notice{Level: notify.LevelInfo, Title: "Removed from favorites", Message: "Resource removed from your favorites."})
	} else {
		f.notifier.Notify(notify.Notice{Level: notify.LevelInfo, Title: "Added to favorites", Message: "Resource saved to your favorites."})
	}
	return !removed, nil
}
