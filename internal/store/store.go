// Package store provides the local key-value storage that backs every
// MindMate entity, plus SQLite and in-memory implementations.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys under which each entity is persisted. One entity type per key.
const (
	KeyAuth         = "mindmate_auth"
	KeyUsers        = "mindmate_users"
	KeyChatHistory  = "chatHistory"
	KeyMoodHistory  = "moodHistory"
	KeyQuickReplies = "customQuickReplies"
	KeyUserProfile  = "userProfile"
	KeyFavorites    = "favoriteResources"
)

// UserDataKeys are wiped on logout.
var UserDataKeys = []string{
	KeyUserProfile,
	KeyChatHistory,
	KeyMoodHistory,
	KeyFavorites,
	KeyQuickReplies,
}

var (
	// ErrNotFound is returned by Get for a key that was never set or was removed.
	ErrNotFound = errors.New("key not found")

	// ErrCorrupt wraps a stored value that cannot be decoded.
	ErrCorrupt = errors.New("corrupt value")
)

// Store is a string-keyed, string-valued persistent store.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys lists every stored key in lexical order.
	Keys(ctx context.Context) ([]string, error)

	// Close closes the store.
	Close() error
}

// GetJSON decodes the value stored under key into v.
// A value that is not valid JSON for v yields an error wrapping ErrCorrupt.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(b))
}

// IsMissing reports whether err means "use the empty default": the key is
// absent or its value is corrupt.
func IsMissing(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrCorrupt)
}
