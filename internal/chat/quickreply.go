package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/rcliao/mindmate/internal/model"
	"github.com/rcliao/mindmate/internal/store"
)

var (
	// ErrDefaultReply is returned when removing one of the built-in replies.
	ErrDefaultReply = errors.New("default quick replies cannot be removed")

	// ErrReplyNotFound is returned when no custom reply matches.
	ErrReplyNotFound = errors.New("quick reply not found")
)

// Length bounds, exclusive, for a message to be learned as a quick reply.
const (
	minLearnLen = 5
	maxLearnLen = 50
)

var defaultReplies = []model.QuickReply{
	{ID: "default-1", Text: "I feel anxious"},
	{ID: "default-2", Text: "I'm stressed"},
	{ID: "default-3", Text: "I need support"},
	{ID: "default-4", Text: "Tell me about breathing exercises"},
}

// DefaultReplies returns the built-in replies. They are never persisted.
func DefaultReplies() []model.QuickReply {
	return append([]model.QuickReply(nil), defaultReplies...)
}

// QuickReplies holds the custom quick replies learned from sent messages.
type QuickReplies struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
	ids    *idSource

	mu     sync.Mutex
	custom []model.QuickReply
}

// NewQuickReplies loads the custom replies. A value in the legacy format,
// a list of plain strings, is converted to records and written back once.
func NewQuickReplies(ctx context.Context, s store.Store, logger *zap.Logger) (*QuickReplies, error) {
	q := &QuickReplies{
		store:  s,
		logger: logger,
		now:    time.Now,
		ids:    newIDSource(),
		custom: []model.QuickReply{},
	}

	raw, err := s.Get(ctx, store.KeyQuickReplies)
	if errors.Is(err, store.ErrNotFound) {
		return q, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load quick replies: %w", err)
	}

	replies, legacy, err := decodeReplies([]byte(raw), q.newReply)
	if err != nil {
		logger.Warn("Failed to parse custom quick replies, starting empty", zap.Error(err))
		return q, nil
	}
	if legacy {
		if err := q.persist(ctx, replies); err != nil {
			return nil, err
		}
		logger.Info("Migrated legacy quick replies", zap.Int("count", len(replies)))
		return q, nil
	}
	q.custom = replies
	return q, nil
}

// decodeReplies reads either schema. legacy is true when raw held the
// plain-string schema and the records were minted with mint.
func decodeReplies(raw []byte, mint func(text string) model.QuickReply) (replies []model.QuickReply, legacy bool, err error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, err
	}
	if len(items) == 0 {
		return []model.QuickReply{}, false, nil
	}

	if bytes.HasPrefix(bytes.TrimSpace(items[0]), []byte(`"`)) {
		var texts []string
		if err := json.Unmarshal(raw, &texts); err != nil {
			return nil, false, err
		}
		replies = make([]model.QuickReply, 0, len(texts))
		for _, text := range texts {
			replies = append(replies, mint(text))
		}
		return replies, true, nil
	}

	if err := json.Unmarshal(raw, &replies); err != nil {
		return nil, false, err
	}
	return replies, false, nil
}

func (q *QuickReplies) newReply(text string) model.QuickReply {
	return model.QuickReply{ID: q.ids.next(q.now()), Text: text}
}

// Learnable reports whether text may become a new quick reply given the
// replies that already exist.
func Learnable(text string, existing []model.QuickReply) bool {
	n := utf8.RuneCountInString(text)
	if n <= minLearnLen || n >= maxLearnLen {
		return false
	}
	for _, r := range defaultReplies {
		if r.Text == text {
			return false
		}
	}
	for _, r := range existing {
		if r.Text == text {
			return false
		}
	}
	return true
}

// Learn stores text as a custom reply when it is learnable. It returns the
// new reply and true, or false when nothing was added.
func (q *QuickReplies) Learn(ctx context.Context, text string) (model.QuickReply, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !Learnable(text, q.custom) {
		return model.QuickReply{}, false, nil
	}
	reply := q.newReply(text)
	updated := append(append([]model.QuickReply(nil), q.custom...), reply)
	if err := q.persist(ctx, updated); err != nil {
		return model.QuickReply{}, false, err
	}
	return reply, true, nil
}

// All returns defaults first, then custom replies in creation order.
func (q *QuickReplies) All() []model.QuickReply {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := DefaultReplies()
	return append(out, q.custom...)
}

// Custom returns only the learned replies.
func (q *QuickReplies) Custom() []model.QuickReply {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]model.QuickReply, len(q.custom))
	copy(out, q.custom)
	return out
}

// IsDefault reports whether id names a built-in reply.
func IsDefault(id string) bool {
	for _, r := range defaultReplies {
		if r.ID == id {
			return true
		}
	}
	return false
}

// Remove deletes the custom reply with id.
func (q *QuickReplies) Remove(ctx context.Context, id string) error {
	if IsDefault(id) {
		return ErrDefaultReply
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	updated := make([]model.QuickReply, 0, len(q.custom))
	for _, r := range q.custom {
		if r.ID != id {
			updated = append(updated, r)
		}
	}
	if len(updated) == len(q.custom) {
		return fmt.Errorf("%w: %s", ErrReplyNotFound, id)
	}
	return q.persist(ctx, updated)
}

// RemoveText deletes the first custom reply whose text matches.
func (q *QuickReplies) RemoveText(ctx context.Context, text string) error {
	id := ""
	q.mu.Lock()
	for _, r := range q.custom {
		if r.Text == text {
			id = r.ID
			break
		}
	}
	q.mu.Unlock()

	if id == "" {
		for _, r := range defaultReplies {
			if r.Text == text {
				return ErrDefaultReply
			}
		}
		return fmt.Errorf("%w: %q", ErrReplyNotFound, text)
	}
	return q.Remove(ctx, id)
}

func (q *QuickReplies) persist(ctx context.Context, replies []model.QuickReply) error {
	if err := store.SetJSON(ctx, q.store, store.KeyQuickReplies, replies); err != nil {
		return fmt.Errorf("save quick replies: %w", err)
	}
	q.custom = replies
	return nil
}
