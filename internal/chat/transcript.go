// Package chat implements the chat transcript, crisis detection and safety
// escalation, quick-reply learning, bot responders, and the session that
// ties them together.
package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/rcliao/mindmate/internal/model"
	"github.com/rcliao/mindmate/internal/store"
)

// Transcript is the ordered chat history, cached in memory and written
// through to the store on every change.
type Transcript struct {
	store  store.Store
	logger *zap.Logger

	mu       sync.Mutex
	messages []model.ChatMessage
}

// NewTranscript loads the persisted chat history. A corrupt blob is logged
// and replaced by an empty history.
func NewTranscript(ctx context.Context, s store.Store, logger *zap.Logger) (*Transcript, error) {
	t := &Transcript{store: s, logger: logger}

	var msgs []model.ChatMessage
	err := store.GetJSON(ctx, s, store.KeyChatHistory, &msgs)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
	case errors.Is(err, store.ErrCorrupt):
		logger.Warn("Failed to parse chat history, starting empty", zap.Error(err))
		msgs = nil
	default:
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	if msgs == nil {
		msgs = []model.ChatMessage{}
	}
	t.messages = msgs
	return t, nil
}

// Append adds one message at the end.
func (t *Transcript) Append(ctx context.Context, m model.ChatMessage) error {
	return t.AppendAll(ctx, []model.ChatMessage{m})
}

// AppendAll adds messages at the end in order, with a single write.
func (t *Transcript) AppendAll(ctx context.Context, msgs []model.ChatMessage) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	updated := make([]model.ChatMessage, 0, len(t.messages)+len(msgs))
	updated = append(updated, t.messages...)
	updated = append(updated, msgs...)
	return t.persist(ctx, updated)
}

// Delete removes the message with id. It reports whether one was removed.
func (t *Transcript) Delete(ctx context.Context, id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	updated := make([]model.ChatMessage, 0, len(t.messages))
	for _, m := range t.messages {
		if m.ID != id {
			updated = append(updated, m)
		}
	}
	if len(updated) == len(t.messages) {
		return false, nil
	}
	if err := t.persist(ctx, updated); err != nil {
		return false, err
	}
	return true, nil
}

// Clear drops the whole history and its key.
func (t *Transcript) Clear(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Remove(ctx, store.KeyChatHistory); err != nil {
		return fmt.Errorf("clear chat history: %w", err)
	}
	t.messages = []model.ChatMessage{}
	return nil
}

// Messages returns a copy of the history in append order.
func (t *Transcript) Messages() []model.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.ChatMessage, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

func (t *Transcript) persist(ctx context.Context, msgs []model.ChatMessage) error {
	if err := store.SetJSON(ctx, t.store, store.KeyChatHistory, msgs); err != nil {
		return fmt.Errorf("save chat history: %w", err)
	}
	t.messages = msgs
	return nil
}
