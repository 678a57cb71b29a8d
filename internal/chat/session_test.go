package chat

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/rcliao/mindmate/internal/model"
	"github.com/rcliao/mindmate/internal/notify"
	"github.com/rcliao/mindmate/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

type staticProfile string

func (p staticProfile) DisplayName(context.Context) string { return string(p) }

// scriptedResponder counts calls and answers with reply or err.
type scriptedResponder struct {
	calls atomic.Int32
	reply string
	err   error
}

func (r *scriptedResponder) Reply(context.Context, []model.ChatMessage) (string, error) {
	r.calls.Add(1)
	return r.reply, r.err
}

// blockingResponder holds each reply until released or cancelled.
type blockingResponder struct {
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func newBlockingResponder() *blockingResponder {
	return &blockingResponder{started: make(chan struct{}), release: make(chan struct{})}
}

func (r *blockingResponder) Reply(ctx context.Context, _ []model.ChatMessage) (string, error) {
	r.once.Do(func() { close(r.started) })
	select {
	case <-r.release:
		return "ok", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type sessionFixture struct {
	session  *Session
	store    *store.MemoryStore
	recorder *notify.Recorder
}

var morning = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newTestSession(t *testing.T, r Responder) sessionFixture {
	t.Helper()
	ctx := context.Background()
	s := store.NewMemoryStore()
	tr, err := NewTranscript(ctx, s, zap.NewNop())
	require.NoError(t, err)
	q, err := NewQuickReplies(ctx, s, zap.NewNop())
	require.NoError(t, err)
	rec := &notify.Recorder{}

	sess := NewSession(Deps{
		Transcript:   tr,
		QuickReplies: q,
		Safety:       NewSafetyEscalation(rec),
		Responder:    r,
		Profile:      staticProfile("Sam"),
		Notifier:     rec,
		Logger:       zap.NewNop(),
		Now:          func() time.Time { return morning },
	})
	return sessionFixture{session: sess, store: s, recorder: rec}
}

func TestGreetingText(t *testing.T) {
	day := func(h int) time.Time { return time.Date(2024, 5, 1, h, 0, 0, 0, time.UTC) }
	assert.Equal(t,
		"Good morning, Sam! I'm MindMate, your supportive companion. How are you feeling today?",
		GreetingText(day(11), "Sam"))
	assert.Contains(t, GreetingText(day(12), "Sam"), "Good afternoon, Sam!")
	assert.Contains(t, GreetingText(day(17), ""), "Good evening, friend!")
}

func TestStartSeedsGreetingOnce(t *testing.T) {
	ctx := context.Background()
	f := newTestSession(t, &scriptedResponder{reply: "hi"})

	require.NoError(t, f.session.Start(ctx))
	require.NoError(t, f.session.Start(ctx))

	msgs := f.session.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, model.SenderBot, msgs[0].Sender)
	assert.Equal(t, "welcome-1714555800000", msgs[0].ID)
	assert.Contains(t, msgs[0].Text, "Good morning, Sam!")
}

func TestSendRecordsReply(t *testing.T) {
	ctx := context.Background()
	r := &scriptedResponder{reply: "I'm here for you."}
	f := newTestSession(t, r)

	res, err := f.session.Send(ctx, "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", res.User.Text)
	require.NotNil(t, res.Reply)
	assert.Equal(t, "I'm here for you.", res.Reply.Text)
	assert.False(t, res.Crisis)

	msgs := f.session.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.SenderUser, msgs[0].Sender)
	assert.Equal(t, model.SenderBot, msgs[1].Sender)
	assert.False(t, f.session.Typing())
}

func TestSendRejectsEmpty(t *testing.T) {
	f := newTestSession(t, &scriptedResponder{})
	_, err := f.session.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, f.session.Messages())
}

func TestCrisisMessageSkipsReply(t *testing.T) {
	ctx := context.Background()
	r := &scriptedResponder{reply: "should not appear"}
	f := newTestSession(t, r)

	res, err := f.session.Send(ctx, "I want to end my life")
	require.NoError(t, err)
	assert.True(t, res.Crisis)
	assert.Nil(t, res.Reply)
	assert.True(t, f.session.Safety().Open())

	_, err = f.session.Send(ctx, "I feel hopeless")
	require.NoError(t, err)

	assert.Zero(t, r.calls.Load())
	for _, m := range f.session.Messages() {
		assert.Equal(t, model.SenderUser, m.Sender)
	}
	assert.Len(t, f.session.Messages(), 2)

	f.session.Safety().GoToResources()
	assert.Equal(t, []notify.View{notify.ViewResources}, f.recorder.Views())
}

func TestSendLearnsQuickReply(t *testing.T) {
	ctx := context.Background()
	f := newTestSession(t, &scriptedResponder{reply: "ok"})

	res, err := f.session.Send(ctx, "I feel overwhelmed today")
	require.NoError(t, err)
	require.NotNil(t, res.Learned)

	res, err = f.session.Send(ctx, "I feel overwhelmed today")
	require.NoError(t, err)
	assert.Nil(t, res.Learned)

	custom := f.session.QuickReplies().Custom()
	require.Len(t, custom, 1)
	assert.Equal(t, "I feel overwhelmed today", custom[0].Text)
}

func TestResponderFailureNotifies(t *testing.T) {
	ctx := context.Background()
	f := newTestSession(t, &scriptedResponder{err: errors.New("service unavailable")})

	_, err := f.session.Send(ctx, "hello there")
	assert.ErrorIs(t, err, ErrReplyFailed)

	msgs := f.session.Messages()
	require.Len(t, msgs, 1, "no bot message on failure")
	notices := f.recorder.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, notify.LevelError, notices[0].Level)
	assert.Equal(t, "Sorry, something went wrong. Please try again.", notices[0].Message)
	assert.False(t, f.session.Typing())
}

func TestSendWhileTypingIsRejected(t *testing.T) {
	ctx := context.Background()
	r := newBlockingResponder()
	f := newTestSession(t, r)

	done := make(chan error, 1)
	go func() {
		_, err := f.session.Send(ctx, "first message")
		done <- err
	}()
	<-r.started
	assert.True(t, f.session.Typing())

	_, err := f.session.Send(ctx, "second message")
	assert.ErrorIs(t, err, ErrBusy)

	close(r.release)
	require.NoError(t, <-done)
	assert.Len(t, f.session.Messages(), 2)
}

func TestCancelledReplyLeavesNoNotice(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := newBlockingResponder()
	f := newTestSession(t, r)

	done := make(chan error, 1)
	go func() {
		_, err := f.session.Send(ctx, "are you there?")
		done <- err
	}()
	<-r.started
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Empty(t, f.recorder.Notices())
	assert.Len(t, f.session.Messages(), 1)
}

func TestCancelledCannedReply(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	f := newTestSession(t, NewCannedResponder(time.Hour))

	_, err := f.session.Send(ctx, "hello there")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClearHistory(t *testing.T) {
	ctx := context.Background()
	f := newTestSession(t, &scriptedResponder{reply: "ok"})
	f.session.Start(ctx)
	f.session.Send(ctx, "hello there")

	greeting, err := f.session.ClearHistory(ctx)
	require.NoError(t, err)

	assert.Equal(t, []model.ChatMessage{greeting}, f.session.Messages())
	notices := f.recorder.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, "Chat History Cleared", notices[0].Title)
	assert.Equal(t, "Starting fresh with a new conversation.", notices[0].Message)
}

func TestDeleteMessage(t *testing.T) {
	ctx := context.Background()
	f := newTestSession(t, &scriptedResponder{reply: "ok"})
	res, _ := f.session.Send(ctx, "hello there")

	ok, err := f.session.DeleteMessage(ctx, res.User.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, f.session.Messages(), 1)
	assert.Equal(t, res.Reply.ID, f.session.Messages()[0].ID)
}
