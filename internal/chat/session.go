package chat

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/mindmate/internal/model"
	"github.com/rcliao/mindmate/internal/notify"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("still waiting for the previous reply")
	ErrReplyFailed  = errors.New("bot reply failed")
)

// Notice texts shown by the session.
const (
	replyErrorMessage = "Sorry, something went wrong. Please try again."
	clearedTitle      = "Chat History Cleared"
	clearedMessage    = "Starting fresh with a new conversation."
)

// ProfileReader supplies the name used in greetings. An empty name means
// no profile exists yet.
type ProfileReader interface {
	DisplayName(ctx context.Context) string
}

// Deps are the collaborators of a Session. Responder, Profile, Notifier,
// Logger and Now are optional.
type Deps struct {
	Transcript   *Transcript
	QuickReplies *QuickReplies
	Safety       *SafetyEscalation
	Responder    Responder
	Profile      ProfileReader
	Notifier     notify.Notifier
	Logger       *zap.Logger
	Now          func() time.Time
}

// Session runs the send pipeline: record the user message, learn a quick
// reply, then either open the safety prompt or fetch a bot reply.
type Session struct {
	transcript *Transcript
	replies    *QuickReplies
	safety     *SafetyEscalation
	responder  Responder
	profile    ProfileReader
	notifier   notify.Notifier
	logger     *zap.Logger
	now        func() time.Time
	ids        *idSource

	sending atomic.Bool
	typing  atomic.Bool
}

func NewSession(d Deps) *Session {
	s := &Session{
		transcript: d.Transcript,
		replies:    d.QuickReplies,
		safety:     d.Safety,
		responder:  d.Responder,
		profile:    d.Profile,
		notifier:   d.Notifier,
		logger:     d.Logger,
		now:        d.Now,
		ids:        newIDSource(),
	}
	if s.safety == nil {
		s.safety = NewSafetyEscalation(nil)
	}
	if s.responder == nil {
		s.responder = NewCannedResponder(DefaultDelay)
	}
	if s.notifier == nil {
		s.notifier = notify.Multi{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// SendResult describes what a send produced.
type SendResult struct {
	User    model.ChatMessage  `json:"user"`
	Reply   *model.ChatMessage `json:"reply,omitempty"`
	Learned *model.QuickReply  `json:"learned_quick_reply,omitempty"`
	Crisis  bool               `json:"crisis"`
}

// Start seeds an empty transcript with the greeting.
func (s *Session) Start(ctx context.Context) error {
	if s.transcript.Len() > 0 {
		return nil
	}
	return s.transcript.Append(ctx, s.Greeting(ctx))
}

// Greeting builds the time-of-day welcome message.
func (s *Session) Greeting(ctx context.Context) model.ChatMessage {
	now := s.now()
	name := ""
	if s.profile != nil {
		name = s.profile.DisplayName(ctx)
	}
	return model.ChatMessage{
		ID:        "welcome-" + strconv.FormatInt(now.UnixMilli(), 10),
		Text:      GreetingText(now, name),
		Sender:    model.SenderBot,
		Timestamp: now.UnixMilli(),
	}
}

// GreetingText addresses name, or "friend" when it is empty.
func GreetingText(now time.Time, name string) string {
	if name == "" {
		name = "friend"
	}
	greeting := "Good evening"
	switch h := now.Hour(); {
	case h < 12:
		greeting = "Good morning"
	case h < 17:
		greeting = "Good afternoon"
	}
	return fmt.Sprintf("%s, %s! I'm MindMate, your supportive companion. How are you feeling today?", greeting, name)
}

// Send records text as a user message and, unless it is crisis-flagged,
// waits for the bot reply. Only one send runs at a time.
//
// A responder failure sends an error notice and returns ErrReplyFailed with
// no bot message recorded. A cancelled ctx returns ctx.Err() without a notice.
func (s *Session) Send(ctx context.Context, text string) (SendResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return SendResult{}, ErrEmptyMessage
	}
	if !s.sending.CompareAndSwap(false, true) {
		return SendResult{}, ErrBusy
	}
	defer s.sending.Store(false)

	now := s.now()
	res := SendResult{User: model.ChatMessage{
		ID:        s.ids.next(now),
		Text:      text,
		Sender:    model.SenderUser,
		Timestamp: now.UnixMilli(),
	}}
	if err := s.transcript.Append(ctx, res.User); err != nil {
		return res, err
	}

	if s.replies != nil {
		learned, ok, err := s.replies.Learn(ctx, text)
		if err != nil {
			return res, err
		}
		if ok {
			res.Learned = &learned
		}
	}

	if IsCrisis(text) {
		res.Crisis = true
		if s.safety.Trigger() {
			s.logger.Warn("Crisis language detected, showing safety prompt", zap.String("message_id", res.User.ID))
		}
		return res, nil
	}

	s.typing.Store(true)
	reply, err := s.responder.Reply(ctx, s.transcript.Messages())
	s.typing.Store(false)
	if err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		s.logger.Error("Bot reply failed", zap.Error(err))
		s.notifier.Notify(notify.Notice{Level: notify.LevelError, Title: "Error", Message: replyErrorMessage})
		return res, fmt.Errorf("%w: %v", ErrReplyFailed, err)
	}

	now = s.now()
	bot := model.ChatMessage{
		ID:        s.ids.next(now),
		Text:      reply,
		Sender:    model.SenderBot,
		Timestamp: now.UnixMilli(),
	}
	if err := s.transcript.Append(ctx, bot); err != nil {
		return res, err
	}
	res.Reply = &bot
	return res, nil
}

// Typing reports whether a bot reply is in flight.
func (s *Session) Typing() bool {
	return s.typing.Load()
}

// ClearHistory empties the transcript and seeds a fresh greeting.
func (s *Session) ClearHistory(ctx context.Context) (model.ChatMessage, error) {
	if err := s.transcript.Clear(ctx); err != nil {
		return model.ChatMessage{}, err
	}
	greeting := s.Greeting(ctx)
	if err := s.transcript.Append(ctx, greeting); err != nil {
		return model.ChatMessage{}, err
	}
	s.notifier.Notify(notify.Notice{Level: notify.LevelInfo, Title: clearedTitle, Message: clearedMessage})
	return greeting, nil
}

// DeleteMessage removes one message from the transcript.
func (s *Session) DeleteMessage(ctx context.Context, id string) (bool, error) {
	return s.transcript.Delete(ctx, id)
}

func (s *Session) Messages() []model.ChatMessage {
	return s.transcript.Messages()
}

func (s *Session) Safety() *SafetyEscalation {
	return s.safety
}

func (s *Session) QuickReplies() *QuickReplies {
	return s.replies
}
