package chat

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/rcliao/mindmate/internal/model"
)

// Responder produces the bot's reply to the latest user message in history.
type Responder interface {
	Reply(ctx context.Context, history []model.ChatMessage) (string, error)
}

// DefaultDelay is the simulated think time of the canned responder.
const DefaultDelay = 800 * time.Millisecond

var cannedReplies = []string{
	"I'm here for you. Tell me more about what you're experiencing.",
	"That sounds really tough. How are you coping with these feelings?",
	"I understand this is difficult. Would you like to try some calming exercises?",
	"It's completely okay to feel this way. You're not alone in this.",
	"Thank you for sharing that with me. How can I best support you right now?",
	"Your feelings are valid. Have you tried any relaxation techniques?",
	"I'm glad you reached out. What would help you feel more supported?",
	"It takes courage to share these feelings. I'm here to listen.",
	"You're taking an important step by talking about this. How can I help?",
	"I hear you. Sometimes just expressing these thoughts can be helpful.",
}

// CannedReplies returns the fixed reply pool.
func CannedReplies() []string {
	return append([]string(nil), cannedReplies...)
}

// CannedResponder picks a fixed reply at random after a delay.
type CannedResponder struct {
	delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewCannedResponder(delay time.Duration) *CannedResponder {
	return &CannedResponder{
		delay: delay,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Reply waits out the delay and returns a random canned reply. A cancelled
// context ends the wait early with ctx.Err().
func (r *CannedResponder) Reply(ctx context.Context, _ []model.ChatMessage) (string, error) {
	timer := time.NewTimer(r.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return cannedReplies[r.rng.Intn(len(cannedReplies))], nil
}

// systemPrompt frames the model as a supportive listener.
const systemPrompt = `You are MindMate, a warm and supportive mental-wellness companion.
Listen, reflect feelings back, and suggest gentle self-care such as breathing
exercises. Keep replies to two or three sentences. You are not a therapist and
never give medical advice.`

// historyWindow is how many recent messages are sent as context.
const historyWindow = 20

// OpenAIOptions configures an OpenAIResponder.
type OpenAIOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

// OpenAIResponder asks a chat-completion model for the reply and falls back
// to the canned responder when the API fails.
type OpenAIResponder struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	fallback    Responder
	logger      *zap.Logger
}

func NewOpenAIResponder(opts OpenAIOptions, fallback Responder, logger *zap.Logger) *OpenAIResponder {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	name := opts.Model
	if name == "" {
		name = openai.GPT3Dot5Turbo
	}
	return &OpenAIResponder{
		client:      openai.NewClientWithConfig(cfg),
		model:       name,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		fallback:    fallback,
		logger:      logger,
	}
}

func (r *OpenAIResponder) Reply(ctx context.Context, history []model.ChatMessage) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Messages:    completionMessages(history),
		MaxTokens:   r.maxTokens,
		Temperature: float32(r.temperature),
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		r.logger.Error("Failed to get chat completion", zap.Error(err))
		return r.fallback.Reply(ctx, history)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		r.logger.Warn("Empty chat completion, using canned reply")
		return r.fallback.Reply(ctx, history)
	}
	return resp.Choices[0].Message.Content, nil
}

func completionMessages(history []model.ChatMessage) []openai.ChatCompletionMessage {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Sender == model.SenderBot {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Text})
	}
	return msgs
}

// Responder providers.
const (
	ProviderCanned = "canned"
	ProviderOpenAI = "openai"
)

// ResponderOptions selects and configures a responder.
type ResponderOptions struct {
	Provider string
	Delay    time.Duration
	OpenAI   OpenAIOptions
}

// ErrMissingAPIKey is returned when the openai provider has no key.
var ErrMissingAPIKey = errors.New("openai responder requires an API key")

// NewResponder builds the responder named by opts.Provider.
// "canned" or "" gives the canned responder.
func NewResponder(opts ResponderOptions, logger *zap.Logger) (Responder, error) {
	switch opts.Provider {
	case "", ProviderCanned:
		return NewCannedResponder(opts.Delay), nil
	case ProviderOpenAI:
		if opts.OpenAI.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		// The canned fallback answers without the simulated wait.
		return NewOpenAIResponder(opts.OpenAI, NewCannedResponder(0), logger), nil
	default:
		return nil, fmt.Errorf("unknown responder provider %q (valid: canned, openai)", opts.Provider)
	}
}
