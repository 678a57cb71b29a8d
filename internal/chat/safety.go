package chat

import (
	"sync"

	"github.com/rcliao/mindmate/internal/notify"
)

// SafetyState is the state of the safety prompt.
type SafetyState int

const (
	Normal SafetyState = iota
	SafetyPromptOpen
)

func (s SafetyState) String() string {
	if s == SafetyPromptOpen {
		return "safety_prompt_open"
	}
	return "normal"
}

// Crisis resources shown while the safety prompt is open.
const (
	CrisisHelpline = "988"
	CrisisTextLine = "Text HOME to 741741"
)

// SafetyEscalation holds the safety prompt open from a crisis-flagged
// message until the user dismisses it or goes to the resources view.
// There is no timeout.
type SafetyEscalation struct {
	mu    sync.Mutex
	state SafetyState
	nav   notify.Navigator
}

func NewSafetyEscalation(nav notify.Navigator) *SafetyEscalation {
	return &SafetyEscalation{nav: nav}
}

// Trigger opens the prompt. It reports false if the prompt was already
// open, so at most one prompt is shown.
func (s *SafetyEscalation) Trigger() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SafetyPromptOpen {
		return false
	}
	s.state = SafetyPromptOpen
	return true
}

// Dismiss closes the prompt and continues the chat.
func (s *SafetyEscalation) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Normal
}

// GoToResources closes the prompt and navigates to the resources view.
func (s *SafetyEscalation) GoToResources() {
	s.Dismiss()
	if s.nav != nil {
		s.nav.Navigate(notify.ViewResources)
	}
}

func (s *SafetyEscalation) State() SafetyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Open reports whether the prompt is showing.
func (s *SafetyEscalation) Open() bool {
	return s.State() == SafetyPromptOpen
}
