// Package notify provides the user-visible notice sink and the navigation
// sink that the chat and mood flows report to.
package notify

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Level is a notice severity.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is a transient user-visible message.
type Notice struct {
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notifier receives notices.
type Notifier interface {
	Notify(n Notice)
}

// View names a navigation target.
type View string

// ViewResources is the resource directory.
const ViewResources View = "resources"

// Navigator receives navigation requests.
type Navigator interface {
	Navigate(v View)
}

// LogNotifier records notices in the structured log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(notice Notice) {
	fields := []zap.Field{zap.String("title", notice.Title), zap.String("message", notice.Message)}
	if notice.Level == LevelError {
		n.logger.Warn("User notice", fields...)
		return
	}
	n.logger.Info("User notice", fields...)
}

// WriterNotifier prints notices as one line each, e.g. for a terminal.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if notice.Message == "" {
		fmt.Fprintf(n.w, "[%s] %s\n", notice.Level, notice.Title)
		return
	}
	fmt.Fprintf(n.w, "[%s] %s: %s\n", notice.Level, notice.Title, notice.Message)
}

// Recorder keeps every notice and navigation it receives. Interactive
// front ends drain it after each action.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
	views   []View
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *Recorder) Navigate(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

// Notices returns the recorded notices.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Views returns the recorded navigations.
func (r *Recorder) Views() []View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]View(nil), r.views...)
}

// Drain returns and forgets the recorded notices.
func (r *Recorder) Drain() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.notices
	r.notices = nil
	return out
}

// Multi fans a notice out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(n Notice) {
	for _, x := range m {
		x.Notify(n)
	}
}
