package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewWriterNotifier(&buf)
	n.Notify(Notice{Level: LevelInfo, Title: "Chat History Cleared", Message: "Starting fresh with a new conversation."})
	n.Notify(Notice{Level: LevelError, Title: "No mood data"})

	assert.Equal(t,
		"[info] Chat History Cleared: Starting fresh with a new conversation.\n[error] No mood data\n",
		buf.String())
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	n.Notify(Notice{Level: LevelError, Title: "Error", Message: "boom"})
	n.Notify(Notice{Level: LevelInfo, Title: "Saved"})

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zap.WarnLevel, entries[0].Level)
		assert.Equal(t, "boom", entries[0].ContextMap()["message"])
		assert.Equal(t, zap.InfoLevel, entries[1].Level)
	}
}

func TestRecorderAndMulti(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	Multi{a, b}.Notify(Notice{Title: "hi"})
	a.Navigate(ViewResources)

	assert.Len(t, b.Notices(), 1)
	assert.Equal(t, []View{ViewResources}, a.Views())
	assert.Len(t, a.Drain(), 1)
	assert.Empty(t, a.Notices())
}
