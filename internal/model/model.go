// Package model defines the data types MindMate persists.
//
// JSON field names match the browser app's local storage layout so exported
// files and stored blobs stay interchangeable.
package model

import "time"

// DateLayout is the calendar-day format used by MoodEntry.Date.
const DateLayout = "2006-01-02"

// MoodEntry is a single mood check-in.
type MoodEntry struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Value     int    `json:"value"`
	Emoji     string `json:"emoji"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

// Time returns the entry's creation instant.
func (e MoodEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// MinMoodValue and MaxMoodValue bound MoodEntry.Value.
const (
	MinMoodValue = 1
	MaxMoodValue = 10
)

// ValidMoodValue reports whether v is within the mood scale.
func ValidMoodValue(v int) bool {
	return v >= MinMoodValue && v <= MaxMoodValue
}

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is one entry of the chat transcript.
type ChatMessage struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    Sender `json:"sender"`
	Timestamp int64  `json:"timestamp"`
}

// QuickReply is a suggested message shown as a chip in the chat input.
type QuickReply struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Theme is the accent color preference.
type Theme string

const (
	ThemeTeal   Theme = "teal"
	ThemeBlue   Theme = "blue"
	ThemePurple Theme = "purple"
	ThemeGreen  Theme = "green"
)

// ValidThemes are the allowed themes.
var ValidThemes = map[Theme]bool{
	ThemeTeal:   true,
	ThemeBlue:   true,
	ThemePurple: true,
	ThemeGreen:  true,
}

// Preferences are the user's app settings.
type Preferences struct {
	Notifications bool   `json:"notifications"`
	DarkMode      bool   `json:"darkMode"`
	ReminderTime  string `json:"reminderTime"` // HH:MM
	Theme         Theme  `json:"theme"`
}

// UserProfile is the per-device profile created at onboarding.
type UserProfile struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	JoinedDate  string      `json:"joinedDate"`
	Preferences Preferences `json:"preferences"`
}

// User is a registered account.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// AuthState is the persisted session.
type AuthState struct {
	IsAuthenticated bool  `json:"isAuthenticated"`
	User            *User `json:"user"`
}

// Resource is an entry of the curated support directory.
type Resource struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Contact     string   `json:"contact"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	Icon        string   `json:"icon"`
}
