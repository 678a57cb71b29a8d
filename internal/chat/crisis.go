package chat

import "strings"

// crisisKeywords are matched as lowercase substrings.
var crisisKeywords = []string{
	"suicide", "kill myself", "end my life", "self-harm", "hurt myself",
	"hopeless", "worthless", "give up", "can't go on", "want to die",
	"suicidal", "self harm", "ending it", "not worth living",
}

// IsCrisis reports whether message contains any crisis-indicating phrase,
// ignoring case.
func IsCrisis(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range crisisKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// CrisisKeywords returns a copy of the phrase list.
func CrisisKeywords() []string {
	return append([]string(nil), crisisKeywords...)
}
