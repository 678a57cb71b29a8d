// Package wellness holds the self-care extras: motivational quotes and the
// guided 4-7-8 breathing exercise.
package wellness

import "math/rand"

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

var quotes = []Quote{
	{Text: "You are stronger than you think and more resilient than you know.", Author: "Unknown"},
	{Text: "Healing is not about moving on or 'getting over it,' it's about learning to make peace with our pain.", Author: "Unknown"},
	{Text: "Your mental health is a priority. Your happiness is essential. Your self-care is a necessity.", Author: "Unknown"},
	{Text: "Progress, not perfection. Every small step forward matters.", Author: "Unknown"},
	{Text: "It's okay to not be okay. What matters is that you're here and you're trying.", Author: "Unknown"},
	{Text: "You have been assigned this mountain to show others it can be moved.", Author: "Mel Robbins"},
	{Text: "The greatest revolution of our generation is the discovery that human beings can alter their lives by altering their attitudes.", Author: "William James"},
	{Text: "You don't have to control your thoughts. You just have to stop letting them control you.", Author: "Dan Millman"},
}

func Quotes() []Quote {
	return append([]Quote(nil), quotes...)
}

// RandomQuote picks a quote other than prev. A zero prev allows any quote.
func RandomQuote(rng *rand.Rand, prev Quote) Quote {
	for {
		q := quotes[rng.Intn(len(quotes))]
		if q != prev {
			return q
		}
	}
}
