// Package crisis screens raw utterances for self-harm indicators before any
// other processing happens. A positive match short-circuits the whole turn.
package crisis

import "strings"

// indicatorPhrases are matched case-insensitively as substrings. The list is
// deliberately short and unambiguous; broad words like "die" produced too many
// false positives on ordinary venting.
var indicatorPhrases = []string{
	"suicide",
	"kill myself",
	"end my life",
	"can't live",
	"want to die",
}

// SafetyMessage is the fixed reply for a crisis turn. Crisis turns never reach
// the classifier, session memory, composer, or the chat log.
const SafetyMessage = "I'm really concerned about you. Please reach out to someone you trust right now, " +
	"or contact the Kiran Mental Health Helpline: 1800-599-0019."

// Detect reports whether the text contains any self-harm indicator phrase.
// Stateless and pure.
func Detect(rawText string) bool {
	normalized := strings.ToLower(rawText)
	for _, phrase := range indicatorPhrases {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}
