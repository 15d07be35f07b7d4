package dialog

import "strings"

// DetailQuestions is the fixed clarifying-question sequence. The first
// question is appended to the intake acknowledgment; the rest are echoed
// verbatim as each answer comes in. Adding a question here is all it takes
// to extend the flow.
var DetailQuestions = []string{
	"Could you walk me through exactly what happened, including when and where the incident took place?",
	"Do you know who was responsible, and what is your relationship to them?",
	"Were there any witnesses, or do you have evidence such as messages, photos or recordings?",
	"Have you already reported this to the police or any other authority?",
}

// Fixed reply fragments used by non-generating branches.
const (
	CaseHistoryOffer = "Would you like to see a few examples of similar cases and how they were resolved? (yes/no)"

	ContinueReply = "Alright. We can continue discussing your situation — feel free to share more details or ask any other legal question."

	DegradedReply = "The assistance service is temporarily unavailable. Please try sending your message again in a moment."
)

var affirmativeTokens = []string{"yes", "yeah", "sure"}

// IsAffirmative reports whether the message contains a yes-indicating word.
// Deliberately naive: a plain case-insensitive substring test with no
// negation handling, so "no, yes I do" counts as affirmative.
func IsAffirmative(message string) bool {
	lowered := strings.ToLower(message)
	for _, tok := range affirmativeTokens {
		if strings.Contains(lowered, tok) {
			return true
		}
	}
	return false
}
