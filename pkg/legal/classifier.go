package legal

import "strings"

// Issue category tags. A session is assigned exactly one, at intake.
const (
	CategoryHarassment       = "harassment"
	CategoryDomesticViolence = "domestic_violence"
	CategoryTheft            = "theft"
	CategoryFraud            = "fraud"
	CategoryCybercrime       = "cybercrime"
	CategoryGeneral          = "general"
)

// categoryPattern pairs a category with its trigger vocabulary. Order matters:
// the first category with a matching word wins.
type categoryPattern struct {
	category string
	words    []string
}

var patterns = []categoryPattern{
	{CategoryHarassment, []string{
		"harass", "stalk", "molest", "eve teasing", "eve-teasing",
		"inappropriate touch", "catcall", "lewd",
	}},
	{CategoryDomesticViolence, []string{
		"domestic violence", "husband beat", "dowry", "abusive husband",
		"abusive partner", "in-laws", "beaten at home", "marital abuse",
	}},
	{CategoryTheft, []string{
		"theft", "stole", "stolen", "robbery", "robbed", "burglary",
		"snatched", "pickpocket",
	}},
	{CategoryFraud, []string{
		"fraud", "scam", "cheated", "duped", "fake scheme", "ponzi",
		"embezzle",
	}},
	{CategoryCybercrime, []string{
		"hack", "cyber", "phishing", "otp", "online account",
		"identity theft", "social media account", "ransomware",
	}},
}

// Classify maps free text to an issue category. Pure and total: matching is a
// case-insensitive substring test, first match wins, and CategoryGeneral is
// returned when nothing matches.
func Classify(text string) string {
	lowered := strings.ToLower(text)
	for _, p := range patterns {
		for _, w := range p.words {
			if strings.Contains(lowered, w) {
				return p.category
			}
		}
	}
	return CategoryGeneral
}

// Categories lists every tag Classify can return, fallback included.
func Categories() []string {
	out := make([]string, 0, len(patterns)+1)
	for _, p := range patterns {
		out = append(out, p.category)
	}
	return append(out, CategoryGeneral)
}
