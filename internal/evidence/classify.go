package evidence

import "strings"

// Tier keyword sets, evaluated in order. High is checked before Moderate and
// the first matching tier wins; the order is part of the contract.
var (
	highKeywords     = []string{"severe", "evacuation", "fatalities"}
	moderateKeywords = []string{"warning", "heavy", "landslide"}
)

// Classify maps a generated summary to a severity tier using ordered keyword
// matching against the case-folded text. An empty or keyword-free summary
// yields the Low tier. This is a deliberately coarse rule engine so severity
// decisions stay auditable.
func Classify(summary string) Assessment {
	text := strings.ToLower(summary)
	switch {
	case containsAny(text, highKeywords):
		return Assessment{Level: SeverityHigh, Score: 0.9}
	case containsAny(text, moderateKeywords):
		return Assessment{Level: SeverityModerate, Score: 0.6}
	default:
		return Assessment{Level: SeverityLow, Score: 0.3}
	}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
