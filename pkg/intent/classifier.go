package intent

import "strings"

// Match is the outcome of a classification. Pattern is the index of the
// matching pattern within the intent's rule, or -1 for the fallback.
type Match struct {
	Intent  Intent
	Pattern int
}

// Matched reports whether a rule fired.
func (m Match) Matched() bool {
	return m.Pattern >= 0
}

// Classifier maps text to an Intent. It holds no mutable state and is safe
// to share.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the first intent whose patterns match the normalized
// text, or GeneralInfo.
func (c *Classifier) Classify(text string) Intent {
	return c.Explain(text).Intent
}

// Explain is Classify plus the index of the pattern that fired.
func (c *Classifier) Explain(text string) Match {
	normalized := Normalize(text)
	if normalized == "" {
		return Match{Intent: GeneralInfo, Pattern: -1}
	}

	for _, r := range rules {
		for i, p := range r.patterns {
			if p.MatchString(normalized) {
				return Match{Intent: r.intent, Pattern: i}
			}
		}
	}

	return Match{Intent: GeneralInfo, Pattern: -1}
}

// Intents returns the labels in the order rules are evaluated. GeneralInfo
// is not included because it has no rule.
func (c *Classifier) Intents() []Intent {
	out := make([]Intent, len(rules))
	for i, r := range rules {
		out[i] = r.intent
	}
	return out
}

// Patterns returns the source of the patterns for i, in evaluation order.
func (c *Classifier) Patterns(i Intent) []string {
	for _, r := range rules {
		if r.intent != i {
			continue
		}
		out := make([]string, len(r.patterns))
		for j, p := range r.patterns {
			out[j] = p.String()
		}
		return out
	}
	return nil
}

// Normalize lowercases and trims text the way the classifier sees it.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
