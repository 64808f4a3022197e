package service

import (
	"regexp"
	"strings"

	"nlu/internal/model"
)

const (
	// matchConfidence is the score a label gets when any of its patterns hits
	matchConfidence = 0.85
	// fallbackConfidence is assigned to faq_generic when no label matches
	fallbackConfidence = 0.5
	maxAlternatives    = 2
)

// intentRule maps one label to its ordered patterns
type intentRule struct {
	label    string
	patterns []*regexp.Regexp
}

// intentTable is evaluated in declaration order; that order is also the tie-break
var intentTable = []struct {
	label    string
	patterns []string
}{
	{model.IntentQuoteHome, []string{
		`(price|cost|quote|how much).*clean`,
		`clean.*apartment|house|home`,
		`(cleaning|clean).*price`,
	}},
	{model.IntentBookingNew, []string{
		`book.*clean`,
		`schedule.*clean`,
		`(tomorrow|next week|monday).*clean`,
	}},
	{model.IntentBookingStatus, []string{
		`where.*cleaner`,
		`status.*booking`,
		`when.*cleaner.*arrive`,
	}},
	{model.IntentFAQGeneric, []string{
		`when.*open`,
		`business hours`,
		`what.*include`,
		`how.*work`,
	}},
	{model.IntentEscalateHuman, []string{
		`(talk|speak).*human|person|agent`,
		`customer service`,
		`representative`,
	}},
}

// IntentClassifier maps an utterance to one of the fixed intent labels.
// It is safe for concurrent use.
type IntentClassifier struct {
	rules []intentRule
}

// NewIntentClassifier compiles the intent pattern table
func NewIntentClassifier() *IntentClassifier {
	rules := make([]intentRule, 0, len(intentTable))
	for _, entry := range intentTable {
		rule := intentRule{label: entry.label}
		for _, p := range entry.patterns {
			rule.patterns = append(rule.patterns, regexp.MustCompile(p))
		}
		rules = append(rules, rule)
	}
	return &IntentClassifier{rules: rules}
}

// Classify returns the best matching intent and up to two alternatives.
// It never fails: when nothing matches the result is faq_generic at 0.5.
func (c *IntentClassifier) Classify(utterance string) model.IntentResult {
	return ResultFromScores(c.Scores(utterance))
}

// ResultFromScores ranks label scores into the primary intent and its alternatives
func ResultFromScores(scores []IntentScore) model.IntentResult {
	return buildIntentResult(rankIntents(scores))
}

// Scores returns the score of every label in declaration order, after the
// fallback rule has been applied
func (c *IntentClassifier) Scores(utterance string) []IntentScore {
	text := strings.ToLower(utterance)

	scores := make([]IntentScore, len(c.rules))
	matched := false
	for i, rule := range c.rules {
		scores[i] = IntentScore{Label: rule.label}
		for _, re := range rule.patterns {
			if re.MatchString(text) {
				scores[i].Score = matchConfidence
				matched = true
				break
			}
		}
	}

	if !matched {
		for i := range scores {
			if scores[i].Label == model.IntentFAQGeneric {
				scores[i].Score = fallbackConfidence
			}
		}
	}

	return scores
}

// ScoreVector flattens scores for storage, keeping declaration order
func ScoreVector(scores []IntentScore) []float32 {
	vec := make([]float32, len(scores))
	for i, s := range scores {
		vec[i] = float32(s.Score)
	}
	return vec
}

func buildIntentResult(ranked []IntentScore) model.IntentResult {
	result := model.IntentResult{
		Name:         ranked[0].Label,
		Confidence:   ranked[0].Score,
		Alternatives: []model.Alternative{},
	}

	for _, s := range ranked[1:] {
		if len(result.Alternatives) == maxAlternatives {
			break
		}
		if s.Score > 0 {
			result.Alternatives = append(result.Alternatives, model.Alternative{
				Name:       s.Label,
				Confidence: s.Score,
			})
		}
	}

	return result
}
