package service

import "sort"

// IntentScore is the score a single intent label received
type IntentScore struct {
	Label string
	Score float64
}

// rankIntents sorts scores descending. The sort is stable so equal scores keep
// the label declaration order.
func rankIntents(scores []IntentScore) []IntentScore {
	ranked := make([]IntentScore, len(scores))
	copy(ranked, scores)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}
