package matcher

import (
	"asset-selector-be/internal/entity"
	"asset-selector-be/pkg/utils"
)

// ResolveSentiment picks the effective sentiment: a valid hint wins, otherwise
// the title words vote. Ties and titles without votes resolve to neutral.
func (m *Matcher) ResolveSentiment(title, hint string) entity.Sentiment {
	if s, ok := entity.ParseSentiment(hint); ok {
		return s
	}
	return m.ClassifyTitle(title)
}

func (m *Matcher) ClassifyTitle(title string) entity.Sentiment {
	votes := make(map[entity.Sentiment]int)
	for _, w := range utils.Words(title) {
		for _, s := range m.tables.sentimentIndex[w] {
			votes[s]++
		}
	}

	best := entity.SentimentNeutral
	bestVotes := 0
	tie := false
	for _, s := range entity.AllSentiments() {
		switch v := votes[s]; {
		case v > bestVotes:
			best, bestVotes, tie = s, v, false
		case v == bestVotes && v > 0:
			tie = true
		}
	}
	if bestVotes == 0 || tie {
		return entity.SentimentNeutral
	}
	return best
}
