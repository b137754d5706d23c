// Package analyzer implements rule-based entity extraction, sentiment scoring
// and intent classification for coaching messages.
package analyzer

import (
	"strings"

	"github.com/rcliao/coach-engine/internal/model"
)

// Extract returns the entities found in text, in kind order number, exercise,
// food, body_part, time. Duplicate hits from overlapping variants are kept.
func Extract(text string) []model.Entity {
	lower := strings.ToLower(text)
	entities := []model.Entity{}

	for _, m := range numberPattern.FindAllString(lower, -1) {
		entities = append(entities, model.Entity{
			Kind:       model.KindNumber,
			Value:      m,
			RawText:    m,
			Confidence: NumberConfidence,
		})
	}
	for _, d := range []*Dictionary{exerciseDict, foodDict, bodyPartDict, timeDict} {
		entities = append(entities, d.Match(lower)...)
	}
	return entities
}

// ValuesOf returns the distinct values of entities of one kind, first-seen order.
func ValuesOf(entities []model.Entity, kind model.EntityKind) []string {
	var out []string
	seen := map[string]bool{}
	for _, e := range entities {
		if e.Kind != kind || seen[e.Value] {
			continue
		}
		seen[e.Value] = true
		out = append(out, e.Value)
	}
	return out
}

// Sentiment scores text against the positive, negative and neutral lexicons.
func Sentiment(text string) model.SentimentResult {
	var pos, neg, neu int
	strong := map[string]bool{}
	for _, tok := range Tokens(text) {
		switch {
		case positiveWords[tok]:
			pos++
		case negativeWords[tok]:
			neg++
		case neutralWords[tok]:
			neu++
		}
		if strongWords[tok] {
			strong[tok] = true
		}
	}

	total := pos + neg + neu
	if total == 0 {
		return model.SentimentResult{Label: model.SentimentNeutral, Confidence: 0.5, Intensity: 0.5}
	}

	label, best := model.SentimentPositive, float64(pos)/float64(total)
	if r := float64(neg) / float64(total); r > best {
		label, best = model.SentimentNegative, r
	}
	if r := float64(neu) / float64(total); r > best {
		label, best = model.SentimentNeutral, r
	}

	intensity := 0.5 + 0.1*float64(len(strong))
	if intensity > 1.0 {
		intensity = 1.0
	}
	return model.SentimentResult{Label: label, Confidence: best, Intensity: intensity}
}
