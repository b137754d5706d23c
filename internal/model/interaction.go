// Package model defines the core coaching engine data types.
package model

import "time"

// EntityKind is the type of token extracted from a message.
type EntityKind string

const (
	KindExercise EntityKind = "exercise"
	KindFood     EntityKind = "food"
	KindBodyPart EntityKind = "body_part"
	KindNumber   EntityKind = "number"
	KindTime     EntityKind = "time"
)

// Entity is a typed token extracted from free text.
type Entity struct {
	Kind       EntityKind `json:"kind" yaml:"kind"`
	Value      string     `json:"value" yaml:"value"`
	RawText    string     `json:"raw_text" yaml:"raw_text"`
	Confidence float64    `json:"confidence" yaml:"confidence"`
}

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// SentimentResult is the lexicon verdict for one message.
type SentimentResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Intensity  float64 `json:"intensity"`
}

// Urgency tiers.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// Complexity tiers.
const (
	ComplexitySimple   = "simple"
	ComplexityModerate = "moderate"
	ComplexityComplex  = "complex"
)

// IntentAnalysis is the structured interpretation of one message.
type IntentAnalysis struct {
	PrimaryIntent    string          `json:"primary_intent"`
	SecondaryIntents []string        `json:"secondary_intents"`
	Entities         []Entity        `json:"entities"`
	Sentiment        SentimentResult `json:"sentiment"`
	Urgency          string          `json:"urgency"`
	Complexity       string          `json:"complexity"`
	Confidence       float64         `json:"confidence"`
}

// Moods recorded on interactions.
const (
	MoodStruggling = "struggling"
	MoodNeutral    = "neutral"
	MoodMotivated  = "motivated"
	MoodExcited    = "excited"
)

// MoodScore maps a mood to its numeric value. Unknown moods score as neutral.
func MoodScore(mood string) float64 {
	switch mood {
	case MoodStruggling:
		return 0.2
	case MoodMotivated:
		return 0.7
	case MoodExcited:
		return 0.9
	default:
		return 0.5
	}
}

// Interaction is one completed conversational turn.
type Interaction struct {
	ID           string    `json:"id" yaml:"id"`
	SessionID    string    `json:"session_id" yaml:"session_id"`
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`
	UserMessage  string    `json:"user_message" yaml:"user_message"`
	AIResponse   string    `json:"ai_response" yaml:"ai_response"`
	ContextTag   string    `json:"context_tag" yaml:"context_tag"`
	Mood         string    `json:"mood" yaml:"mood"`
	Satisfaction float64   `json:"satisfaction" yaml:"satisfaction"`
	Entities     []Entity  `json:"entities,omitempty" yaml:"entities,omitempty"`
	Intent       string    `json:"intent" yaml:"intent"`
}
