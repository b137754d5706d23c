package engine

import (
	"fmt"

	"github.com/rcliao/coach-engine/internal/analyzer"
	"github.com/rcliao/coach-engine/internal/model"
)

// Context tags.
const (
	TagWorkout    = "workout"
	TagNutrition  = "nutrition"
	TagProgress   = "progress"
	TagMotivation = "motivation"
	TagGeneral    = "general"
)

// ContextTag maps a primary intent to the coarse tag that scopes learned
// preferences.
func ContextTag(intent string) string {
	switch intent {
	case analyzer.IntentGenerateWorkout, analyzer.IntentModifyWorkout,
		analyzer.IntentIncreaseDifficulty, analyzer.IntentDecreaseDifficulty,
		analyzer.IntentWorkoutAdvice:
		return TagWorkout
	case analyzer.IntentTrackFood, analyzer.IntentMealPlan,
		analyzer.IntentMacroInfo, analyzer.IntentNutritionAdvice:
		return TagNutrition
	case analyzer.IntentAnalyzeProgress:
		return TagProgress
	case analyzer.IntentMotivation:
		return TagMotivation
	default:
		return TagGeneral
	}
}

// Mood derives the recorded mood from a sentiment verdict.
func Mood(s model.SentimentResult) string {
	switch s.Label {
	case model.SentimentNegative:
		return model.MoodStruggling
	case model.SentimentPositive:
		if s.Intensity >= 0.7 {
			return model.MoodExcited
		}
		return model.MoodMotivated
	default:
		return model.MoodNeutral
	}
}

// EntitySuggestions returns templates for the first entity of each kind
// found, in extraction order.
func EntitySuggestions(entities []model.Entity) []string {
	var out []string
	seen := map[model.EntityKind]bool{}
	for _, en := range entities {
		if seen[en.Kind] {
			continue
		}
		seen[en.Kind] = true

		value := en.Value
		if value == "" {
			value = en.RawText
		}
		switch en.Kind {
		case model.KindNumber:
			out = append(out, "Track these numbers in your progress log")
		case model.KindExercise:
			out = append(out,
				fmt.Sprintf("Show proper form for %s", value),
				fmt.Sprintf("Find alternatives to %s", value))
		case model.KindFood:
			out = append(out,
				fmt.Sprintf("Log %s in your food diary", value),
				fmt.Sprintf("See nutrition facts for %s", value))
		case model.KindBodyPart:
			out = append(out, fmt.Sprintf("Target your %s with a focused workout", value))
		case model.KindTime:
			out = append(out, fmt.Sprintf("Schedule this for %s", value))
		}
	}
	return out
}

// SentimentSuggestions returns templates for the message's sentiment.
func SentimentSuggestions(s model.SentimentResult) []string {
	switch Mood(s) {
	case model.MoodStruggling:
		return []string{"Take an active recovery day", "Talk through what's holding you back"}
	case model.MoodExcited:
		return []string{"Set a new personal challenge"}
	case model.MoodMotivated:
		return []string{"Keep the momentum going"}
	default:
		return nil
	}
}

// UrgencySuggestions returns templates for an urgency tier.
func UrgencySuggestions(urgency string) []string {
	switch urgency {
	case model.UrgencyHigh:
		return []string{"Stop if you feel sharp pain and consult a professional"}
	case model.UrgencyMedium:
		return []string{"Start with a quick 10-minute session"}
	default:
		return nil
	}
}

// ComplexitySuggestions returns templates for a complexity tier.
func ComplexitySuggestions(complexity string) []string {
	switch complexity {
	case model.ComplexityComplex:
		return []string{"Break this into smaller steps", "Ask for a detailed plan"}
	case model.ComplexityModerate:
		return []string{"See a step-by-step guide"}
	default:
		return nil
	}
}
