package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/rcliao/coach-engine/internal/analyzer"
	"github.com/rcliao/coach-engine/internal/model"
)

// Local drafts responses from fixed per-intent templates. It never fails.
type Local struct{}

// NewLocal returns a Local provider.
func NewLocal() *Local { return &Local{} }

var drafts = map[string]string{
	analyzer.IntentGenerateWorkout: "Here's a balanced session. Warm up for 5 minutes. " +
		"Then do 3 sets of 10 squats, 3 sets of 10 push-ups and 3 sets of 12 rows. " +
		"Finish with a 5 minute stretch.",
	analyzer.IntentModifyWorkout: "We can swap movements to fit your needs. " +
		"Keep the same muscle group and pick an exercise you can do with good form.",
	analyzer.IntentIncreaseDifficulty: "Let's raise the challenge. " +
		"Add one set or a little more weight, and slow the lowering phase to three seconds.",
	analyzer.IntentDecreaseDifficulty: "Let's make it more manageable. " +
		"Drop one set, reduce the load, and take longer rests between sets.",
	analyzer.IntentWorkoutAdvice: "Most people do well with 3 to 4 sets of 8 to 12 reps per exercise. " +
		"Rest 60 to 90 seconds between sets and train each muscle group twice a week.",
	analyzer.IntentTrackFood: "Got it, I've noted that meal. " +
		"Keep logging so we can spot patterns in your nutrition.",
	analyzer.IntentMealPlan: "Build each meal around a lean protein, a vegetable and a whole-grain carb. " +
		"Add a healthy fat like avocado or nuts.",
	analyzer.IntentMacroInfo: "A common starting point is about 1.6 grams of protein per kilogram of body weight. " +
		"Fill the rest of your calories with carbohydrates and fats to match your energy needs.",
	analyzer.IntentNutritionAdvice: "Focus on whole foods, plenty of vegetables and enough protein. " +
		"Drink water throughout the day.",
	analyzer.IntentAnalyzeProgress: "Progress shows up in more than the scale. " +
		"Compare your strength, energy and consistency over the last few weeks.",
	analyzer.IntentMotivation: "Every workout counts, even the short ones. " +
		"Show up today and your future self will thank you.",
	analyzer.IntentAnswerQuestion: "Good question. " +
		"The short answer is that consistency and good form matter more than any single detail.",
	analyzer.IntentGeneralAdvice: "I'm here to help with workouts, nutrition and motivation. " +
		"Tell me what you'd like to work on today.",
}

var actions = map[string]string{
	analyzer.IntentGenerateWorkout:    "generate_workout",
	analyzer.IntentModifyWorkout:      "modify_workout",
	analyzer.IntentIncreaseDifficulty: "modify_workout",
	analyzer.IntentDecreaseDifficulty: "modify_workout",
	analyzer.IntentTrackFood:          "log_food",
	analyzer.IntentMealPlan:           "show_meal_plan",
	analyzer.IntentAnalyzeProgress:    "show_progress",
}

type goalHint struct {
	keyword    string
	suggestion string
}

// goalHints map profile goal keywords to suggestions.
var goalHints = []goalHint{
	{"weight", "Add 20 minutes of brisk cardio after strength work"},
	{"muscle", "Prioritize protein at every meal"},
	{"strength", "Focus on compound lifts like squats and deadlifts"},
	{"stronger", "Focus on compound lifts like squats and deadlifts"},
	{"endurance", "Add one longer, easy-paced session each week"},
	{"5k", "Add one longer, easy-paced session each week"},
	{"flexib", "Finish each workout with 10 minutes of stretching"},
	{"tone", "Pair strength circuits with short cardio intervals"},
}

func (l *Local) Generate(ctx context.Context, req Request) (*Response, error) {
	analysis := analyzer.Analyze(req.Message, 0)
	intent := analysis.PrimaryIntent

	resp := &Response{
		Content:     drafts[intent],
		Suggestions: goalSuggestions(req.Profile.Goals),
		Action:      actions[intent],
	}
	if resp.Content == "" {
		resp.Content = drafts[analyzer.IntentGeneralAdvice]
	}

	switch intent {
	case analyzer.IntentGenerateWorkout:
		resp.Data = map[string]interface{}{
			"exercises": []string{"squat", "push-up", "row"},
			"level":     levelOr(req.Profile.FitnessLevel, "beginner"),
		}
	case analyzer.IntentTrackFood:
		resp.Data = map[string]interface{}{
			"foods": analyzer.ValuesOf(analysis.Entities, model.KindFood),
		}
	case analyzer.IntentAnalyzeProgress:
		resp.Data = map[string]interface{}{
			"workouts": len(req.WorkoutHistory),
			"meals":    len(req.NutritionLog),
		}
		if n := len(req.WorkoutHistory); n > 0 {
			resp.Content = fmt.Sprintf("You've logged %d workouts so far. %s", n, resp.Content)
		}
	}

	if req.Profile.Name != "" && intent == analyzer.IntentMotivation {
		resp.Content = fmt.Sprintf("%s, %s", req.Profile.Name, lowerFirst(resp.Content))
	}

	return resp, nil
}

func goalSuggestions(goals []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, g := range goals {
		lower := strings.ToLower(g)
		for _, h := range goalHints {
			if strings.Contains(lower, h.keyword) && !seen[h.suggestion] {
				seen[h.suggestion] = true
				out = append(out, h.suggestion)
			}
		}
	}
	return out
}

func levelOr(level, fallback string) string {
	if level == "" {
		return fallback
	}
	return level
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
