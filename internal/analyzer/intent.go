package analyzer

import (
	"regexp"
	"strings"

	"github.com/rcliao/coach-engine/internal/model"
)

// Primary intents.
const (
	IntentGenerateWorkout    = "generate_workout"
	IntentModifyWorkout      = "modify_workout"
	IntentIncreaseDifficulty = "increase_difficulty"
	IntentDecreaseDifficulty = "decrease_difficulty"
	IntentWorkoutAdvice      = "workout_advice"
	IntentTrackFood          = "track_food"
	IntentMealPlan           = "meal_plan"
	IntentMacroInfo          = "macro_info"
	IntentNutritionAdvice    = "nutrition_advice"
	IntentAnalyzeProgress    = "analyze_progress"
	IntentMotivation         = "motivation"
	IntentAnswerQuestion     = "answer_question"
	IntentGeneralAdvice      = "general_advice"
)

// Secondary intents.
const (
	SecondaryMotivation  = "motivation"
	SecondaryExplanation = "explanation"
	SecondaryScheduling  = "scheduling"
	SecondaryGoalSetting = "goal_setting"
)

// Rule maps a keyword pattern to an intent. A matching rule with sub-rules
// resolves to the first matching sub-rule, or to its own Intent.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Intent  string
	Sub     []Rule
}

// DefaultRules returns the primary intent cascade. Order is priority: the
// first matching group wins.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "workout",
			Pattern: keywords("workout", "workouts", "exercise", "exercises", "exercising",
				"training", "train", "gym", "routine", "sets", "reps", "lift", "lifting",
				"cardio", "strength"),
			Intent: IntentWorkoutAdvice,
			Sub: []Rule{
				{Name: "generate", Pattern: keywords("create", "generate", "new workout", "give me", "make me", "build me", "design", "suggest"), Intent: IntentGenerateWorkout},
				{Name: "modify", Pattern: keywords("change", "modify", "adjust", "replace", "swap", "switch", "substitute"), Intent: IntentModifyWorkout},
				{Name: "harder", Pattern: keywords("harder", "more intense", "more challenging", "challenge me", "level up", "increase"), Intent: IntentIncreaseDifficulty},
				{Name: "easier", Pattern: keywords("easier", "lighter", "less intense", "too hard", "too difficult", "beginner", "decrease", "scale down"), Intent: IntentDecreaseDifficulty},
			},
		},
		{
			Name: "nutrition",
			Pattern: keywords("food", "foods", "eat", "ate", "eating", "eaten", "meal", "meals",
				"nutrition", "diet", "calories", "calorie", "protein", "carbs", "macro", "macros",
				"breakfast", "lunch", "dinner", "snack", "snacks", "hungry"),
			Intent: IntentNutritionAdvice,
			Sub: []Rule{
				{Name: "track", Pattern: keywords("track", "log", "logged", "ate", "had", "eaten", "record"), Intent: IntentTrackFood},
				{Name: "plan", Pattern: keywords("meal plan", "meal prep", "plan", "menu", "prepare"), Intent: IntentMealPlan},
				{Name: "macros", Pattern: keywords("macro", "macros", "protein", "carbs", "fat", "fats", "calories", "calorie"), Intent: IntentMacroInfo},
			},
		},
		{
			Name:    "progress",
			Pattern: keywords("progress", "results", "improvement", "improved", "stats", "statistics", "how am i doing", "plateau", "milestone", "gains"),
			Intent:  IntentAnalyzeProgress,
		},
		{
			Name:    "motivation",
			Pattern: keywords("motivation", "motivated", "motivate", "unmotivated", "inspire", "inspiration", "encourage", "encouragement", "give up", "lazy"),
			Intent:  IntentMotivation,
		},
		{
			Name:    "question",
			Pattern: regexp.MustCompile(`\?|\b(?:what|how|why)\b`),
			Intent:  IntentAnswerQuestion,
		},
	}
}

var secondaryRules = []Rule{
	{Pattern: regexp.MustCompile(`\b(?:motivat\w*|encourag\w*|inspir\w*|push me)\b`), Intent: SecondaryMotivation},
	{Pattern: keywords("explain", "why", "how does", "understand", "difference"), Intent: SecondaryExplanation},
	{Pattern: keywords("schedule", "when", "tomorrow", "next week", "calendar", "remind"), Intent: SecondaryScheduling},
	{Pattern: keywords("goal", "goals", "target", "aim", "achieve", "want to"), Intent: SecondaryGoalSetting},
}

var (
	highUrgency       = keywords("urgent", "emergency", "immediately", "asap", "injured", "injury", "severe", "sharp pain", "can't move", "dizzy", "fainted")
	mediumUrgency     = keywords("soon", "quickly", "pain", "hurts", "sore", "today", "tonight", "need", "help")
	complexityTrigger = keywords("plan", "program", "schedule", "periodization", "progressive overload", "compare", "optimize", "balance", "strategy", "detailed", "comprehensive", "explain", "why", "combine", "transition")
)

// confidenceKeywords only exist for three intents; all others get no keyword bonus.
var confidenceKeywords = map[string]*regexp.Regexp{
	IntentGenerateWorkout: keywords("create", "generate", "workout", "routine", "plan"),
	IntentTrackFood:       keywords("ate", "eaten", "log", "logged", "track", "had"),
	IntentAnalyzeProgress: keywords("progress", "results", "improvement", "stats"),
}

// Classifier resolves intents from an ordered rule list.
type Classifier struct {
	rules []Rule
}

// NewClassifier returns a classifier over rules, or DefaultRules when none are given.
func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

var defaultClassifier = NewClassifier()

// Analyze extracts entities and sentiment and classifies text with the default rules.
func Analyze(text string, historyLen int) model.IntentAnalysis {
	return defaultClassifier.Classify(text, Extract(text), historyLen)
}

// Classify builds the full analysis for text. historyLen is the number of
// prior interactions in the session.
func (c *Classifier) Classify(text string, entities []model.Entity, historyLen int) model.IntentAnalysis {
	lower := strings.ToLower(text)
	if entities == nil {
		entities = []model.Entity{}
	}
	sentiment := Sentiment(text)
	primary := c.Primary(lower)

	return model.IntentAnalysis{
		PrimaryIntent:    primary,
		SecondaryIntents: Secondary(lower),
		Entities:         entities,
		Sentiment:        sentiment,
		Urgency:          Urgency(lower, sentiment),
		Complexity:       Complexity(lower, len(entities), historyLen),
		Confidence:       Confidence(lower, primary, len(entities)),
	}
}

// Primary walks the rule cascade over lower-cased text.
func (c *Classifier) Primary(lower string) string {
	for _, r := range c.rules {
		if !r.Pattern.MatchString(lower) {
			continue
		}
		for _, sub := range r.Sub {
			if sub.Pattern.MatchString(lower) {
				return sub.Intent
			}
		}
		return r.Intent
	}
	return IntentGeneralAdvice
}

// Secondary returns every secondary intent whose keywords appear.
func Secondary(lower string) []string {
	out := []string{}
	for _, r := range secondaryRules {
		if r.Pattern.MatchString(lower) {
			out = append(out, r.Intent)
		}
	}
	return out
}

// Urgency scores 3 per high word, 2 per medium word, 1 for negative sentiment.
func Urgency(lower string, sentiment model.SentimentResult) string {
	score := 3*len(highUrgency.FindAllString(lower, -1)) + 2*len(mediumUrgency.FindAllString(lower, -1))
	if sentiment.Label == model.SentimentNegative {
		score++
	}
	switch {
	case score >= 3:
		return model.UrgencyHigh
	case score >= 1:
		return model.UrgencyMedium
	default:
		return model.UrgencyLow
	}
}

// Complexity scores trigger words, entity count, question marks and history depth.
func Complexity(lower string, entityCount, historyLen int) string {
	score := float64(len(complexityTrigger.FindAllString(lower, -1))) + 0.1*float64(entityCount)
	if strings.Contains(lower, "?") {
		score += 0.3
	}
	if historyLen > 5 {
		score += 0.2
	}
	switch {
	case score >= 1.5:
		return model.ComplexityComplex
	case score >= 0.5:
		return model.ComplexityModerate
	default:
		return model.ComplexitySimple
	}
}

// Confidence is 0.5 plus 0.1 per entity plus 0.15 per intent keyword hit, capped at 1.
func Confidence(lower, intent string, entityCount int) float64 {
	c := 0.5 + 0.1*float64(entityCount)
	if kw, ok := confidenceKeywords[intent]; ok {
		c += 0.15 * float64(len(kw.FindAllString(lower, -1)))
	}
	if c > 1.0 {
		c = 1.0
	}
	return c
}
