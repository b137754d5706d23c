package analyzer

import (
	"regexp"
	"strings"

	"github.com/rcliao/coach-engine/internal/model"
)

// Per-kind confidence constants. These are fixed by the dictionary design.
const (
	NumberConfidence   = 0.9
	ExerciseConfidence = 0.8
	FoodConfidence     = 0.8
	BodyPartConfidence = 0.8
	TimeConfidence     = 0.9
)

// dictEntry maps one canonical value to its surface variants (regex fragments).
// An empty value means the matched text itself is the value.
type dictEntry struct {
	value    string
	variants []string
}

type variant struct {
	value   string
	pattern *regexp.Regexp
}

// Dictionary is a compiled phrase list for one entity kind.
type Dictionary struct {
	Kind       model.EntityKind
	Confidence float64
	variants   []variant
}

func newDictionary(kind model.EntityKind, confidence float64, entries []dictEntry) *Dictionary {
	d := &Dictionary{Kind: kind, Confidence: confidence}
	for _, e := range entries {
		for _, v := range e.variants {
			d.variants = append(d.variants, variant{
				value:   e.value,
				pattern: regexp.MustCompile(`\b` + v + `\b`),
			})
		}
	}
	return d
}

// Match returns one entity per variant hit in lower-cased text. A phrase
// matching several variants yields several entities.
func (d *Dictionary) Match(lower string) []model.Entity {
	var out []model.Entity
	for _, v := range d.variants {
		for _, m := range v.pattern.FindAllString(lower, -1) {
			value := v.value
			if value == "" {
				value = m
			}
			out = append(out, model.Entity{
				Kind:       d.Kind,
				Value:      value,
				RawText:    m,
				Confidence: d.Confidence,
			})
		}
	}
	return out
}

// numberPattern also matches digits glued to units or letters (100kg, 5k, 3x10).
var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

var exerciseDict = newDictionary(model.KindExercise, ExerciseConfidence, []dictEntry{
	{"push-up", []string{`push[- ]?ups?`}},
	{"pull-up", []string{`pull[- ]?ups?`, `chin[- ]?ups?`}},
	{"squat", []string{`squats?`, `goblet squats?`}},
	{"deadlift", []string{`deadlifts?`, `romanian deadlifts?`, `rdls?`}},
	{"bench press", []string{`bench press(?:es)?`, `bench`}},
	{"overhead press", []string{`overhead press`, `shoulder press`, `military press`}},
	{"lunge", []string{`lunges?`}},
	{"plank", []string{`planks?`}},
	{"burpee", []string{`burpees?`}},
	{"crunch", []string{`crunch(?:es)?`, `sit[- ]?ups?`}},
	{"row", []string{`rows?`, `bent[- ]over rows?`}},
	{"curl", []string{`curls?`, `bicep curls?`}},
	{"dip", []string{`dips?`}},
	{"running", []string{`running`, `run`, `jog(?:ging)?`}},
	{"cycling", []string{`cycling`, `bike`, `biking`}},
	{"swimming", []string{`swim(?:ming)?`}},
	{"yoga", []string{`yoga`}},
	{"hiit", []string{`hiit`}},
	{"jumping jacks", []string{`jumping jacks?`}},
	{"cardio", []string{`cardio`}},
})

var foodDict = newDictionary(model.KindFood, FoodConfidence, []dictEntry{
	{"chicken", []string{`chicken`, `chicken breasts?`}},
	{"rice", []string{`rice`, `brown rice`}},
	{"egg", []string{`eggs?`, `egg whites?`}},
	{"oats", []string{`oats`, `oatmeal`, `porridge`}},
	{"banana", []string{`bananas?`}},
	{"apple", []string{`apples?`}},
	{"salad", []string{`salads?`}},
	{"protein shake", []string{`protein shakes?`, `shakes?`}},
	{"broccoli", []string{`broccoli`}},
	{"salmon", []string{`salmon`}},
	{"fish", []string{`fish`, `tuna`}},
	{"beef", []string{`beef`, `steak`}},
	{"yogurt", []string{`yogh?urt`, `greek yogh?urt`}},
	{"bread", []string{`bread`, `toast`}},
	{"pasta", []string{`pasta`, `spaghetti`}},
	{"avocado", []string{`avocados?`}},
	{"nuts", []string{`nuts`, `almonds?`, `peanut butter`}},
	{"milk", []string{`milk`}},
	{"potato", []string{`potato(?:es)?`, `sweet potato(?:es)?`}},
	{"tofu", []string{`tofu`}},
})

var bodyPartDict = newDictionary(model.KindBodyPart, BodyPartConfidence, []dictEntry{
	{"chest", []string{`chest`, `pecs?`}},
	{"back", []string{`back`, `lower back`, `upper back`, `lats?`}},
	{"legs", []string{`legs?`}},
	{"arms", []string{`arms?`}},
	{"shoulders", []string{`shoulders?`, `delts?`}},
	{"abs", []string{`abs`, `core`, `stomach`}},
	{"glutes", []string{`glutes?`, `butt`}},
	{"biceps", []string{`biceps?`}},
	{"triceps", []string{`triceps?`}},
	{"hamstrings", []string{`hamstrings?`}},
	{"quads", []string{`quads?`, `quadriceps`}},
	{"calves", []string{`calf`, `calves`}},
	{"knees", []string{`knees?`}},
	{"neck", []string{`neck`}},
})

var timeDict = newDictionary(model.KindTime, TimeConfidence, []dictEntry{
	{"today", []string{`today`}},
	{"tonight", []string{`tonight`}},
	{"tomorrow", []string{`tomorrow`}},
	{"yesterday", []string{`yesterday`}},
	{"morning", []string{`mornings?`}},
	{"afternoon", []string{`afternoons?`}},
	{"evening", []string{`evenings?`}},
	{"night", []string{`nights?`}},
	{"week", []string{`weeks?`, `this week`, `next week`}},
	{"weekend", []string{`weekends?`}},
	{"monday", []string{`mondays?`}},
	{"tuesday", []string{`tuesdays?`}},
	{"wednesday", []string{`wednesdays?`}},
	{"thursday", []string{`thursdays?`}},
	{"friday", []string{`fridays?`}},
	{"saturday", []string{`saturdays?`}},
	{"sunday", []string{`sundays?`}},
	{"", []string{`\d+\s*(?:minutes?|mins?|hours?|hrs?|days?|weeks?|months?)`}},
})

// Sentiment lexicons. The three lists are disjoint.
var (
	positiveWords = wordSet(
		"great", "good", "awesome", "amazing", "love", "excited", "happy",
		"strong", "motivated", "proud", "excellent", "fantastic", "energized",
		"better", "enjoy", "enjoyed", "fun", "nice", "pumped", "crushed",
	)
	negativeWords = wordSet(
		"bad", "tired", "exhausted", "sore", "pain", "hate", "frustrated",
		"sad", "weak", "struggling", "difficult", "hard", "awful", "terrible",
		"stressed", "unmotivated", "lazy", "hurt", "hurts", "worse",
	)
	neutralWords = wordSet(
		"okay", "ok", "fine", "normal", "average", "alright", "so-so", "usual",
		"meh",
	)
	// strongWords overlaps both the positive and negative lexicons.
	strongWords = wordSet(
		"amazing", "awesome", "love", "fantastic", "excellent", "pumped",
		"hate", "awful", "terrible", "exhausted", "frustrated",
	)
)

var tokenPattern = regexp.MustCompile(`[a-z0-9]+(?:['-][a-z0-9]+)*`)

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// Tokens returns the lower-cased word tokens of text.
func Tokens(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// keywords compiles a word-boundary alternation over phrases.
func keywords(phrases ...string) *regexp.Regexp {
	escaped := make([]string, len(phrases))
	for i, p := range phrases {
		escaped[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(escaped, "|") + `)\b`)
}
