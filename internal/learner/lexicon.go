package learner

import (
	"regexp"
	"strings"

	"github.com/rcliao/coach-engine/internal/model"
)

func keywords(phrases ...string) *regexp.Regexp {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

type toneLexicon struct {
	tone    string
	pattern *regexp.Regexp
}

// toneLexicons are scored in order; ties go to the earlier tone.
var toneLexicons = []toneLexicon{
	{model.ToneMotivational, keywords("you've got this", "push", "crush", "amazing", "great job", "keep going", "champion", "let's go", "unstoppable", "proud", "beast", "level up")},
	{model.ToneTechnical, keywords("sets", "reps", "rpe", "tempo", "grams", "calories", "macros", "hypertrophy", "volume", "progressive overload", "percent", "protein", "carbohydrates", "breakdown")},
	{model.ToneCasual, keywords("hey", "cool", "yeah", "no worries", "btw", "gonna", "chill", "fun", "nice", "alright")},
	{model.ToneSupportive, keywords("understand", "it's okay", "don't worry", "here for you", "take it easy", "be kind", "gentle", "normal to", "one step at a time", "listen to your body")},
}

var (
	bulletMarker = regexp.MustCompile(`(?m)^\s*[•*-]\s+`)
	stepMarker   = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+|\bStep\b`)

	// listMarker is stripped from a line before it is reformatted.
	listMarker = regexp.MustCompile(`^\s*(?:[•*-]|\d+[.)])\s+`)
)

type trigger struct {
	word    string
	pattern *regexp.Regexp
}

// triggers are scanned in the user message for each mood observation.
var triggers = []trigger{
	{"work", keywords("work", "job", "office", "boss")},
	{"stress", keywords("stress", "stressed", "stressful")},
	{"sleep", keywords("sleep", "slept", "sleeping", "insomnia")},
	{"tired", keywords("tired", "exhausted", "fatigued")},
	{"deadline", keywords("deadline", "deadlines")},
	{"family", keywords("family", "kids", "partner")},
	{"weather", keywords("weather", "rain", "raining", "cold", "hot")},
	{"sore", keywords("sore", "soreness", "aching")},
	{"busy", keywords("busy", "no time")},
	{"travel", keywords("travel", "traveling", "travelling", "trip", "flight")},
}

type goalPhrase struct {
	goal    string
	pattern *regexp.Regexp
}

var goalPhrases = []goalPhrase{
	{"lose weight", keywords("lose weight", "weight loss", "lose fat", "fat loss")},
	{"build muscle", keywords("build muscle", "gain muscle", "muscle gain", "bulk up")},
	{"get stronger", keywords("get stronger", "strength", "stronger")},
	{"run a 5k", keywords("run a 5k", "5k", "5 k")},
	{"improve endurance", keywords("endurance", "stamina", "cardio fitness")},
	{"gain weight", keywords("gain weight", "put on weight")},
	{"get toned", keywords("get toned", "tone up", "toned")},
	{"improve flexibility", keywords("flexibility", "flexible", "mobility")},
}

var decorations = map[string][]string{
	model.ToneMotivational: {
		"💪 You've got this! ",
		"🔥 Let's crush it! ",
		"⚡ Time to level up! ",
	},
	model.ToneTechnical: {
		"📊 Here's the breakdown: ",
		"🔬 Based on the numbers: ",
		"📈 Looking at the details: ",
	},
	model.ToneCasual: {
		"Hey! ",
		"Alright, ",
		"So, ",
	},
	model.ToneSupportive: {
		"🤗 I'm here for you. ",
		"💙 Take it one step at a time. ",
		"🌱 Every bit of progress counts. ",
	},
}

// DetailsBlock is appended to responses for sessions preferring detail.
const DetailsBlock = "\n\n**Additional Details:**\n" +
	"- Focus on proper form before adding load.\n" +
	"- Track each session so you can see your progress.\n" +
	"- Recovery, sleep and nutrition drive your results as much as training."

var (
	lowMoodMessages = []string{
		"It's okay to have tough days. A short walk can lift your mood.",
		"Be gentle with yourself today. Even 10 minutes of movement counts.",
	}
	highEnergyMessages = []string{
		"You're usually full of energy around now. Great time for a challenging workout!",
		"Your energy tends to peak at this time. Consider going for a personal best!",
	}
)
