// Package learner maintains a per-session model of user preferences and
// uses it to reshape responses and predict what the user may need next.
package learner

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rcliao/coach-engine/internal/analyzer"
	"github.com/rcliao/coach-engine/internal/keylock"
	"github.com/rcliao/coach-engine/internal/model"
	"github.com/rcliao/coach-engine/internal/sentence"
	"github.com/rcliao/coach-engine/internal/store"
)

const (
	// DefaultMaxLog is the number of interactions kept on a pattern.
	DefaultMaxLog = 100

	// overwriteThreshold is the satisfaction above which a new response
	// preference replaces an existing one.
	overwriteThreshold = 0.7

	predictWindow  = 5
	maxSuggestions = 3
)

// Chooser returns an index in [0, n).
type Chooser func(n int) int

// NewRandomChooser returns a goroutine-safe Chooser backed by a seeded
// source. A zero seed uses the current time.
func NewRandomChooser(seed int64) Chooser {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	var mu sync.Mutex
	r := rand.New(rand.NewSource(seed))
	return func(n int) int {
		mu.Lock()
		defer mu.Unlock()
		return r.Intn(n)
	}
}

// Options configures a Learner.
type Options struct {
	MaxLog  int
	Chooser Chooser
	Now     func() time.Time
}

// Learner learns per-session patterns from completed interactions.
type Learner struct {
	store  store.PatternStore
	locks  *keylock.Locker
	maxLog int
	choose Chooser
	now    func() time.Time
	logger zerolog.Logger
}

// New creates a Learner over st.
func New(st store.PatternStore, logger zerolog.Logger, opts Options) *Learner {
	if opts.MaxLog <= 0 {
		opts.MaxLog = DefaultMaxLog
	}
	if opts.Chooser == nil {
		opts.Chooser = NewRandomChooser(0)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Learner{
		store:  st,
		locks:  keylock.New(),
		maxLog: opts.MaxLog,
		choose: opts.Chooser,
		now:    opts.Now,
		logger: logger.With().Str("component", "learner").Logger(),
	}
}

// Learn folds one interaction into the session's pattern, creating the
// pattern on first use.
func (l *Learner) Learn(ctx context.Context, sessionID string, in model.Interaction) error {
	unlock := l.locks.Lock(sessionID)
	defer unlock()

	p, err := l.store.GetPattern(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		p = model.NewUserPattern(sessionID, l.now())
	} else if err != nil {
		return fmt.Errorf("load pattern: %w", err)
	}

	ts := in.Timestamp
	if ts.IsZero() {
		ts = l.now()
		in.Timestamp = ts
	}
	bucket := model.TimeBucket(ts)
	lower := strings.ToLower(in.UserMessage)

	in.SessionID = sessionID
	p.Log = append(p.Log, in)
	if len(p.Log) > l.maxLog {
		p.Log = append([]model.Interaction(nil), p.Log[len(p.Log)-l.maxLog:]...)
	}

	entities := in.Entities
	if entities == nil {
		entities = analyzer.Extract(in.UserMessage)
	}

	tag := strings.ToLower(in.ContextTag)
	if strings.Contains(tag, "workout") {
		p.FavoriteExercises = addNew(p.FavoriteExercises, analyzer.ValuesOf(entities, model.KindExercise))
		if p.WorkoutTimes == nil {
			p.WorkoutTimes = map[string]int{}
		}
		p.WorkoutTimes[bucket]++
	}
	if strings.Contains(tag, "nutrition") || strings.Contains(tag, "food") {
		p.CommonFoods = addNew(p.CommonFoods, analyzer.ValuesOf(entities, model.KindFood))
	}

	p.MoodPatterns = append(p.MoodPatterns, model.MoodPattern{
		TimeOfDay: bucket,
		DayOfWeek: ts.Weekday().String(),
		Mood:      in.Mood,
		Triggers:  scanTriggers(lower),
	})

	candidate := DerivePreference(in.ContextTag, in.AIResponse)
	p.ResponsePreferences = mergePreference(p.ResponsePreferences, candidate, in.Satisfaction)

	p.GoalProgress = trackGoals(p.GoalProgress, lower, ts)

	p.UpdatedAt = l.now()
	if err := l.store.PutPattern(ctx, p); err != nil {
		return fmt.Errorf("save pattern: %w", err)
	}

	l.logger.Debug().
		Str("session_id", sessionID).
		Str("context_tag", in.ContextTag).
		Str("tone", candidate.PreferredTone).
		Int("log_size", len(p.Log)).
		Msg("learned interaction")
	return nil
}

// DerivePreference infers the response shape of text.
func DerivePreference(contextTag, text string) model.ResponsePreference {
	return model.ResponsePreference{
		ContextTag:      contextTag,
		PreferredTone:   detectTone(text),
		PreferredLength: detectLength(text),
		PreferredFormat: detectFormat(text),
	}
}

func detectTone(text string) string {
	lower := strings.ToLower(text)
	best, bestHits := toneLexicons[0].tone, 0
	for _, lx := range toneLexicons {
		if hits := len(lx.pattern.FindAllStringIndex(lower, -1)); hits > bestHits {
			best, bestHits = lx.tone, hits
		}
	}
	return best
}

func detectLength(text string) string {
	switch n := sentence.Words(text); {
	case n < 50:
		return model.LengthShort
	case n < 150:
		return model.LengthMedium
	default:
		return model.LengthDetailed
	}
}

func detectFormat(text string) string {
	switch {
	case bulletMarker.MatchString(text):
		return model.FormatBullet
	case stepMarker.MatchString(text):
		return model.FormatSteps
	default:
		return model.FormatParagraph
	}
}

// mergePreference inserts c when its context has no preference yet and
// replaces the existing one only above the overwrite threshold.
func mergePreference(prefs []model.ResponsePreference, c model.ResponsePreference, satisfaction float64) []model.ResponsePreference {
	for i, p := range prefs {
		if p.ContextTag != c.ContextTag {
			continue
		}
		if satisfaction > overwriteThreshold {
			prefs[i] = c
		}
		return prefs
	}
	return append(prefs, c)
}

func scanTriggers(lower string) []string {
	var out []string
	for _, t := range triggers {
		if t.pattern.MatchString(lower) {
			out = append(out, t.word)
		}
	}
	return out
}

func trackGoals(goals []model.GoalProgress, lower string, ts time.Time) []model.GoalProgress {
	if !containsString(analyzer.Secondary(lower), analyzer.SecondaryGoalSetting) {
		return goals
	}
	for _, gp := range goalPhrases {
		if !gp.pattern.MatchString(lower) {
			continue
		}
		found := false
		for i := range goals {
			if goals[i].Goal == gp.goal {
				goals[i].Mentions++
				goals[i].LastMentioned = ts
				found = true
				break
			}
		}
		if !found {
			goals = append(goals, model.GoalProgress{Goal: gp.goal, Mentions: 1, LastMentioned: ts})
		}
	}
	return goals
}

// pattern loads a session's pattern. Missing patterns and storage errors
// both report false; storage errors are logged.
func (l *Learner) pattern(ctx context.Context, sessionID string) (*model.UserPattern, bool) {
	p, err := l.store.GetPattern(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			l.logger.Error().Err(err).Str("session_id", sessionID).Msg("load pattern")
		}
		return nil, false
	}
	return p, true
}

// HasPattern reports whether the session has learned anything yet.
func (l *Learner) HasPattern(ctx context.Context, sessionID string) bool {
	_, ok := l.pattern(ctx, sessionID)
	return ok
}

// Pattern returns a snapshot of the session's pattern.
func (l *Learner) Pattern(ctx context.Context, sessionID string) (*model.UserPattern, bool) {
	return l.pattern(ctx, sessionID)
}

// Adapt reshapes base to the session's preference for contextTag. Without a
// stored preference base is returned unchanged.
func (l *Learner) Adapt(ctx context.Context, sessionID, contextTag, mood, base string) string {
	p, ok := l.pattern(ctx, sessionID)
	if !ok {
		return base
	}
	pref, ok := p.Preference(contextTag)
	if !ok {
		return base
	}

	l.logger.Debug().
		Str("session_id", sessionID).
		Str("context_tag", contextTag).
		Str("mood", mood).
		Str("tone", pref.PreferredTone).
		Str("length", pref.PreferredLength).
		Str("format", pref.PreferredFormat).
		Msg("adapting response")

	text := l.applyTone(pref.PreferredTone, base)
	text = applyLength(pref.PreferredLength, text)
	return applyFormat(pref.PreferredFormat, text)
}

func (l *Learner) applyTone(tone, text string) string {
	set := decorations[tone]
	if len(set) == 0 {
		return text
	}
	return set[l.choose(len(set))] + text
}

func applyLength(length, text string) string {
	switch length {
	case model.LengthShort:
		return sentence.First(text, 2)
	case model.LengthDetailed:
		return text + DetailsBlock
	default:
		return text
	}
}

func applyFormat(format, text string) string {
	var lines []string
	switch format {
	case model.FormatBullet:
		for _, s := range sentence.Split(text) {
			lines = append(lines, "• "+listMarker.ReplaceAllString(s, ""))
		}
	case model.FormatSteps:
		for i, s := range sentence.Split(text) {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, listMarker.ReplaceAllString(s, "")))
		}
	default:
		return text
	}
	return strings.Join(lines, "\n")
}

// Predict returns proactive messages for the current time of day.
func (l *Learner) Predict(ctx context.Context, sessionID string) []string {
	out := []string{}
	p, ok := l.pattern(ctx, sessionID)
	if !ok {
		return out
	}

	now := l.now()
	bucket := model.TimeBucket(now)
	weekday := now.Weekday().String()

	var matches []model.MoodPattern
	for _, mp := range p.MoodPatterns {
		if mp.TimeOfDay == bucket && mp.DayOfWeek == weekday {
			matches = append(matches, mp)
		}
	}
	if len(matches) > predictWindow {
		matches = matches[len(matches)-predictWindow:]
	}
	if len(matches) > 0 {
		var sum float64
		for _, mp := range matches {
			sum += model.MoodScore(mp.Mood)
		}
		avg := sum / float64(len(matches))
		switch {
		case avg < 0.3:
			out = append(out, lowMoodMessages...)
		case avg > 0.7:
			out = append(out, highEnergyMessages...)
		}
	}

	if preferred, ok := p.PreferredWorkoutTime(); ok && preferred == bucket {
		out = append(out, fmt.Sprintf("You usually work out in the %s. Ready for today's session?", bucket))
	}

	if len(p.CommonFoods) > 0 {
		out = append(out, fmt.Sprintf("Consider including %s in your next meal.", p.CommonFoods[0]))
	}

	return out
}

// SuggestionsFor returns suggestions drawn from the session's favorites
// for a context tag.
func (l *Learner) SuggestionsFor(ctx context.Context, sessionID, contextTag string) []string {
	out := []string{}
	p, ok := l.pattern(ctx, sessionID)
	if !ok {
		return out
	}

	switch contextTag {
	case "workout":
		for i, ex := range p.FavoriteExercises {
			if i == maxSuggestions {
				break
			}
			out = append(out, fmt.Sprintf("Add %s to today's workout", ex))
		}
		if preferred, ok := p.PreferredWorkoutTime(); ok {
			out = append(out, fmt.Sprintf("Schedule your next workout in the %s", preferred))
		}
	case "nutrition":
		for i, food := range p.CommonFoods {
			if i == maxSuggestions {
				break
			}
			out = append(out, fmt.Sprintf("Log your usual %s", food))
		}
	}
	return out
}

func addNew(set, values []string) []string {
	for _, v := range values {
		if !containsString(set, v) {
			set = append(set, v)
		}
	}
	return set
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
