package model

import "time"

// Time-of-day buckets.
const (
	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
	TimeNight     = "night"
)

// TimeBucket returns the time-of-day bucket for t.
func TimeBucket(t time.Time) string {
	h := t.Hour()
	switch {
	case h >= 5 && h < 12:
		return TimeMorning
	case h >= 12 && h < 17:
		return TimeAfternoon
	case h >= 17 && h < 21:
		return TimeEvening
	default:
		return TimeNight
	}
}

// Response tones.
const (
	ToneMotivational = "motivational"
	ToneTechnical    = "technical"
	ToneCasual       = "casual"
	ToneSupportive   = "supportive"
)

// Response lengths.
const (
	LengthShort    = "short"
	LengthMedium   = "medium"
	LengthDetailed = "detailed"
)

// Response formats.
const (
	FormatBullet    = "bullet"
	FormatParagraph = "paragraph"
	FormatSteps     = "step-by-step"
)

// MoodPattern is one mood observation at a time of day.
type MoodPattern struct {
	TimeOfDay string   `json:"time_of_day"`
	DayOfWeek string   `json:"day_of_week"`
	Mood      string   `json:"mood"`
	Triggers  []string `json:"triggers,omitempty"`
}

// ResponsePreference is the learned response shape for one context tag.
type ResponsePreference struct {
	ContextTag      string `json:"context_tag"`
	PreferredTone   string `json:"preferred_tone"`
	PreferredLength string `json:"preferred_length"`
	PreferredFormat string `json:"preferred_format"`
}

// GoalProgress counts how often a session has talked about a goal.
type GoalProgress struct {
	Goal          string    `json:"goal"`
	Mentions      int       `json:"mentions"`
	LastMentioned time.Time `json:"last_mentioned"`
}

// UserPattern is the learned model for one session.
type UserPattern struct {
	SessionID           string               `json:"session_id"`
	FavoriteExercises   []string             `json:"favorite_exercises"`
	CommonFoods         []string             `json:"common_foods"`
	MoodPatterns        []MoodPattern        `json:"mood_patterns"`
	ResponsePreferences []ResponsePreference `json:"response_preferences"`
	GoalProgress        []GoalProgress       `json:"goal_progress"`
	WorkoutTimes        map[string]int       `json:"workout_times,omitempty"`
	Log                 []Interaction        `json:"log,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// NewUserPattern returns an empty pattern for a session.
func NewUserPattern(sessionID string, now time.Time) *UserPattern {
	return &UserPattern{
		SessionID:    sessionID,
		WorkoutTimes: map[string]int{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Preference returns the stored preference for a context tag.
func (p *UserPattern) Preference(contextTag string) (ResponsePreference, bool) {
	for _, pref := range p.ResponsePreferences {
		if pref.ContextTag == contextTag {
			return pref, true
		}
	}
	return ResponsePreference{}, false
}

// PreferredWorkoutTime returns the most common workout bucket. Ties resolve
// in bucket order morning, afternoon, evening, night.
func (p *UserPattern) PreferredWorkoutTime() (string, bool) {
	best, bestCount := "", 0
	for _, b := range []string{TimeMorning, TimeAfternoon, TimeEvening, TimeNight} {
		if c := p.WorkoutTimes[b]; c > bestCount {
			best, bestCount = b, c
		}
	}
	return best, bestCount > 0
}

// Clone returns a deep copy.
func (p *UserPattern) Clone() *UserPattern {
	if p == nil {
		return nil
	}
	c := *p
	c.FavoriteExercises = append([]string(nil), p.FavoriteExercises...)
	c.CommonFoods = append([]string(nil), p.CommonFoods...)
	c.MoodPatterns = make([]MoodPattern, len(p.MoodPatterns))
	for i, mp := range p.MoodPatterns {
		mp.Triggers = append([]string(nil), mp.Triggers...)
		c.MoodPatterns[i] = mp
	}
	c.ResponsePreferences = append([]ResponsePreference(nil), p.ResponsePreferences...)
	c.GoalProgress = append([]GoalProgress(nil), p.GoalProgress...)
	c.WorkoutTimes = make(map[string]int, len(p.WorkoutTimes))
	for k, v := range p.WorkoutTimes {
		c.WorkoutTimes[k] = v
	}
	c.Log = append([]Interaction(nil), p.Log...)
	return &c
}
