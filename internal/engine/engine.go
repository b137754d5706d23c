// Package engine orchestrates one conversational turn: it analyzes the
// message, consults the base provider, personalizes the draft and records
// the realized interaction.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/rcliao/coach-engine/internal/analyzer"
	"github.com/rcliao/coach-engine/internal/conversation"
	"github.com/rcliao/coach-engine/internal/keylock"
	"github.com/rcliao/coach-engine/internal/learner"
	"github.com/rcliao/coach-engine/internal/model"
	"github.com/rcliao/coach-engine/internal/provider"
)

const (
	// MaxSuggestions caps Payload.Suggestions.
	MaxSuggestions = 6

	// DefaultSatisfaction is recorded when a request carries no signal.
	DefaultSatisfaction = 0.5

	fallbackConfidence = 0.3
)

// FallbackContent is returned when the base provider fails.
const FallbackContent = "I'm sorry, I'm having trouble putting together a recommendation right now. Please try again in a moment."

var fallbackSuggestions = []string{
	"Try asking about today's workout",
	"Log a meal you've eaten",
	"Ask for a quick motivation boost",
}

// Request is one inbound user turn.
type Request struct {
	Message        string
	SessionID      string
	Profile        provider.Profile
	WorkoutHistory []provider.WorkoutEntry
	NutritionLog   []provider.NutritionEntry

	// Satisfaction is an optional explicit feedback signal in [0, 1].
	Satisfaction *float64
}

// Payload is the engine's reply to a turn.
type Payload struct {
	InteractionID string                 `json:"interaction_id"`
	Content       string                 `json:"content"`
	Suggestions   []string               `json:"suggestions"`
	Action        string                 `json:"action,omitempty"`
	Data          map[string]interface{} `json:"data,omitempty"`
	Confidence    float64                `json:"confidence"`
	Personalized  bool                   `json:"personalized"`
	Analysis      model.IntentAnalysis   `json:"analysis"`
}

// Options configures an Engine.
type Options struct {
	Classifier *analyzer.Classifier
	NewID      func() string
	Now        func() time.Time
}

// Engine answers turns. Turns for the same session are serialized.
type Engine struct {
	provider   provider.Provider
	memory     *conversation.Memory
	learner    *learner.Learner
	classifier *analyzer.Classifier
	locks      *keylock.Locker
	newID      func() string
	now        func() time.Time
	logger     zerolog.Logger
}

// New creates an Engine.
func New(p provider.Provider, mem *conversation.Memory, l *learner.Learner, logger zerolog.Logger, opts Options) *Engine {
	if opts.Classifier == nil {
		opts.Classifier = analyzer.NewClassifier()
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return ulid.Make().String() }
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		provider:   p,
		memory:     mem,
		learner:    l,
		classifier: opts.Classifier,
		locks:      keylock.New(),
		newID:      opts.NewID,
		now:        opts.Now,
		logger:     logger.With().Str("component", "engine").Logger(),
	}
}

// Respond processes one turn. It never fails: provider faults produce the
// fallback payload and storage faults are logged.
func (e *Engine) Respond(ctx context.Context, req Request) Payload {
	unlock := e.locks.Lock(req.SessionID)
	defer unlock()

	id := e.newID()
	logger := e.logger.With().Str("session_id", req.SessionID).Str("interaction_id", id).Logger()
	ctx = logger.WithContext(ctx)

	history := e.memory.History(ctx, req.SessionID)
	analysis := e.classifier.Classify(req.Message, analyzer.Extract(req.Message), len(history))
	contextTag := ContextTag(analysis.PrimaryIntent)
	mood := Mood(analysis.Sentiment)
	personalized := e.learner.HasPattern(ctx, req.SessionID)

	var payload Payload
	resp, err := e.generate(ctx, provider.Request{
		Message:        req.Message,
		Profile:        req.Profile,
		WorkoutHistory: req.WorkoutHistory,
		NutritionLog:   req.NutritionLog,
		SessionID:      req.SessionID,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("provider failed, using fallback")
		payload = fallback(analysis)
	} else {
		payload = Payload{
			Content:      e.learner.Adapt(ctx, req.SessionID, contextTag, mood, resp.Content),
			Suggestions:  e.suggestions(ctx, req.SessionID, contextTag, resp.Suggestions, analysis),
			Action:       resp.Action,
			Data:         resp.Data,
			Confidence:   analysis.Confidence,
			Personalized: personalized,
			Analysis:     analysis,
		}
	}
	payload.InteractionID = id

	in := model.Interaction{
		ID:           id,
		SessionID:    req.SessionID,
		Timestamp:    e.now(),
		UserMessage:  req.Message,
		AIResponse:   payload.Content,
		ContextTag:   contextTag,
		Mood:         mood,
		Satisfaction: satisfaction(req.Satisfaction),
		Entities:     analysis.Entities,
		Intent:       analysis.PrimaryIntent,
	}
	if err := e.learner.Learn(ctx, req.SessionID, in); err != nil {
		logger.Error().Err(err).Msg("learn interaction")
	}
	if err := e.memory.Record(ctx, req.SessionID, in); err != nil {
		logger.Error().Err(err).Msg("record interaction")
	}

	logger.Debug().
		Str("intent", analysis.PrimaryIntent).
		Str("context_tag", contextTag).
		Bool("personalized", payload.Personalized).
		Int("suggestions", len(payload.Suggestions)).
		Msg("turn complete")

	return payload
}

// generate calls the provider, converting panics and empty replies to errors.
func (e *Engine) generate(ctx context.Context, req provider.Request) (resp *provider.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, fmt.Errorf("provider panic: %v", r)
		}
	}()

	resp, err = e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	if resp == nil {
		return nil, errors.New("generate: provider returned no response")
	}
	return resp, nil
}

func (e *Engine) suggestions(ctx context.Context, sessionID, contextTag string, base []string, a model.IntentAnalysis) []string {
	var out []string
	out = append(out, base...)
	out = append(out, EntitySuggestions(a.Entities)...)
	out = append(out, SentimentSuggestions(a.Sentiment)...)
	out = append(out, UrgencySuggestions(a.Urgency)...)
	out = append(out, ComplexitySuggestions(a.Complexity)...)
	out = append(out, e.learner.SuggestionsFor(ctx, sessionID, contextTag)...)
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func fallback(a model.IntentAnalysis) Payload {
	return Payload{
		Content:      FallbackContent,
		Suggestions:  append([]string(nil), fallbackSuggestions...),
		Confidence:   fallbackConfidence,
		Personalized: false,
		Analysis:     a,
	}
}

func satisfaction(s *float64) float64 {
	if s == nil {
		return DefaultSatisfaction
	}
	switch v := *s; {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
