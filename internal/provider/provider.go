// Package provider defines the base recommendation provider consulted for
// each turn, with a local rule-based implementation and an HTTP client.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/rcliao/coach-engine/internal/config"
)

// Profile is a read-only snapshot of the user's profile.
type Profile struct {
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	FitnessLevel string   `json:"fitness_level,omitempty" yaml:"fitness_level,omitempty"`
	Goals        []string `json:"goals,omitempty" yaml:"goals,omitempty"`
	Equipment    []string `json:"equipment,omitempty" yaml:"equipment,omitempty"`
}

// WorkoutEntry is one completed workout from the user's history.
type WorkoutEntry struct {
	Date        time.Time `json:"date" yaml:"date"`
	Name        string    `json:"name" yaml:"name"`
	DurationMin int       `json:"duration_min,omitempty" yaml:"duration_min,omitempty"`
}

// NutritionEntry is one logged food.
type NutritionEntry struct {
	Date     time.Time `json:"date" yaml:"date"`
	Food     string    `json:"food" yaml:"food"`
	Calories int       `json:"calories,omitempty" yaml:"calories,omitempty"`
}

// Request is the input to a provider.
type Request struct {
	Message        string           `json:"message"`
	Profile        Profile          `json:"profile"`
	WorkoutHistory []WorkoutEntry   `json:"workout_history,omitempty"`
	NutritionLog   []NutritionEntry `json:"nutrition_log,omitempty"`
	SessionID      string           `json:"session_id"`
}

// Response is a draft recommendation.
type Response struct {
	Content      string                 `json:"content"`
	Suggestions  []string               `json:"suggestions,omitempty"`
	Action       string                 `json:"action,omitempty"`
	Data         map[string]interface{} `json:"data,omitempty"`
	Confidence   *float64               `json:"confidence,omitempty"`
	Personalized *bool                  `json:"personalized,omitempty"`
}

// Provider produces a draft response for a message.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// Func adapts a function to Provider.
type Func func(ctx context.Context, req Request) (*Response, error)

// Generate calls f.
func (f Func) Generate(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}

// NewFromConfig creates the provider selected by cfg.
func NewFromConfig(cfg config.ProviderConfig) (Provider, error) {
	switch cfg.Kind {
	case "", "local":
		return NewLocal(), nil
	case "http":
		if cfg.URL == "" {
			return nil, fmt.Errorf("http provider requires a url")
		}
		return NewHTTPProvider(cfg.URL, cfg.APIKey, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown provider kind %q", cfg.Kind)
	}
}
