package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/coach-engine/internal/analyzer"
	"github.com/rcliao/coach-engine/internal/config"
)

func TestLocalDrafts(t *testing.T) {
	ctx := context.Background()
	p := NewLocal()

	tests := []struct {
		msg    string
		intent string
		action string
	}{
		{"Create a new workout for me", analyzer.IntentGenerateWorkout, "generate_workout"},
		{"I ate chicken and rice for lunch", analyzer.IntentTrackFood, "log_food"},
		{"How many sets for chest and legs today?", analyzer.IntentWorkoutAdvice, ""},
		{"hello there", analyzer.IntentGeneralAdvice, ""},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			resp, err := p.Generate(ctx, Request{Message: tt.msg})
			require.NoError(t, err)
			assert.Equal(t, drafts[tt.intent], resp.Content)
			assert.Equal(t, tt.action, resp.Action)
			assert.Nil(t, resp.Confidence)
			assert.Nil(t, resp.Personalized)
		})
	}
}

func TestLocalData(t *testing.T) {
	ctx := context.Background()
	p := NewLocal()

	resp, _ := p.Generate(ctx, Request{Message: "I ate chicken and rice for lunch"})
	assert.Equal(t, []string{"chicken", "rice"}, resp.Data["foods"])

	resp, _ = p.Generate(ctx, Request{
		Message: "Create a new workout",
		Profile: Profile{FitnessLevel: "intermediate"},
	})
	assert.Equal(t, "intermediate", resp.Data["level"])

	resp, _ = p.Generate(ctx, Request{
		Message:        "How is my progress",
		WorkoutHistory: []WorkoutEntry{{Name: "legs"}, {Name: "push"}},
	})
	assert.Equal(t, 2, resp.Data["workouts"])
	assert.True(t, strings.HasPrefix(resp.Content, "You've logged 2 workouts so far. "))
}

func TestLocalMotivationUsesName(t *testing.T) {
	resp, err := NewLocal().Generate(context.Background(), Request{
		Message: "I need motivation",
		Profile: Profile{Name: "Sam"},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Content, "Sam, every workout counts"))
}

func TestGoalSuggestions(t *testing.T) {
	got := goalSuggestions([]string{"Lose weight", "Build muscle and strength", "lose more weight"})
	assert.Equal(t, []string{
		"Add 20 minutes of brisk cardio after strength work",
		"Prioritize protein at every meal",
		"Focus on compound lifts like squats and deadlifts",
	}, got)
	assert.Empty(t, goalSuggestions(nil))
}

func TestFunc(t *testing.T) {
	boom := errors.New("boom")
	var p Provider = Func(func(ctx context.Context, req Request) (*Response, error) {
		return nil, boom
	})
	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, boom)
}

func TestHTTPProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req Request
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		conf := 0.9
		json.NewEncoder(w).Encode(Response{
			Content:     "remote: " + req.Message,
			Suggestions: []string{"drink water"},
			Confidence:  &conf,
		})
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL+"/", "secret", time.Second)
	resp, err := p.Generate(context.Background(), Request{Message: "hi", SessionID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, "remote: hi", resp.Content)
	assert.Equal(t, []string{"drink water"}, resp.Suggestions)
	require.NotNil(t, resp.Confidence)
	assert.Equal(t, 0.9, *resp.Confidence)
}

func TestHTTPProviderErrors(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	_, err := NewHTTPProvider(failing.URL, "", 0).Generate(context.Background(), Request{Message: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":""}`))
	}))
	defer empty.Close()

	_, err = NewHTTPProvider(empty.URL, "", 0).Generate(context.Background(), Request{Message: "hi"})
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	p, err := NewFromConfig(config.ProviderConfig{Kind: "local"})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, p)

	p, err = NewFromConfig(config.ProviderConfig{Kind: "http", URL: "http://localhost:1"})
	require.NoError(t, err)
	assert.IsType(t, &HTTPProvider{}, p)

	_, err = NewFromConfig(config.ProviderConfig{Kind: "http"})
	assert.Error(t, err)

	_, err = NewFromConfig(config.ProviderConfig{Kind: "carrier-pigeon"})
	assert.Error(t, err)
}
