package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/coach-engine/internal/model"
)

func entitiesOf(entities []model.Entity, kind model.EntityKind) []model.Entity {
	var out []model.Entity
	for _, e := range entities {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func TestExtract_Empty(t *testing.T) {
	got := Extract("")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtract_NoMatches(t *testing.T) {
	assert.Empty(t, Extract("hello there"))
}

func TestExtract_Numbers(t *testing.T) {
	got := entitiesOf(Extract("I did 3 sets of 12 at 62.5 kg"), model.KindNumber)
	require.Len(t, got, 3)
	assert.Equal(t, "3", got[0].Value)
	assert.Equal(t, "12", got[1].Value)
	assert.Equal(t, "62.5", got[2].Value)
	for _, e := range got {
		assert.Equal(t, 0.9, e.Confidence)
	}
}

func TestExtract_NumbersWithUnits(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"I benched 100kg", []string{"100"}},
		{"ran a 5k", []string{"5"}},
		{"3x10 squats", []string{"3", "10"}},
		{"walked 10000 steps", []string{"10000"}},
		{"Squatted 62.5kg today.", []string{"62.5"}},
		{"Did 12.", []string{"12"}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var values []string
			for _, e := range entitiesOf(Extract(tt.text), model.KindNumber) {
				values = append(values, e.Value)
			}
			assert.Equal(t, tt.want, values)
		})
	}
}

func TestExtract_KindConfidences(t *testing.T) {
	got := Extract("Squats and chicken for my legs tomorrow")

	ex := entitiesOf(got, model.KindExercise)
	require.Len(t, ex, 1)
	assert.Equal(t, "squat", ex[0].Value)
	assert.Equal(t, "squats", ex[0].RawText)
	assert.Equal(t, 0.8, ex[0].Confidence)

	food := entitiesOf(got, model.KindFood)
	require.Len(t, food, 1)
	assert.Equal(t, "chicken", food[0].Value)
	assert.Equal(t, 0.8, food[0].Confidence)

	body := entitiesOf(got, model.KindBodyPart)
	require.Len(t, body, 1)
	assert.Equal(t, "legs", body[0].Value)
	assert.Equal(t, 0.8, body[0].Confidence)

	tm := entitiesOf(got, model.KindTime)
	require.Len(t, tm, 1)
	assert.Equal(t, "tomorrow", tm[0].Value)
	assert.Equal(t, 0.9, tm[0].Confidence)
}

func TestExtract_KindOrder(t *testing.T) {
	got := Extract("tomorrow legs chicken squats 5")
	require.Len(t, got, 5)
	kinds := []model.EntityKind{got[0].Kind, got[1].Kind, got[2].Kind, got[3].Kind, got[4].Kind}
	assert.Equal(t, []model.EntityKind{
		model.KindNumber, model.KindExercise, model.KindFood, model.KindBodyPart, model.KindTime,
	}, kinds)
}

func TestExtract_MultiVariantDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		kind  model.EntityKind
		value string
		count int
	}{
		{"bench press", "Heavy bench press day", model.KindExercise, "bench press", 2},
		{"lower back", "My lower back is tight", model.KindBodyPart, "back", 2},
		{"protein shake", "Had a protein shake", model.KindFood, "protein shake", 2},
		{"chicken breast", "Grilled chicken breast", model.KindFood, "chicken", 2},
		{"goblet squat", "Goblet squat for warmup", model.KindExercise, "squat", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entitiesOf(Extract(tt.text), tt.kind)
			require.Len(t, got, tt.count)
			for _, e := range got {
				assert.Equal(t, tt.value, e.Value)
			}
		})
	}
}

func TestExtract_Durations(t *testing.T) {
	got := entitiesOf(Extract("Run for 30 minutes"), model.KindTime)
	require.Len(t, got, 1)
	assert.Equal(t, "30 minutes", got[0].Value)
}

func TestExtract_ChestAndLegs(t *testing.T) {
	got := Extract("How many sets for chest and legs today?")
	body := entitiesOf(got, model.KindBodyPart)
	require.Len(t, body, 2)
	assert.Equal(t, "chest", body[0].Value)
	assert.Equal(t, "legs", body[1].Value)
}

func TestValuesOf(t *testing.T) {
	got := ValuesOf(Extract("bench press then squats"), model.KindExercise)
	assert.Equal(t, []string{"squat", "bench press"}, got)
}

func TestSentiment_Empty(t *testing.T) {
	got := Sentiment("")
	assert.Equal(t, model.SentimentResult{Label: model.SentimentNeutral, Confidence: 0.5, Intensity: 0.5}, got)
}

func TestSentiment_NoHits(t *testing.T) {
	got := Sentiment("what time is it")
	assert.Equal(t, model.SentimentNeutral, got.Label)
	assert.Equal(t, 0.5, got.Confidence)
	assert.Equal(t, 0.5, got.Intensity)
}

func TestSentiment_RatioLaw(t *testing.T) {
	// 3 positive, 2 negative, 1 neutral
	got := Sentiment("great good happy but tired and sore, overall okay")
	assert.Equal(t, model.SentimentPositive, got.Label)
	assert.InDelta(t, 3.0/6.0, got.Confidence, 1e-9)
}

func TestSentiment_Negative(t *testing.T) {
	got := Sentiment("I feel tired and weak")
	assert.Equal(t, model.SentimentNegative, got.Label)
	assert.Equal(t, 1.0, got.Confidence)
	assert.InDelta(t, 0.5, got.Intensity, 1e-9)
}

func TestSentiment_Intensity(t *testing.T) {
	got := Sentiment("I love this, amazing and fantastic")
	assert.Equal(t, model.SentimentPositive, got.Label)
	assert.InDelta(t, 0.8, got.Intensity, 1e-9)

	got = Sentiment("love amazing awesome fantastic excellent pumped hate awful terrible exhausted frustrated")
	assert.Equal(t, 1.0, got.Intensity)
}

func TestSentiment_TieChoosesOneLabel(t *testing.T) {
	got := Sentiment("good but bad")
	assert.Contains(t, []string{model.SentimentPositive, model.SentimentNegative}, got.Label)
	assert.InDelta(t, 0.5, got.Confidence, 1e-9)
}
