package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"travel/internal/models"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.Intent
	}{
		{
			name:  "going to with exclamation",
			query: "I'm going to Paris!",
			want:  models.Intent{Place: "Paris", NeedsWeather: true, NeedsPlaces: true},
		},
		{
			name:  "what to do in",
			query: "What to do in Tokyo",
			want:  models.Intent{Place: "Tokyo", NeedsWeather: false, NeedsPlaces: true},
		},
		{
			name:  "place followed by weather",
			query: "Rome weather",
			want:  models.Intent{Place: "Rome", NeedsWeather: true, NeedsPlaces: false},
		},
		{
			name:  "empty query",
			query: "",
			want:  models.Intent{Place: "", NeedsWeather: true, NeedsPlaces: true},
		},
		{
			name:  "travel to stops at comma",
			query: "I want to travel to Lisbon, what's the temperature?",
			want:  models.Intent{Place: "Lisbon", NeedsWeather: true, NeedsPlaces: false},
		},
		{
			name:  "trip to stops at question mark",
			query: "Planning a trip to Kyoto?",
			want:  models.Intent{Place: "Kyoto", NeedsWeather: false, NeedsPlaces: true},
		},
		{
			name:  "in stops at let",
			query: "I am in Berlin let me know the weather",
			want:  models.Intent{Place: "Berlin", NeedsWeather: true, NeedsPlaces: false},
		},
		{
			name:  "at with question mark",
			query: "Is it raining at Oslo?",
			want:  models.Intent{Place: "Oslo", NeedsWeather: true, NeedsPlaces: false},
		},
		{
			name:  "trailing topic word stripped",
			query: "Madrid places",
			want:  models.Intent{Place: "Madrid", NeedsWeather: false, NeedsPlaces: true},
		},
		{
			name:  "multi word place",
			query: "New York",
			want:  models.Intent{Place: "New York", NeedsWeather: true, NeedsPlaces: true},
		},
		{
			name:  "unmatched query is used whole",
			query: "Saint-Tropez",
			want:  models.Intent{Place: "Saint-Tropez", NeedsWeather: true, NeedsPlaces: true},
		},
		{
			name:  "visit captures the rest",
			query: "I want to visit Buenos Aires",
			want:  models.Intent{Place: "Buenos Aires", NeedsWeather: false, NeedsPlaces: true},
		},
		{
			name:  "climate keyword",
			query: "Climate in Cairo",
			want:  models.Intent{Place: "Cairo", NeedsWeather: true, NeedsPlaces: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.query))
		})
	}
}

func TestAnalyze_WeatherOnlyWithoutPlaceKeywords(t *testing.T) {
	queries := []string{
		"Rome weather",
		"weather in Vienna",
		"Weather at Prague?",
		"how is the weather",
	}
	for _, q := range queries {
		got := Analyze(q)
		assert.True(t, got.NeedsWeather, q)
		assert.False(t, got.NeedsPlaces, q)
	}
}

func TestAnalyze_DefaultsToBoth(t *testing.T) {
	queries := []string{"", "Paris", "Hello there", "I'm going to Paris!", "Athens, Greece"}
	for _, q := range queries {
		got := Analyze(q)
		assert.True(t, got.NeedsWeather, q)
		assert.True(t, got.NeedsPlaces, q)
	}
}

func TestAnalyze_AtLeastOneCategory(t *testing.T) {
	queries := []string{"", "x", "weather", "see Rome", "What to do in Tokyo", "123"}
	for _, q := range queries {
		got := Analyze(q)
		assert.True(t, got.NeedsWeather || got.NeedsPlaces, q)
	}
}

func TestExtractPlace_Idempotent(t *testing.T) {
	queries := []string{
		"I'm going to Paris!",
		"What to do in Tokyo",
		"Rome weather",
		"I want to travel to Lisbon, what's the temperature?",
		"New York",
		"Saint-Tropez",
	}
	for _, q := range queries {
		place := ExtractPlace(q)
		assert.Equal(t, place, ExtractPlace(place), q)
	}
}

func TestExtractPlace_NonEmptyForNonEmptyInput(t *testing.T) {
	for _, q := range []string{"Paris", "weather", "What to do in Tokyo", "going to Rome"} {
		assert.NotEmpty(t, ExtractPlace(q), q)
	}
}
