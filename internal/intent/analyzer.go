// Package intent turns a free-text travel query into a structured request:
// the place the user is asking about and which kinds of data they want.
//
// The analysis is a short chain of regular expressions and keyword checks.
// It never fails; odd input simply produces an odd place name.
package intent

import (
	"regexp"
	"strings"

	"travel/internal/models"
)

// Place extractors, tried in order. The first one that captures wins.
var extractors = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:going to|visit|trip to|travel to)\s+(.+?)(?:\?|,|$)`),
	regexp.MustCompile(`(?i)\b(?:in|at)\s+([A-Z][a-zA-Z\s]+?)(?:\?|,|what|let|$)`),
	regexp.MustCompile(`(?i)^([A-Z][a-zA-Z\s]+?)(?:\s+weather|\s+places|\s+trip)?$`),
}

var (
	leadingPreposition = regexp.MustCompile(`(?i)^(?:to|in|at)\s+`)
	trailingTopic      = regexp.MustCompile(`(?i)\s+(?:weather|temperature|places|attractions|trip|plan).*$`)
)

const trailingPunctuation = "!?.,;: \t\r\n"

var (
	weatherKeywords = []string{"weather", "temperature", "temp", "rain", "climate"}
	placesKeywords  = []string{"place", "visit", "attraction", "see", "do", "trip", "plan"}
)

// Analyze returns the intent behind query. If the query mentions neither
// weather nor places, both are requested.
func Analyze(query string) models.Intent {
	lower := strings.ToLower(query)

	needsWeather := containsAny(lower, weatherKeywords)
	needsPlaces := containsAny(lower, placesKeywords)
	if !needsWeather && !needsPlaces {
		needsWeather, needsPlaces = true, true
	}

	return models.Intent{
		Place:        ExtractPlace(query),
		NeedsWeather: needsWeather,
		NeedsPlaces:  needsPlaces,
	}
}

// ExtractPlace isolates the place name in query. When no extractor matches
// the whole query is used as the candidate.
func ExtractPlace(query string) string {
	place := query
	for _, re := range extractors {
		if m := re.FindStringSubmatch(query); len(m) > 1 && m[1] != "" {
			place = strings.TrimSpace(m[1])
			break
		}
	}

	place = strings.TrimSpace(leadingPreposition.ReplaceAllString(place, ""))
	place = strings.TrimSpace(trailingTopic.ReplaceAllString(place, ""))
	return strings.TrimRight(place, trailingPunctuation)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
