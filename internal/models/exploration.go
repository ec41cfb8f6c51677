package models

import "time"

// Intent is the structured reading of a free-text travel query.
type Intent struct {
	Place        string `json:"place"`
	NeedsWeather bool   `json:"needsWeather"`
	NeedsPlaces  bool   `json:"needsPlaces"`
}

// Weather holds the current conditions at a place.
type Weather struct {
	Temperature float64 `json:"temperature"`
	RainChance  float64 `json:"rainChance"`
}

// Place is a point of interest near the explored location.
type Place struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Result is what a single exploration produces.
//
// A nil Weather or Places means the category was not requested. An empty,
// non-nil Places means it was requested and nothing was found.
type Result struct {
	ID          string    `json:"id"`
	Query       string    `json:"query"`
	Place       string    `json:"place"`
	DisplayName string    `json:"displayName"`
	Kind        string    `json:"kind"`
	Weather     *Weather  `json:"weather"`
	Places      []Place   `json:"places"`
	CreatedAt   time.Time `json:"createdAt"`
}

// QueryRequest is a query submitted through the message queue.
type QueryRequest struct {
	ID    string `json:"id"`
	Query string `json:"query"`
}
