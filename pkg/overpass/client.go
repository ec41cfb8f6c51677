// Package overpass finds tourist attractions around a point using the
// OpenStreetMap Overpass API.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"travel/internal/models"
)

const (
	DefaultBaseURL = "https://overpass-api.de"
	DefaultRadius  = 10000 // meters
	DefaultLimit   = 5
	// elements requested from the server; only named ones are kept.
	maxElements = 20
)

// Element is a node or way returned by the interpreter.
type Element struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// Response is the interpreter's JSON output.
type Response struct {
	Elements []Element `json:"elements"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	radius     int
	limit      int
}

func NewClient(baseURL string, radius, limit int, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if radius <= 0 {
		radius = DefaultRadius
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		radius:     radius,
		limit:      limit,
	}
}

// Query builds the Overpass QL selecting attractions, museums and historic
// sites within radius meters of the point.
func Query(lat, lon float64, radius int) string {
	around := fmt.Sprintf("(around:%d,%s,%s)", radius,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64))

	var b strings.Builder
	b.WriteString("[out:json];\n(\n")
	for _, kind := range []string{"node", "way"} {
		for _, filter := range []string{`["tourism"="attraction"]`, `["tourism"="museum"]`, `["historic"]`} {
			fmt.Fprintf(&b, "  %s%s%s;\n", kind, filter, around)
		}
	}
	fmt.Fprintf(&b, ");\nout center %d;\n", maxElements)
	return b.String()
}

// Nearby returns up to limit named points of interest around the position.
// The result is never nil.
func (c *Client) Nearby(ctx context.Context, lat, lon float64) ([]models.Place, error) {
	body := strings.NewReader(Query(lat, lon, c.radius))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/interpreter", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass: unexpected status: %s", resp.Status)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("overpass: decode response: %w", err)
	}
	return Places(out.Elements, c.limit), nil
}

// Places keeps the named elements, in order, and labels each with its type.
// A limit below 1 means DefaultLimit.
func Places(elements []Element, limit int) []models.Place {
	if limit <= 0 {
		limit = DefaultLimit
	}
	places := make([]models.Place, 0, limit)
	for _, el := range elements {
		if len(places) == limit {
			break
		}
		name := el.Tags["name"]
		if name == "" {
			continue
		}
		places = append(places, models.Place{Name: name, Type: placeType(el.Tags)})
	}
	return places
}

func placeType(tags map[string]string) string {
	if t := tags["tourism"]; t != "" {
		return t
	}
	if t := tags["historic"]; t != "" {
		return t
	}
	return "attraction"
}
