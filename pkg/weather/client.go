// Package weather reads current conditions from the Open-Meteo forecast API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"travel/internal/models"
)

const DefaultBaseURL = "https://api.open-meteo.com"

// ForecastResponse mirrors the parts of the forecast payload we read.
type ForecastResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Current   *struct {
		Time                     string   `json:"time"`
		Temperature2m            float64  `json:"temperature_2m"`
		PrecipitationProbability *float64 `json:"precipitation_probability"`
	} `json:"current"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Current returns the temperature and chance of rain at the given position.
// A missing precipitation probability is reported as 0.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*models.Weather, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("current", "temperature_2m,precipitation_probability")
	params.Set("timezone", "auto")

	u := fmt.Sprintf("%s/v1/forecast?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open-meteo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open-meteo: unexpected status: %s", resp.Status)
	}

	var forecast ForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("open-meteo: decode response: %w", err)
	}
	if forecast.Current == nil {
		return nil, fmt.Errorf("open-meteo: response has no current conditions")
	}

	w := &models.Weather{Temperature: forecast.Current.Temperature2m}
	if p := forecast.Current.PrecipitationProbability; p != nil {
		w.RainChance = *p
	}
	return w, nil
}
