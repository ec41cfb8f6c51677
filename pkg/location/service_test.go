package location_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel/pkg/location"
)

func TestGeocode(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   error
		anyErr    bool
		wantLat   float64
		wantLon   float64
		wantLabel string
	}{
		{
			name:      "first result is used",
			status:    http.StatusOK,
			body:      `[{"lat":"48.8534951","lon":"2.3483915","display_name":"Paris, Île-de-France, France"},{"lat":"1","lon":"1","display_name":"Paris, Texas"}]`,
			wantLat:   48.8534951,
			wantLon:   2.3483915,
			wantLabel: "Paris, Île-de-France, France",
		},
		{
			name:    "empty result is not found",
			status:  http.StatusOK,
			body:    `[]`,
			wantErr: location.ErrNotFound,
		},
		{
			name:   "upstream error status",
			status: http.StatusServiceUnavailable,
			body:   `oops`,
			anyErr: true,
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `{"not":"an array"}`,
			anyErr: true,
		},
		{
			name:   "unparseable latitude",
			status: http.StatusOK,
			body:   `[{"lat":"north","lon":"2","display_name":"x"}]`,
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery, gotAgent, gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.Query().Get("q")
				gotAgent = r.Header.Get("User-Agent")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := location.NewClient(server.URL, "test-agent", time.Second)
			got, err := client.Geocode(context.Background(), "Paris")

			assert.Equal(t, "/search", gotPath)
			assert.Equal(t, "Paris", gotQuery)
			assert.Equal(t, "test-agent", gotAgent)

			switch {
			case tt.wantErr != nil:
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, got)
			case tt.anyErr:
				assert.Error(t, err)
				assert.False(t, errors.Is(err, location.ErrNotFound))
			default:
				require.NoError(t, err)
				assert.InDelta(t, tt.wantLat, got.Lat, 1e-9)
				assert.InDelta(t, tt.wantLon, got.Lon, 1e-9)
				assert.Equal(t, tt.wantLabel, got.DisplayName)
			}
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := location.NewClient(server.URL+"/", "", time.Second)
	_, err := client.Geocode(context.Background(), "Nowhere")
	assert.ErrorIs(t, err, location.ErrNotFound)
	assert.Equal(t, location.DefaultUserAgent, gotAgent)
}
