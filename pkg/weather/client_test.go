package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Current(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  bool
		wantTemp float64
		wantRain float64
	}{
		{
			name:     "temperature and rain chance",
			status:   http.StatusOK,
			body:     `{"latitude":48.86,"longitude":2.35,"current":{"time":"2024-05-01T12:00","temperature_2m":17.3,"precipitation_probability":40}}`,
			wantTemp: 17.3,
			wantRain: 40,
		},
		{
			name:     "missing precipitation probability defaults to zero",
			status:   http.StatusOK,
			body:     `{"current":{"temperature_2m":-2.5}}`,
			wantTemp: -2.5,
			wantRain: 0,
		},
		{
			name:     "null precipitation probability defaults to zero",
			status:   http.StatusOK,
			body:     `{"current":{"temperature_2m":21,"precipitation_probability":null}}`,
			wantTemp: 21,
			wantRain: 0,
		},
		{
			name:    "no current block",
			status:  http.StatusOK,
			body:    `{"latitude":1}`,
			wantErr: true,
		},
		{
			name:    "upstream failure",
			status:  http.StatusBadRequest,
			body:    `{"error":true,"reason":"bad latitude"}`,
			wantErr: true,
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `<html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/forecast", r.URL.Path)
				q := r.URL.Query()
				assert.Equal(t, "48.8566", q.Get("latitude"))
				assert.Equal(t, "2.3522", q.Get("longitude"))
				assert.Equal(t, "temperature_2m,precipitation_probability", q.Get("current"))
				assert.Equal(t, "auto", q.Get("timezone"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, time.Second)
			got, err := client.Current(context.Background(), 48.8566, 2.3522)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTemp, got.Temperature)
			assert.Equal(t, tt.wantRain, got.RainChance)
		})
	}
}
