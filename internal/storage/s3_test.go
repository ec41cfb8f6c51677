package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"travel/internal/models"
)

// fakeS3 answers the handful of path-style S3 calls the service makes.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
	puts    []string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	isBucket := !strings.Contains(strings.TrimSuffix(path, "/"), "/")
	body, exists := f.objects[path]

	writeHeaders := func() {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Header().Set("ETag", `"0123456789abcdef"`)
		w.Header().Set("Last-Modified", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).Format(http.TimeFormat))
	}

	switch {
	case isBucket && r.Method == http.MethodHead:
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodHead && exists:
		writeHeaders()
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodHead:
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodPut:
		f.puts = append(f.puts, path)
		w.Header().Set("ETag", `"0123456789abcdef"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>not found</Message></Error>`))
	}
}

func newTestS3(t *testing.T, objects map[string]string) (*S3Service, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: objects}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	s, err := NewS3Service(S3Options{
		Endpoint:  u.Host,
		AccessKey: "minio",
		SecretKey: "minio123",
		Region:    "us-east-1",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	return s, fake
}

func TestNewS3Service_MissingSettings(t *testing.T) {
	_, err := NewS3Service(S3Options{Endpoint: "localhost:9000"}, nil)
	assert.Error(t, err)
}

func TestS3Service_StoreResult(t *testing.T) {
	s, fake := newTestS3(t, map[string]string{})

	r := &models.Result{ID: "abc", Place: "New York"}
	require.NoError(t, s.StoreResult(context.Background(), "travel-results", r))

	assert.Equal(t, []string{"travel-results/results/new-york/abc.json"}, fake.puts)
}

func TestS3Service_StoreResult_SkipsExisting(t *testing.T) {
	s, fake := newTestS3(t, map[string]string{
		"travel-results/results/paris/abc.json": `{"id":"abc"}`,
	})

	r := &models.Result{ID: "abc", Place: "Paris"}
	require.NoError(t, s.StoreResult(context.Background(), "travel-results", r))
	assert.Empty(t, fake.puts)
}

func TestS3Service_CreateBucket_Existing(t *testing.T) {
	s, _ := newTestS3(t, map[string]string{})

	ok, err := s.CreateBucket(context.Background(), "travel-results", "us-east-1")
	require.NoError(t, err)
	assert.True(t, ok)
}
