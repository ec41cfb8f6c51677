package journal

import (
	"context"

	"travel/internal/models"
)

type Publisher interface {
	PublishJSON(ctx context.Context, key string, value any) error
}

// PublishSink sends results to a message topic keyed by result ID.
type PublishSink struct {
	publisher Publisher
}

func NewPublishSink(p Publisher) *PublishSink { return &PublishSink{publisher: p} }

func (s *PublishSink) Name() string { return "kafka" }

func (s *PublishSink) Write(ctx context.Context, r *models.Result) error {
	return s.publisher.PublishJSON(ctx, r.ID, r)
}

type ResultArchive interface {
	StoreResult(ctx context.Context, bucket string, r *models.Result) error
}

// ArchiveSink stores results as JSON objects in a bucket.
type ArchiveSink struct {
	archive ResultArchive
	bucket  string
}

func NewArchiveSink(a ResultArchive, bucket string) *ArchiveSink {
	return &ArchiveSink{archive: a, bucket: bucket}
}

func (s *ArchiveSink) Name() string { return "archive" }

func (s *ArchiveSink) Write(ctx context.Context, r *models.Result) error {
	return s.archive.StoreResult(ctx, s.bucket, r)
}

type HistoryWriter interface {
	SaveResult(ctx context.Context, r *models.Result) error
}

// HistorySink appends results to the search history table.
type HistorySink struct {
	history HistoryWriter
}

func NewHistorySink(h HistoryWriter) *HistorySink { return &HistorySink{history: h} }

func (s *HistorySink) Name() string { return "history" }

func (s *HistorySink) Write(ctx context.Context, r *models.Result) error {
	return s.history.SaveResult(ctx, r)
}
