package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/soelshaikh/feedback-portal/backend/internal/feedback"
	"github.com/soelshaikh/feedback-portal/backend/internal/feedback/repository"
	"github.com/soelshaikh/feedback-portal/backend/internal/storage"
	"github.com/soelshaikh/feedback-portal/backend/pkg/apperrors"
	"github.com/soelshaikh/feedback-portal/backend/pkg/logger"
	"github.com/soelshaikh/feedback-portal/backend/pkg/metrics"
)

const contentType = "text/csv"

// Service renders the feedback collection as CSV, either streamed to a
// writer or uploaded as a snapshot to object storage.
type Service struct {
	repo       repository.Repository
	store      storage.ObjectStore
	log        Log
	presignTTL time.Duration
	now        func() time.Time
}

// NewService returns an export service. A nil store disables snapshots; a
// nil log keeps snapshot metadata in memory.
func NewService(repo repository.Repository, store storage.ObjectStore, log Log, presignTTL time.Duration) *Service {
	if log == nil {
		log = NewMemoryLog()
	}
	if presignTTL <= 0 {
		presignTTL = 15 * time.Minute
	}
	return &Service{repo: repo, store: store, log: log, presignTTL: presignTTL, now: time.Now}
}

// SnapshotsEnabled reports whether object storage is configured.
func (s *Service) SnapshotsEnabled() bool { return s.store != nil }

// WriteCSV streams every record to w and returns the number written.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer) (int, error) {
	cw, err := NewWriter(w)
	if err != nil {
		return 0, err
	}
	err = s.repo.Each(ctx, func(r *feedback.Record) error {
		return cw.Write(r)
	})
	if err != nil {
		logger.Errorw("csv export scan failed", "error", err, "written", cw.Count())
		return cw.Count(), apperrors.StoreFailure(err)
	}
	return cw.Count(), cw.Flush()
}

// Snapshot uploads a CSV of the whole collection and records its metadata.
func (s *Service) Snapshot(ctx context.Context, createdBy string) (*Export, error) {
	if s.store == nil {
		return nil, apperrors.Disabled("object storage")
	}
	e, err := s.snapshot(ctx, createdBy)
	if err != nil {
		metrics.ExportsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.ExportsTotal.WithLabelValues("success").Inc()
	logger.Infow("export snapshot stored", "exportId", e.ID, "key", e.Key, "count", e.Count)
	return e, nil
}

func (s *Service) snapshot(ctx context.Context, createdBy string) (*Export, error) {
	var buf bytes.Buffer
	n, err := s.WriteCSV(ctx, &buf)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	id := uuid.New().String()
	e := &Export{
		ID:        id,
		Key:       fmt.Sprintf("exports/%s/feedback-%s.csv", now.Format("2006-01-02"), id),
		Count:     n,
		Size:      int64(buf.Len()),
		CreatedBy: createdBy,
		CreatedAt: now,
	}
	if err := s.store.UploadFile(ctx, e.Key, &buf, e.Size, contentType); err != nil {
		logger.Errorw("export upload failed", "key", e.Key, "error", err)
		return nil, apperrors.StoreFailure(err)
	}
	if err := s.log.Save(ctx, e); err != nil {
		logger.Errorw("export metadata save failed", "exportId", e.ID, "error", err)
		return nil, apperrors.StoreFailure(err)
	}
	if err := s.presign(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Get returns export metadata with a freshly presigned download URL.
func (s *Service) Get(ctx context.Context, id string) (*Export, error) {
	if s.store == nil {
		return nil, apperrors.Disabled("object storage")
	}
	e, err := s.log.Load(ctx, id)
	if errors.Is(err, ErrExportNotFound) {
		return nil, apperrors.NotFound("export", id)
	}
	if err != nil {
		return nil, apperrors.StoreFailure(err)
	}
	if err := s.presign(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) presign(ctx context.Context, e *Export) error {
	u, err := s.store.GetPresignedURL(ctx, e.Key, s.presignTTL)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return apperrors.NotFound("export object", e.Key)
	}
	if err != nil {
		logger.Errorw("presign failed", "key", e.Key, "error", err)
		return apperrors.StoreFailure(err)
	}
	e.URL = u
	return nil
}
