package service

import (
	"context"
	"errors"
	"time"

	"github.com/soelshaikh/feedback-portal/backend/internal/feedback"
	"github.com/soelshaikh/feedback-portal/backend/internal/feedback/repository"
	"github.com/soelshaikh/feedback-portal/backend/pkg/apperrors"
	"github.com/soelshaikh/feedback-portal/backend/pkg/logger"
	"github.com/soelshaikh/feedback-portal/backend/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service defines the feedback operations used by the handler layer. Errors
// are *apperrors.AppError values.
type Service interface {
	Create(ctx context.Context, s feedback.Submission) (*feedback.Record, error)
	Get(ctx context.Context, id string) (*feedback.Record, error)
	List(ctx context.Context, q feedback.ListQuery) (*feedback.Page, error)
	Ready(ctx context.Context) error
}

// Listener is notified after a record has been stored.
type Listener func(ctx context.Context, r *feedback.Record)

// New returns a Service over repo. Listeners run synchronously after each
// successful create.
func New(repo repository.Repository, listeners ...Listener) Service {
	return &feedbackService{repo: repo, listeners: listeners}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService(listeners ...Listener) Service {
	return New(repository.NewMemoryRepo(), listeners...)
}

// NewMongoService returns a Service backed by a MongoDB collection.
// Caller is responsible for creating the collection (and client) and passing it in.
func NewMongoService(ctx context.Context, col *mongo.Collection, listeners ...Listener) Service {
	return New(repository.NewMongoRepo(ctx, col), listeners...)
}

type feedbackService struct {
	repo      repository.Repository
	listeners []Listener
}

func (s *feedbackService) Create(ctx context.Context, sub feedback.Submission) (*feedback.Record, error) {
	rec, err := feedback.Validate(sub)
	if err != nil {
		metrics.FeedbackRejected.Inc()
		return nil, err
	}

	start := time.Now()
	err = s.repo.Create(ctx, rec)
	metrics.StoreDuration.WithLabelValues("create").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, storeError("create", err)
	}

	metrics.FeedbackCreated.WithLabelValues(string(rec.PersonType)).Inc()
	logger.Infow("feedback stored", "feedbackId", rec.ID, "personType", rec.PersonType, "rating", rec.Rating)
	for _, l := range s.listeners {
		l(ctx, rec)
	}
	return rec, nil
}

func (s *feedbackService) Get(ctx context.Context, id string) (*feedback.Record, error) {
	start := time.Now()
	rec, err := s.repo.Get(ctx, id)
	metrics.StoreDuration.WithLabelValues("get").Observe(time.Since(start).Seconds())
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return nil, apperrors.InvalidID("feedback", id)
	case errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.NotFound("feedback", id)
	case err != nil:
		return nil, storeError("get", err)
	}
	return rec, nil
}

func (s *feedbackService) List(ctx context.Context, q feedback.ListQuery) (*feedback.Page, error) {
	start := time.Now()
	records, total, err := s.repo.List(ctx, q)
	metrics.StoreDuration.WithLabelValues("list").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, storeError("list", err)
	}
	return feedback.NewPage(records, q, total), nil
}

func (s *feedbackService) Ready(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return storeError("ping", err)
	}
	return nil
}

func storeError(op string, err error) error {
	logger.Errorw("feedback store failure", "operation", op, "error", err)
	return apperrors.StoreFailure(err)
}
