package analytics

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/soelshaikh/feedback-portal/backend/internal/feedback"
	"github.com/soelshaikh/feedback-portal/backend/internal/feedback/repository"
	"github.com/soelshaikh/feedback-portal/backend/pkg/apperrors"
	"github.com/soelshaikh/feedback-portal/backend/pkg/logger"
	"github.com/soelshaikh/feedback-portal/backend/pkg/metrics"
)

const (
	reportKey  = "report"
	choicesKey = "choices"
)

// Service computes the analytics read models by streaming the repository
// and caches the results until the next submission or the TTL.
type Service struct {
	repo  repository.Repository
	cache Cache
	ttl   time.Duration
	// gen changes on every invalidation; results computed across a change are not cached
	gen atomic.Uint64
}

// NewService returns an analytics service. A nil cache disables caching.
func NewService(repo repository.Repository, cache Cache, ttl time.Duration) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &Service{repo: repo, cache: cache, ttl: ttl}
}

// Report returns the summary, rating distribution and latest comments.
func (s *Service) Report(ctx context.Context) (*Report, error) {
	var rep Report
	if s.cached(ctx, reportKey, &rep) {
		return &rep, nil
	}
	gen := s.gen.Load()
	c := NewReportCollector()
	if err := s.stream(ctx, c.Add); err != nil {
		return nil, err
	}
	rep = c.Report()
	s.store(ctx, gen, reportKey, rep)
	return &rep, nil
}

// Choices returns the option counts for every choice question.
func (s *Service) Choices(ctx context.Context) (Choices, error) {
	var ch Choices
	if s.cached(ctx, choicesKey, &ch) {
		return ch, nil
	}
	gen := s.gen.Load()
	c := NewChoiceCollector()
	if err := s.stream(ctx, c.Add); err != nil {
		return nil, err
	}
	ch = c.Choices()
	s.store(ctx, gen, choicesKey, ch)
	return ch, nil
}

// Invalidate drops the cached read models. Its signature matches the
// feedback service listener so it can be registered for new submissions.
func (s *Service) Invalidate(ctx context.Context, _ *feedback.Record) {
	s.gen.Add(1)
	if err := s.cache.Delete(ctx, reportKey, choicesKey); err != nil {
		logger.Warnw("analytics cache invalidation failed", "error", err)
	}
}

func (s *Service) stream(ctx context.Context, add func(*feedback.Record)) error {
	start := time.Now()
	err := s.repo.Each(ctx, func(r *feedback.Record) error {
		add(r)
		return nil
	})
	metrics.StoreDuration.WithLabelValues("scan").Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Errorw("analytics scan failed", "error", err)
		return apperrors.StoreFailure(err)
	}
	return nil
}

func (s *Service) cached(ctx context.Context, key string, v any) bool {
	ok, err := s.cache.Get(ctx, key, v)
	if err != nil {
		logger.Warnw("analytics cache read failed", "view", key, "error", err)
	}
	if ok {
		metrics.AnalyticsCacheHits.WithLabelValues(key).Inc()
		return true
	}
	metrics.AnalyticsCacheMisses.WithLabelValues(key).Inc()
	return false
}

// store caches v unless an invalidation happened since gen was read.
func (s *Service) store(ctx context.Context, gen uint64, key string, v any) {
	if s.gen.Load() != gen {
		return
	}
	if err := s.cache.Set(ctx, key, v, s.ttl); err != nil {
		logger.Warnw("analytics cache write failed", "view", key, "error", err)
	}
}
