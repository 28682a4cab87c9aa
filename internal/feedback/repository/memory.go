package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/soelshaikh/feedback-portal/backend/internal/feedback"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory repository used for tests and for running the
// service without MongoDB. IDs are ObjectID hex strings so id validation
// behaves like the Mongo store.
type MemoryRepo struct {
	mu      sync.RWMutex
	records []*feedback.Record
	byID    map[string]int
	now     func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]int), now: time.Now}
}

// WithClock overrides the creation timestamp source.
func (m *MemoryRepo) WithClock(now func() time.Time) *MemoryRepo {
	m.now = now
	return m
}

func (m *MemoryRepo) Create(ctx context.Context, r *feedback.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = primitive.NewObjectID().Hex()
	// Mongo stores millisecond precision
	r.CreatedAt = m.now().UTC().Truncate(time.Millisecond)
	m.byID[r.ID] = len(m.records)
	m.records = append(m.records, clone(r))
	return nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*feedback.Record, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ErrInvalidID
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i, ok := m.byID[id]; ok {
		return clone(m.records[i]), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) List(ctx context.Context, q feedback.ListQuery) ([]*feedback.Record, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	m.mu.RLock()
	matched := make([]*feedback.Record, 0, len(m.records))
	for _, r := range m.records {
		if q.Matches(r) {
			matched = append(matched, r)
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool { return q.Less(matched[i], matched[j]) })

	total := int64(len(matched))
	start := q.Skip()
	if start < 0 || start >= total {
		return []*feedback.Record{}, total, nil
	}
	end := start + int64(q.Limit)
	if end > total {
		end = total
	}
	out := make([]*feedback.Record, 0, end-start)
	for _, r := range matched[start:end] {
		out = append(out, clone(r))
	}
	return out, total, nil
}

func (m *MemoryRepo) Each(ctx context.Context, fn func(*feedback.Record) error) error {
	m.mu.RLock()
	snapshot := make([]*feedback.Record, len(m.records))
	copy(snapshot, m.records)
	m.mu.RUnlock()

	for _, r := range snapshot {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(clone(r)); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryRepo) Ping(ctx context.Context) error { return ctx.Err() }

func clone(r *feedback.Record) *feedback.Record {
	c := *r
	c.Answers = make(feedback.Answers, len(r.Answers))
	for k, v := range r.Answers {
		c.Answers[k] = v
	}
	return &c
}
