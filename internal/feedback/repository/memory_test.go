package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/soelshaikh/feedback-portal/backend/internal/feedback"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// tickingClock returns a clock that advances one minute per call.
func tickingClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func seed(t *testing.T, r *MemoryRepo, n int) []*feedback.Record {
	t.Helper()
	out := make([]*feedback.Record, 0, n)
	for i := 0; i < n; i++ {
		pt := feedback.Customer
		if i%3 == 0 {
			pt = feedback.Technician
		}
		rec := &feedback.Record{
			Name:       fmt.Sprintf("user-%02d", i),
			PersonType: pt,
			Rating:     float64(i % 6),
			Answers:    feedback.Answers{},
		}
		require.NoError(t, r.Create(context.Background(), rec))
		out = append(out, rec)
	}
	return out
}

func TestMemoryRepoCreateGet(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	rec := &feedback.Record{Name: "Asha", PersonType: feedback.Customer, Rating: 4, Answers: feedback.Answers{"q1": feedback.Scalar("Hard")}}
	require.NoError(t, r.Create(ctx, rec))
	require.NotEmpty(t, rec.ID)
	require.False(t, rec.CreatedAt.IsZero())

	got, err := r.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec, got)

	// returned records are copies
	got.Answers["q1"] = feedback.Scalar("Average")
	again, _ := r.Get(ctx, rec.ID)
	require.Equal(t, "Hard", again.Answers["q1"].Text())
}

func TestMemoryRepoGet_InvalidVersusMissing(t *testing.T) {
	r := NewMemoryRepo()
	_, err := r.Get(context.Background(), "not-an-id")
	require.True(t, errors.Is(err, ErrInvalidID))

	_, err = r.Get(context.Background(), primitive.NewObjectID().Hex())
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryRepoList_PagesPartitionResult(t *testing.T) {
	r := NewMemoryRepo().WithClock(tickingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	seed(t, r, 23)
	ctx := context.Background()

	for _, sortBy := range []string{"createdAt", "rating"} {
		for _, order := range []string{"asc", "desc"} {
			q, err := feedback.ParseListQuery(url.Values{"limit": {"5"}, "sortBy": {sortBy}, "sortOrder": {order}})
			require.NoError(t, err)

			all := q
			all.Limit = 100
			full, total, err := r.List(ctx, all)
			require.NoError(t, err)
			require.Equal(t, int64(23), total)

			var union []*feedback.Record
			pages := feedback.PageCount(total, q.Limit)
			require.Equal(t, 5, pages)
			for p := 1; p <= pages; p++ {
				q.Page = p
				page, tot, err := r.List(ctx, q)
				require.NoError(t, err)
				require.Equal(t, total, tot)
				union = append(union, page...)
			}
			require.Equal(t, full, union, "sortBy=%s order=%s", sortBy, order)

			q.Page = pages + 1
			beyond, _, err := r.List(ctx, q)
			require.NoError(t, err)
			require.Empty(t, beyond)
		}
	}
}

func TestMemoryRepoList_HugePageIsEmpty(t *testing.T) {
	r := NewMemoryRepo()
	seed(t, r, 1)
	q, err := feedback.ParseListQuery(url.Values{"page": {"4611686018427387904"}, "limit": {"100"}})
	require.NoError(t, err)

	got, total, err := r.List(context.Background(), q)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestMemoryRepoList_TiesKeepInsertionOrder(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	var ids []string
	for i := 0; i < 4; i++ {
		rec := &feedback.Record{Name: "same", PersonType: feedback.Customer, Rating: 3}
		require.NoError(t, r.Create(ctx, rec))
		ids = append(ids, rec.ID)
	}
	q := feedback.DefaultListQuery()
	q.SortBy = feedback.SortByRating
	got, _, err := r.List(ctx, q)
	require.NoError(t, err)
	for i, rec := range got {
		require.Equal(t, ids[i], rec.ID)
	}
}

func TestMemoryRepoList_Filters(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, &feedback.Record{Name: "A", PersonType: feedback.Customer, Rating: 5, Comment: "Great Service"}))
	require.NoError(t, r.Create(ctx, &feedback.Record{Name: "B", PersonType: feedback.Technician, Rating: 3}))

	q := feedback.DefaultListQuery()
	q.Search = "service"
	got, total, err := r.List(ctx, q)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "A", got[0].Name)

	q = feedback.DefaultListQuery()
	q.PersonType = feedback.Technician
	got, total, err = r.List(ctx, q)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "B", got[0].Name)
}

func TestMemoryRepoEach(t *testing.T) {
	r := NewMemoryRepo()
	recs := seed(t, r, 4)
	var names []string
	require.NoError(t, r.Each(context.Background(), func(rec *feedback.Record) error {
		names = append(names, rec.Name)
		return nil
	}))
	require.Equal(t, []string{recs[0].Name, recs[1].Name, recs[2].Name, recs[3].Name}, names)

	stop := errors.New("stop")
	calls := 0
	err := r.Each(context.Background(), func(*feedback.Record) error {
		calls++
		return stop
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 1, calls)
}
