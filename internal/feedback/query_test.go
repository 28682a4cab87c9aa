package feedback

import (
	"math"
	"net/url"
	"testing"
	"time"

	"github.com/soelshaikh/feedback-portal/backend/pkg/apperrors"
	"github.com/stretchr/testify/require"
)

func TestParseListQuery_Defaults(t *testing.T) {
	q, err := ParseListQuery(url.Values{})
	require.NoError(t, err)
	require.Equal(t, DefaultListQuery(), q)
	require.Equal(t, int64(0), q.Skip())
}

func TestParseListQuery_PagingClamps(t *testing.T) {
	cases := []struct {
		page, limit         string
		wantPage, wantLimit int
	}{
		{"3", "10", 3, 10},
		{"0", "0", 1, 20},
		{"-2", "abc", 1, 20},
		{"x", "500", 1, 100},
		{"2", "100", 2, 100},
	}
	for _, tc := range cases {
		q, err := ParseListQuery(url.Values{"page": {tc.page}, "limit": {tc.limit}})
		require.NoError(t, err)
		require.Equal(t, tc.wantPage, q.Page, "page=%s", tc.page)
		require.Equal(t, tc.wantLimit, q.Limit, "limit=%s", tc.limit)
	}

	q, _ := ParseListQuery(url.Values{"page": {"3"}, "limit": {"10"}})
	require.Equal(t, int64(20), q.Skip())
}

func TestListQuery_SkipSaturates(t *testing.T) {
	q, err := ParseListQuery(url.Values{"page": {"4611686018427387904"}, "limit": {"100"}})
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), q.Skip())

	q.Page = math.MaxInt
	q.Limit = 1
	require.Equal(t, int64(math.MaxInt64-1), q.Skip())
}

func TestParseListQuery_SortAndFilters(t *testing.T) {
	q, err := ParseListQuery(url.Values{
		"sortBy":     {"rating"},
		"sortOrder":  {"ASC"},
		"personType": {"Technician"},
		"search":     {"  service "},
		"from":       {"2024-03-01"},
		"to":         {"2024-03-02"},
	})
	require.NoError(t, err)
	require.Equal(t, SortByRating, q.SortBy)
	require.False(t, q.Descending)
	require.Equal(t, Technician, q.PersonType)
	require.Equal(t, "service", q.Search)
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *q.From)
	require.Equal(t, time.Date(2024, 3, 2, 23, 59, 59, 999999999, time.UTC), *q.To)

	q, err = ParseListQuery(url.Values{"sortBy": {"name"}, "sortOrder": {"sideways"}})
	require.NoError(t, err)
	require.Equal(t, SortByCreatedAt, q.SortBy)
	require.True(t, q.Descending)
}

func TestParseListQuery_RFC3339Bounds(t *testing.T) {
	q, err := ParseListQuery(url.Values{"to": {"2024-03-02T10:00:00Z"}})
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), *q.To)
}

func TestParseListQuery_Invalid(t *testing.T) {
	for _, v := range []url.Values{
		{"personType": {"Admin"}},
		{"from": {"yesterday"}},
		{"to": {"03/02/2024"}},
		{"from": {"2024-03-05"}, "to": {"2024-03-01"}},
	} {
		_, err := ParseListQuery(v)
		require.True(t, apperrors.Is(err, apperrors.ValidationError), "values %v: %v", v, err)
	}
}

func TestListQuery_Matches(t *testing.T) {
	created := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	r := &Record{
		Name:       "Ravi",
		PersonType: Customer,
		Comment:    "Great Service",
		Answers:    Answers{"q3": Scalar("Live tracking"), "q8": Scalar("UPI"), "q10": MultiSelect("Price")},
		CreatedAt:  created,
	}

	q := DefaultListQuery()
	q.Search = "service"
	require.True(t, q.Matches(r), "case-insensitive substring on comment")

	q.Search = "TRACK"
	require.True(t, q.Matches(r), "answers.q3 is searchable")

	q.Search = "upi"
	require.False(t, q.Matches(r), "answers.q8 is not searchable")

	q.Search = "price"
	require.False(t, q.Matches(r), "answers.q10 is not searchable")

	q = DefaultListQuery()
	q.PersonType = Technician
	require.False(t, q.Matches(r))

	from := created
	to := created
	q = DefaultListQuery()
	q.From, q.To = &from, &to
	require.True(t, q.Matches(r), "bounds are inclusive")

	later := created.Add(time.Second)
	q.From = &later
	require.False(t, q.Matches(r))
}

func TestListQuery_Less(t *testing.T) {
	a := &Record{Rating: 2, CreatedAt: time.Unix(100, 0)}
	b := &Record{Rating: 4, CreatedAt: time.Unix(200, 0)}

	q := DefaultListQuery()
	require.True(t, q.Less(b, a))
	q.Descending = false
	require.True(t, q.Less(a, b))
	q.SortBy = SortByRating
	require.True(t, q.Less(a, b))
	require.False(t, q.Less(a, a))
}

func TestPageCount(t *testing.T) {
	for _, tc := range []struct {
		total int64
		limit int
		want  int
	}{{0, 20, 0}, {1, 20, 1}, {20, 20, 1}, {21, 20, 2}, {100, 7, 15}} {
		require.Equal(t, tc.want, PageCount(tc.total, tc.limit), "total=%d limit=%d", tc.total, tc.limit)
	}
}
