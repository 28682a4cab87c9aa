package feedback

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/soelshaikh/feedback-portal/backend/pkg/apperrors"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// SortField is a sortable record attribute.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByRating    SortField = "rating"
)

// ListQuery is the normalized filter/sort/paginate specification for listing records.
// Zero-valued filters are not applied.
type ListQuery struct {
	Page       int
	Limit      int
	Search     string
	PersonType PersonType
	From       *time.Time
	To         *time.Time
	SortBy     SortField
	Descending bool
}

// DefaultListQuery returns the first page, newest first.
func DefaultListQuery() ListQuery {
	return ListQuery{Page: DefaultPage, Limit: DefaultLimit, SortBy: SortByCreatedAt, Descending: true}
}

// Skip is the number of matching records before the requested page. It
// saturates at math.MaxInt64 so huge page numbers land past the last page.
func (q ListQuery) Skip() int64 {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	pages, limit := int64(q.Page-1), int64(q.Limit)
	if pages > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return pages * limit
}

// ParseListQuery builds a ListQuery from request parameters (page, limit, search,
// personType, sortBy, sortOrder, from, to). Out-of-range paging values fall back
// to defaults or are clamped; malformed filters are validation errors.
func ParseListQuery(v url.Values) (ListQuery, error) {
	q := DefaultListQuery()
	var problems []string

	if n, err := strconv.Atoi(strings.TrimSpace(v.Get("page"))); err == nil && n >= 1 {
		q.Page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v.Get("limit"))); err == nil && n >= 1 {
		if n > MaxLimit {
			n = MaxLimit
		}
		q.Limit = n
	}

	q.Search = strings.TrimSpace(v.Get("search"))

	if pt := strings.TrimSpace(v.Get("personType")); pt != "" {
		q.PersonType = PersonType(pt)
		if !q.PersonType.Valid() {
			problems = append(problems, "personType must be one of: Customer, Technician")
		}
	}

	switch SortField(strings.TrimSpace(v.Get("sortBy"))) {
	case SortByRating:
		q.SortBy = SortByRating
	default:
		q.SortBy = SortByCreatedAt
	}
	q.Descending = !strings.EqualFold(strings.TrimSpace(v.Get("sortOrder")), "asc")

	if raw := strings.TrimSpace(v.Get("from")); raw != "" {
		t, _, err := parseDate(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("from: %v", err))
		} else {
			q.From = &t
		}
	}
	if raw := strings.TrimSpace(v.Get("to")); raw != "" {
		t, dateOnly, err := parseDate(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("to: %v", err))
		} else {
			if dateOnly {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			q.To = &t
		}
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		problems = append(problems, "from must not be after to")
	}

	if len(problems) > 0 {
		return ListQuery{}, apperrors.ValidationFailed("invalid list query", strings.Join(problems, "; "))
	}
	return q, nil
}

func parseDate(raw string) (time.Time, bool, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), true, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, fmt.Errorf("expected YYYY-MM-DD or RFC3339 date, got %q", raw)
}

// Matches reports whether r satisfies every filter of q. Stores that cannot push
// filters down evaluate them with Matches.
func (q ListQuery) Matches(r *Record) bool {
	if q.PersonType != "" && r.PersonType != q.PersonType {
		return false
	}
	if q.From != nil && r.CreatedAt.Before(*q.From) {
		return false
	}
	if q.To != nil && r.CreatedAt.After(*q.To) {
		return false
	}
	if q.Search != "" && !matchesSearch(r, strings.ToLower(q.Search)) {
		return false
	}
	return true
}

func matchesSearch(r *Record, term string) bool {
	for _, field := range []string{r.Name, r.Comment, r.JobRole, r.Location} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	for _, key := range SearchableAnswerKeys {
		for _, v := range r.Answers.Get(key).Values() {
			if strings.Contains(strings.ToLower(v), term) {
				return true
			}
		}
	}
	return false
}

// Less orders two records by the query's sort key. It returns false for equal
// keys so that a stable sort keeps insertion order.
func (q ListQuery) Less(a, b *Record) bool {
	switch q.SortBy {
	case SortByRating:
		if q.Descending {
			return a.Rating > b.Rating
		}
		return a.Rating < b.Rating
	default:
		if q.Descending {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	}
}
