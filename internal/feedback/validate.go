package feedback

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/soelshaikh/feedback-portal/backend/pkg/apperrors"
)

const (
	MaxNameLen     = 200
	MaxJobRoleLen  = 100
	MaxLocationLen = 100
	MaxCommentLen  = 1000

	MinRating = 0.0
	MaxRating = 5.0
)

// Validate checks a submission and returns the normalized record candidate.
// ID and CreatedAt are left for the store to assign. Every failing field is
// reported in a single validation error.
func Validate(s Submission) (*Record, error) {
	var problems []string

	name := truncate(strings.TrimSpace(s.Name), MaxNameLen)
	if name == "" {
		problems = append(problems, "name is required")
	}

	pt := PersonType(s.PersonType)
	switch {
	case s.PersonType == "":
		problems = append(problems, "personType is required")
	case !pt.Valid():
		problems = append(problems, "personType must be one of: Customer, Technician")
	}

	rating, problem := parseRating(s.Rating.String())
	if problem != "" {
		problems = append(problems, problem)
	}

	if len(problems) > 0 {
		return nil, apperrors.ValidationFailed("invalid feedback submission", strings.Join(problems, "; "))
	}

	answers := s.Answers
	if answers == nil {
		answers = Answers{}
	}

	return &Record{
		Name:       name,
		PersonType: pt,
		JobRole:    truncate(s.JobRole, MaxJobRoleLen),
		Location:   truncate(s.Location, MaxLocationLen),
		Rating:     rating,
		Comment:    truncate(s.Comment, MaxCommentLen),
		Answers:    answers,
	}, nil
}

func parseRating(raw string) (float64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "rating is required"
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, "rating must be a number"
	}
	if v < MinRating || v > MaxRating {
		return 0, "rating must be between 0 and 5"
	}
	return v, ""
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
