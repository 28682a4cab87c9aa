package feedback

import (
	"encoding/json"
	"time"
)

// PersonType identifies who submitted the survey.
type PersonType string

const (
	Customer   PersonType = "Customer"
	Technician PersonType = "Technician"
)

// Valid reports whether p is one of the enumerated person types.
func (p PersonType) Valid() bool {
	return p == Customer || p == Technician
}

// Record is one stored feedback submission. Records are never updated in place.
type Record struct {
	ID         string     `json:"_id"`
	Name       string     `json:"name"`
	PersonType PersonType `json:"personType"`
	JobRole    string     `json:"jobRole,omitempty"`
	Location   string     `json:"location,omitempty"`
	Rating     float64    `json:"rating"`
	Comment    string     `json:"comment,omitempty"`
	Answers    Answers    `json:"answers"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Submission is the raw payload accepted by the create endpoint.
// Rating is kept as a json.Number so that "4" and 4 are both accepted.
type Submission struct {
	Name       string      `json:"name"`
	PersonType string      `json:"personType"`
	JobRole    string      `json:"jobRole"`
	Location   string      `json:"location"`
	Rating     json.Number `json:"rating"`
	Comment    string      `json:"comment"`
	Answers    Answers     `json:"answers"`
}

// CommentEntry is the projection used by the latest comments view.
type CommentEntry struct {
	Name      string    `json:"name" bson:"name"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Page is one page of a filtered, sorted listing.
type Page struct {
	Feedbacks []*Record `json:"feedbacks"`
	Page      int       `json:"page"`
	Limit     int       `json:"limit"`
	Total     int64     `json:"total"`
	Pages     int       `json:"pages"`
}

// NewPage assembles a page and derives the page count from total and limit.
func NewPage(records []*Record, q ListQuery, total int64) *Page {
	if records == nil {
		records = []*Record{}
	}
	return &Page{
		Feedbacks: records,
		Page:      q.Page,
		Limit:     q.Limit,
		Total:     total,
		Pages:     PageCount(total, q.Limit),
	}
}

// PageCount returns ceil(total/limit).
func PageCount(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
