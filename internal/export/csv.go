package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/soelshaikh/feedback-portal/backend/internal/feedback"
)

// Header is the first CSV row. Answer columns follow the question catalogue.
func Header() []string {
	h := []string{"id", "createdAt", "name", "personType", "jobRole", "location", "rating", "comment"}
	for _, q := range feedback.Questions {
		h = append(h, q.ID)
	}
	return h
}

// Row renders one record in Header order. Multi-select answers are joined with ", ".
func Row(r *feedback.Record) []string {
	row := []string{
		r.ID,
		r.CreatedAt.UTC().Format(time.RFC3339),
		r.Name,
		string(r.PersonType),
		r.JobRole,
		r.Location,
		strconv.FormatFloat(r.Rating, 'f', -1, 64),
		r.Comment,
	}
	for _, q := range feedback.Questions {
		row = append(row, r.Answers.Get(q.ID).Text())
	}
	return row
}

// Writer streams records as CSV.
type Writer struct {
	w     *csv.Writer
	count int
}

// NewWriter writes the header immediately.
func NewWriter(w io.Writer) (*Writer, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return nil, err
	}
	return &Writer{w: cw}, nil
}

func (w *Writer) Write(r *feedback.Record) error {
	if err := w.w.Write(Row(r)); err != nil {
		return err
	}
	w.count++
	return nil
}

// Count is the number of records written so far.
func (w *Writer) Count() int { return w.count }

func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}
