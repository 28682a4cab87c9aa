package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/soelshaikh/feedback-portal/backend/internal/feedback"
)

// LatestCommentsLimit is the number of comments shown on the dashboard.
const LatestCommentsLimit = 10

// Summary holds the headline numbers of the dashboard.
type Summary struct {
	Total           int     `json:"total"`
	AvgRating       float64 `json:"avgRating"`
	CustomerCount   int     `json:"customerCount"`
	TechnicianCount int     `json:"technicianCount"`
}

// Report is the analytics read model served by GET /api/analytics.
type Report struct {
	Summary        Summary                 `json:"summary"`
	Distribution   []Bucket                `json:"distribution"`
	LatestComments []feedback.CommentEntry `json:"latestComments"`
}

// Choices maps each choice question id to its option counts.
type Choices map[string][]OptionCount

// ReportCollector accumulates a Report one record at a time, so the whole
// collection never has to be held in memory.
type ReportCollector struct {
	total       int
	sum         float64
	customers   int
	technicians int
	hist        *Histogram
	latest      []latestEntry
	seq         int
}

type latestEntry struct {
	entry feedback.CommentEntry
	seq   int
}

func NewReportCollector() *ReportCollector {
	return &ReportCollector{hist: NewHistogram(RatingBoundaries...)}
}

func (c *ReportCollector) Add(r *feedback.Record) {
	c.total++
	c.sum += r.Rating
	switch r.PersonType {
	case feedback.Customer:
		c.customers++
	case feedback.Technician:
		c.technicians++
	}
	c.hist.Add(r.Rating)

	c.seq++
	if strings.TrimSpace(r.Comment) == "" {
		return
	}
	c.latest = append(c.latest, latestEntry{
		entry: feedback.CommentEntry{Name: r.Name, Comment: r.Comment, CreatedAt: r.CreatedAt},
		seq:   c.seq,
	})
	if len(c.latest) >= 2*LatestCommentsLimit {
		c.trimLatest()
	}
}

// trimLatest keeps the newest entries; equal timestamps favour the later insert.
func (c *ReportCollector) trimLatest() {
	sort.Slice(c.latest, func(i, j int) bool {
		a, b := c.latest[i], c.latest[j]
		if !a.entry.CreatedAt.Equal(b.entry.CreatedAt) {
			return a.entry.CreatedAt.After(b.entry.CreatedAt)
		}
		return a.seq > b.seq
	})
	if len(c.latest) > LatestCommentsLimit {
		c.latest = c.latest[:LatestCommentsLimit]
	}
}

func (c *ReportCollector) Report() Report {
	c.trimLatest()
	comments := make([]feedback.CommentEntry, 0, len(c.latest))
	for _, l := range c.latest {
		comments = append(comments, l.entry)
	}
	var avg float64
	if c.total > 0 {
		avg = roundTo(c.sum/float64(c.total), 2)
	}
	return Report{
		Summary: Summary{
			Total:           c.total,
			AvgRating:       avg,
			CustomerCount:   c.customers,
			TechnicianCount: c.technicians,
		},
		Distribution:   c.hist.Buckets(),
		LatestComments: comments,
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// ChoiceCollector tallies answers to the choice questions of the catalogue.
// Single-choice answers count once by their text; multi-select answers count
// once per selected option.
type ChoiceCollector struct {
	questions []feedback.Question
	tallies   map[string]*Tally
}

func NewChoiceCollector() *ChoiceCollector {
	qs := feedback.ChoiceQuestions()
	c := &ChoiceCollector{questions: qs, tallies: make(map[string]*Tally, len(qs))}
	for _, q := range qs {
		c.tallies[q.ID] = NewTally()
	}
	return c
}

func (c *ChoiceCollector) Add(r *feedback.Record) {
	for _, q := range c.questions {
		a := r.Answers.Get(q.ID)
		if a.Empty() {
			continue
		}
		t := c.tallies[q.ID]
		if q.Multi() {
			for _, v := range a.Values() {
				t.Add(v)
			}
			continue
		}
		t.Add(a.Text())
	}
}

func (c *ChoiceCollector) Choices() Choices {
	out := make(Choices, len(c.tallies))
	for id, t := range c.tallies {
		out[id] = t.Counts()
	}
	return out
}

// Summarize builds the analytics report over records.
func Summarize(records []*feedback.Record) Report {
	c := NewReportCollector()
	for _, r := range records {
		c.Add(r)
	}
	return c.Report()
}

// TallyChoices counts choice answers over records.
func TallyChoices(records []*feedback.Record) Choices {
	c := NewChoiceCollector()
	for _, r := range records {
		c.Add(r)
	}
	return c.Choices()
}
