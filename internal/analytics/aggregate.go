package analytics

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// RatingBoundaries are the half-open rating buckets [0,1.5) [1.5,2.5) [2.5,3.5)
// [3.5,4.5) [4.5,5.1). The last edge is 5.1 so that a rating of exactly 5 lands
// in the top bucket.
var RatingBoundaries = []float64{0, 1.5, 2.5, 3.5, 4.5, 5.1}

// OtherBucket is the id of the bucket collecting values outside every boundary.
const OtherBucket = "other"

// Bucket is one histogram cell covering [Min, Max), or the overflow cell when Other is set.
type Bucket struct {
	Min   float64
	Max   float64
	Other bool
	Count int
}

// Label renders the bucket as "[min,max)" or "other".
func (b Bucket) Label() string {
	if b.Other {
		return OtherBucket
	}
	return "[" + formatEdge(b.Min) + "," + formatEdge(b.Max) + ")"
}

type bucketJSON struct {
	ID    json.RawMessage `json:"_id"`
	Label string          `json:"label"`
	Min   *float64        `json:"min,omitempty"`
	Max   *float64        `json:"max,omitempty"`
	Count int             `json:"count"`
}

// MarshalJSON keeps the dashboard shape: _id is the lower boundary or "other".
func (b Bucket) MarshalJSON() ([]byte, error) {
	out := bucketJSON{Label: b.Label(), Count: b.Count}
	if b.Other {
		out.ID = json.RawMessage(strconv.Quote(OtherBucket))
	} else {
		min, max := b.Min, b.Max
		out.ID = json.RawMessage(formatEdge(min))
		out.Min, out.Max = &min, &max
	}
	return json.Marshal(out)
}

func (b *Bucket) UnmarshalJSON(data []byte) error {
	var in bucketJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*b = Bucket{Count: in.Count}
	if string(in.ID) == strconv.Quote(OtherBucket) {
		b.Other = true
		return nil
	}
	if in.Min == nil || in.Max == nil {
		return fmt.Errorf("bucket %s: missing bounds", in.Label)
	}
	b.Min, b.Max = *in.Min, *in.Max
	return nil
}

func formatEdge(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Histogram counts values into fixed, ascending, half-open boundaries.
type Histogram struct {
	bounds []float64
	counts []int
	other  int
}

// NewHistogram panics when fewer than two boundaries are given or they are not ascending.
func NewHistogram(bounds ...float64) *Histogram {
	if len(bounds) < 2 {
		panic("analytics: histogram needs at least two boundaries")
	}
	for i := 1; i < len(bounds); i++ {
		if bounds[i] <= bounds[i-1] {
			panic("analytics: histogram boundaries must be strictly ascending")
		}
	}
	return &Histogram{
		bounds: append([]float64(nil), bounds...),
		counts: make([]int, len(bounds)-1),
	}
}

func (h *Histogram) Add(v float64) {
	if math.IsNaN(v) {
		h.other++
		return
	}
	// first boundary strictly greater than v, minus one, is the cell index
	i := sort.Search(len(h.bounds), func(i int) bool { return h.bounds[i] > v }) - 1
	if i < 0 || i >= len(h.counts) {
		h.other++
		return
	}
	h.counts[i]++
}

// Buckets returns one bucket per boundary pair, plus the "other" bucket when it is non-empty.
func (h *Histogram) Buckets() []Bucket {
	out := make([]Bucket, 0, len(h.counts)+1)
	for i, n := range h.counts {
		out = append(out, Bucket{Min: h.bounds[i], Max: h.bounds[i+1], Count: n})
	}
	if h.other > 0 {
		out = append(out, Bucket{Other: true, Count: h.other})
	}
	return out
}

// HistogramOf buckets values with the given boundaries.
func HistogramOf(values []float64, bounds ...float64) []Bucket {
	h := NewHistogram(bounds...)
	for _, v := range values {
		h.Add(v)
	}
	return h.Buckets()
}

// OptionCount is the number of times one option was chosen.
type OptionCount struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

// Tally is a group-by-value counter. Empty values are ignored.
type Tally struct {
	counts map[string]int
}

func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

func (t *Tally) Add(option string) {
	if option == "" {
		return
	}
	t.counts[option]++
}

// Counts returns the groups ordered by count descending, then option ascending.
func (t *Tally) Counts() []OptionCount {
	out := make([]OptionCount, 0, len(t.counts))
	for k, n := range t.counts {
		out = append(out, OptionCount{Option: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Option < out[j].Option
	})
	return out
}

// GroupCount groups values and counts occurrences.
func GroupCount(values []string) []OptionCount {
	t := NewTally()
	for _, v := range values {
		t.Add(v)
	}
	return t.Counts()
}

// FlattenGroupCount flattens the lists (one contribution per element) and then groups.
func FlattenGroupCount(lists [][]string) []OptionCount {
	t := NewTally()
	for _, l := range lists {
		for _, v := range l {
			t.Add(v)
		}
	}
	return t.Counts()
}
