package analytics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistogram_EdgesAreHalfOpen(t *testing.T) {
	buckets := HistogramOf([]float64{0, 1.49, 1.5, 2.5, 3.49, 4.5, 5}, RatingBoundaries...)
	require.Len(t, buckets, 5)
	counts := []int{}
	for _, b := range buckets {
		counts = append(counts, b.Count)
	}
	require.Equal(t, []int{2, 1, 2, 0, 2}, counts)
	require.Equal(t, "[4.5,5.1)", buckets[4].Label())
}

func TestHistogram_OutOfRangeGoesToOther(t *testing.T) {
	buckets := HistogramOf([]float64{-1, 6, math.NaN(), 3}, RatingBoundaries...)
	require.Len(t, buckets, 6)
	require.True(t, buckets[5].Other)
	require.Equal(t, 3, buckets[5].Count)
	require.Equal(t, OtherBucket, buckets[5].Label())
}

func TestHistogram_CountsSumToInputs(t *testing.T) {
	var values []float64
	for v := 0.0; v <= 5.0; v += 0.1 {
		values = append(values, v)
	}
	sum := 0
	for _, b := range HistogramOf(values, RatingBoundaries...) {
		require.False(t, b.Other)
		sum += b.Count
	}
	require.Equal(t, len(values), sum)
}

func TestNewHistogram_RejectsBadBoundaries(t *testing.T) {
	require.Panics(t, func() { NewHistogram(1) })
	require.Panics(t, func() { NewHistogram(0, 2, 1) })
}

func TestBucketJSON(t *testing.T) {
	b, err := json.Marshal(Bucket{Min: 1.5, Max: 2.5, Count: 4})
	require.NoError(t, err)
	require.JSONEq(t, `{"_id":1.5,"label":"[1.5,2.5)","min":1.5,"max":2.5,"count":4}`, string(b))

	o, err := json.Marshal(Bucket{Other: true, Count: 1})
	require.NoError(t, err)
	require.JSONEq(t, `{"_id":"other","label":"other","count":1}`, string(o))

	var back []Bucket
	require.NoError(t, json.Unmarshal([]byte("["+string(b)+","+string(o)+"]"), &back))
	require.Equal(t, []Bucket{{Min: 1.5, Max: 2.5, Count: 4}, {Other: true, Count: 1}}, back)
}

func TestGroupCount_OrdersByCountThenOption(t *testing.T) {
	got := GroupCount([]string{"No", "Yes", "", "Yes", "Maybe", "No"})
	require.Equal(t, []OptionCount{
		{Option: "No", Count: 2},
		{Option: "Yes", Count: 2},
		{Option: "Maybe", Count: 1},
	}, got)
	require.Empty(t, GroupCount(nil))
}

func TestFlattenGroupCount(t *testing.T) {
	got := FlattenGroupCount([][]string{{"Price", "Speed"}, nil, {"Price"}})
	require.Equal(t, []OptionCount{
		{Option: "Price", Count: 2},
		{Option: "Speed", Count: 1},
	}, got)
}
