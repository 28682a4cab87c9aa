package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/soelshaikh/feedback-portal/backend/internal/feedback"
	"github.com/stretchr/testify/require"
)

func TestWriter_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.Write(&feedback.Record{
		ID:         "65f000000000000000000001",
		Name:       "Asha, R",
		PersonType: feedback.Customer,
		Rating:     4.5,
		Comment:    "said \"great\"",
		Answers: feedback.Answers{
			"q1":  feedback.Scalar("Hard"),
			"q10": feedback.MultiSelect("Price", "Speed"),
		},
		CreatedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}))
	require.NoError(t, w.Flush())
	require.Equal(t, 1, w.Count())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, Header(), rows[0])
	require.Len(t, rows[0], 8+len(feedback.Questions))

	row := rows[1]
	require.Equal(t, "2024-03-01T09:30:00Z", row[1])
	require.Equal(t, "Asha, R", row[2])
	require.Equal(t, "4.5", row[6])
	require.Equal(t, `said "great"`, row[7])
	require.Equal(t, "Hard", row[8])
	require.Equal(t, "", row[9])
	require.Equal(t, "Price, Speed", row[len(row)-1])
}
