package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/soelshaikh/feedback-portal/backend/internal/analytics"
	"github.com/soelshaikh/feedback-portal/backend/internal/feedback"
	"github.com/soelshaikh/feedback-portal/backend/internal/feedback/repository"
	"github.com/soelshaikh/feedback-portal/backend/internal/tokens"
	"github.com/stretchr/testify/require"
)

// useMemoryRepo points the commands at a seeded in-memory store.
func useMemoryRepo(t *testing.T, recs ...*feedback.Record) {
	t.Helper()
	repo := repository.NewMemoryRepo()
	for _, r := range recs {
		require.NoError(t, repo.Create(context.Background(), r))
	}
	prev := openRepository
	openRepository = func(context.Context) (repository.Repository, func(), error) {
		return repo, func() {}, nil
	}
	t.Cleanup(func() { openRepository = prev })
}

func run(t *testing.T, args ...string) (string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String(), errOut.String()
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "cli-secret-32-bytes-long-enough-xx")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"token", "--subject", "ops"})
	require.NoError(t, rootCmd.Execute())

	tok, err := tokens.NewHMACVerifier("cli-secret-32-bytes-long-enough-xx").Verify(context.Background(), strings.TrimSpace(out.String()))
	require.NoError(t, err)
	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	require.Equal(t, "ops", claims["sub"])
}

func TestExportCommand_RequiresMongo(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	rootCmd.SetArgs([]string{"export"})
	err := rootCmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "MONGODB_URI")
}

func TestStatsCommand(t *testing.T) {
	useMemoryRepo(t,
		&feedback.Record{Name: "A", PersonType: feedback.Customer, Rating: 4, Comment: "Quick visit",
			Answers: feedback.Answers{"q10": feedback.MultiSelect("Price", "Trust")}},
		&feedback.Record{Name: "B", PersonType: feedback.Technician, Rating: 2},
	)

	out, _ := run(t, "stats", "--choices=false")
	var rep analytics.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Equal(t, 2, rep.Summary.Total)
	require.Equal(t, 3.0, rep.Summary.AvgRating)
	require.Equal(t, 1, rep.Summary.CustomerCount)
	require.Len(t, rep.LatestComments, 1)

	out, _ = run(t, "stats", "--choices")
	var ch analytics.Choices
	require.NoError(t, json.Unmarshal([]byte(out), &ch))
	require.Equal(t, []analytics.OptionCount{{Option: "Price", Count: 1}, {Option: "Trust", Count: 1}}, ch["q10"])
}

func TestExportCommand(t *testing.T) {
	useMemoryRepo(t,
		&feedback.Record{Name: "A", PersonType: feedback.Customer, Rating: 5},
		&feedback.Record{Name: "B", PersonType: feedback.Technician, Rating: 1},
	)

	out, errOut := run(t, "export", "--out", "-")
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "A", rows[1][2])
	require.Equal(t, "B", rows[2][2])
	require.Contains(t, errOut, "exported 2 records")
}
