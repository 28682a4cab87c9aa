package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/soelshaikh/feedback-portal/backend/internal/analytics"
	"github.com/spf13/cobra"
)

var statsChoices bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the analytics report as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, closeRepo, err := openRepository(ctx)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer closeRepo()

		svc := analytics.NewService(repo, nil, time.Minute)
		var out interface{}
		if statsChoices {
			out, err = svc.Choices(ctx)
		} else {
			out, err = svc.Report(ctx)
		}
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsChoices, "choices", false, "Print option counts per choice question instead of the summary")
	rootCmd.AddCommand(statsCmd)
}
