package main

import (
	"fmt"
	"io"
	"os"

	"github.com/soelshaikh/feedback-portal/backend/internal/export"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every feedback record as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, closeRepo, err := openRepository(ctx)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer closeRepo()

		var w io.Writer = cmd.OutOrStdout()
		if exportOut != "" && exportOut != "-" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}

		n, err := export.NewService(repo, nil, nil, 0).WriteCSV(ctx, w)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "exported %d records\n", n)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "Output file, - for stdout")
	rootCmd.AddCommand(exportCmd)
}
