package main

import (
	"fmt"
	"time"

	"github.com/soelshaikh/feedback-portal/backend/internal/config"
	"github.com/soelshaikh/feedback-portal/backend/internal/tokens"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an admin bearer token signed with ADMIN_JWT_SECRET",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		ttl := tokenTTL
		if ttl <= 0 {
			ttl = cfg.Auth.AdminTokenTTL
		}
		tok, err := tokens.GenerateAdminToken(cfg.Auth.AdminJWTSecret, tokenSubject, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "admin", "Subject (sub claim) of the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime; defaults to ADMIN_TOKEN_TTL")
	rootCmd.AddCommand(tokenCmd)
}
