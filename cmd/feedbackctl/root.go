package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/soelshaikh/feedback-portal/backend/internal/config"
	"github.com/soelshaikh/feedback-portal/backend/internal/database"
	"github.com/soelshaikh/feedback-portal/backend/internal/feedback/repository"
	"github.com/soelshaikh/feedback-portal/backend/pkg/logger"
	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "feedbackctl",
	Short: "Administrative tasks for the feedback portal",
	Long: `feedbackctl talks to the same MongoDB and settings as the API server
(environment variables or .env) and runs exports, reports and token minting
without going through HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.Init("debug")
		} else {
			logger.Init("warn")
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// openRepository opens the store the commands read from. Tests swap it for an
// in-memory repository.
var openRepository = openMongoRepository

// openMongoRepository connects to the configured MongoDB collection. The
// returned func closes the connection.
func openMongoRepository(ctx context.Context) (repository.Repository, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if cfg.MongoDB.URI == "" {
		return nil, nil, errors.New("MONGODB_URI is not set")
	}
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		return nil, nil, err
	}
	col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
	closeFn := func() { _ = client.Disconnect(context.Background()) }
	return repository.NewMongoRepo(ctx, col), closeFn, nil
}
