package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/muhammadolammi/skillmatch/internal/analysis"
	"github.com/muhammadolammi/skillmatch/internal/database"
	"github.com/muhammadolammi/skillmatch/internal/textextract"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

func newWorkerCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume analysis sessions from RabbitMQ and store their results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			settings, err := loadWorkerSettings(c.v)
			if err != nil {
				return err
			}

			db, err := sql.Open("postgres", settings.DBURL)
			if err != nil {
				return fmt.Errorf("error opening db: %w", err)
			}
			defer db.Close()

			store, err := NewR2Store(ctx, settings.R2)
			if err != nil {
				return err
			}

			conn, err := amqp.Dial(settings.RabbitMQURL)
			if err != nil {
				return fmt.Errorf("error connecting to RabbitMQ: %w", err)
			}
			defer conn.Close()

			publisher, err := NewAMQPPublisher(conn, settings.UpdatesExchange)
			if err != nil {
				return err
			}

			workerConfig := WorkerConfig{
				DB:            database.New(db),
				Documents:     store,
				Analyzer:      analysis.NewAnalyzer(textextract.Shared(), c.logger),
				Publisher:     publisher,
				RABBITMQUrl:   settings.RabbitMQURL,
				SessionsQueue: settings.SessionsQueue,
				RetryAttempts: settings.RetryAttempts,
				RetryBackoff:  settings.RetryBackoff,
				Logger:        c.logger,
			}

			c.logger.Info("starting consumer worker pool",
				zap.Int("workers", settings.Workers),
				zap.String("queue", settings.SessionsQueue),
			)
			return workerConfig.StartConsumerWorkerPool(ctx, settings.Workers)
		},
	}

	cmd.Flags().Int("workers", 3, "number of concurrent queue consumers")
	_ = c.v.BindPFlag("worker_count", cmd.Flags().Lookup("workers"))
	return cmd
}

func newResultsCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "results <session-id>",
		Short: "Show the stored analysis results of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid session id %q: %w", args[0], err)
			}

			dbURL := c.v.GetString("db_url")
			if dbURL == "" {
				return errors.New("empty DB_URL in environment")
			}
			db, err := sql.Open("postgres", dbURL)
			if err != nil {
				return fmt.Errorf("error opening db: %w", err)
			}
			defer db.Close()

			row, err := database.New(db).GetAnalysesResultsBySession(cmd.Context(), sessionID)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("no results stored for session %s", sessionID)
			}
			if err != nil {
				return fmt.Errorf("failed to load results: %w", err)
			}

			if asJSON {
				_, err = cmd.OutOrStdout().Write(append(row.Results, '\n'))
				return err
			}

			var results []ResumeAnalysis
			if err := json.Unmarshal(row.Results, &results); err != nil {
				return fmt.Errorf("failed to decode stored results: %w", err)
			}
			return renderSessionResults(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "output-json", false, "print the stored JSON as is")
	return cmd
}
