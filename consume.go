package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/muhammadolammi/skillmatch/internal/analysis"
	"github.com/muhammadolammi/skillmatch/internal/database"
	"github.com/muhammadolammi/skillmatch/internal/textextract"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SessionStore is the part of the database the worker needs.
type SessionStore interface {
	GetResumesBySession(ctx context.Context, sessionID uuid.UUID) ([]database.Resume, error)
	UpdateSessionStatus(ctx context.Context, arg database.UpdateSessionStatusParams) error
	CreateOrUpdateAnalysesResults(ctx context.Context, arg database.CreateOrUpdateAnalysesResultsParams) error
}

type DocumentStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

type DocumentAnalyzer interface {
	ExtractJobDescription(ctx context.Context, jobDescription textextract.Document) (string, error)
	AnalyzeResume(ctx context.Context, resume textextract.Document, jobText string) (analysis.Result, error)
}

type StatusPublisher interface {
	Publish(ctx context.Context, sessionID uuid.UUID, status, message string) error
}

func aggregateResult(results *AnalysesResults, resume database.Resume, result analysis.Result, err error) {
	entry := ResumeAnalysis{
		ResumeID: resume.ID,
		Filename: resume.OriginalFilename,
	}
	if err != nil {
		entry.IsErrorResult = true
		entry.Error = err.Error()
	} else {
		entry.Result = result
	}
	results.Results = append(results.Results, entry)
}

// loadJobDescription fetches the session's job description document, or
// wraps the inline job description text when no document was uploaded.
func (wc *WorkerConfig) loadJobDescription(ctx context.Context, s Session) (textextract.Document, error) {
	if s.JobDescriptionObjectKey == "" {
		if s.JobDescription == "" {
			return textextract.Document{}, analysis.ErrInputMissing
		}
		return textextract.Document{
			Name: "job description",
			Mime: textextract.MimeText,
			Data: []byte(s.JobDescription),
		}, nil
	}

	data, err := retry(ctx, wc.RetryAttempts, wc.RetryBackoff, func() ([]byte, error) {
		return wc.Documents.Download(ctx, s.JobDescriptionObjectKey)
	})
	if err != nil {
		return textextract.Document{}, fmt.Errorf("job description download error: %w", err)
	}

	mime := s.JobDescriptionMime
	if mime == "" {
		mime = textextract.MimeFromFilename(s.JobDescriptionObjectKey)
	}
	return textextract.Document{Name: s.JobDescriptionObjectKey, Mime: mime, Data: data}, nil
}

// processSession scores every resume of a session against its job
// description and stores the results. A resume that cannot be downloaded or
// read becomes an error entry; the session fails only when the job
// description, the resume list or the final write fails.
func (wc *WorkerConfig) processSession(ctx context.Context, s Session) error {
	logger := wc.Logger.With(zap.Stringer("session_id", s.ID))

	resumes, err := retry(ctx, wc.RetryAttempts, wc.RetryBackoff, func() ([]database.Resume, error) {
		return wc.DB.GetResumesBySession(ctx, s.ID)
	})
	if err != nil {
		return fmt.Errorf("error getting resumes for session: %v, err: %w", s.ID, err)
	}

	jobDescription, err := wc.loadJobDescription(ctx, s)
	if err != nil {
		return err
	}
	jobText, err := wc.Analyzer.ExtractJobDescription(ctx, jobDescription)
	if err != nil {
		return err
	}

	results := &AnalysesResults{
		SessionID: s.ID,
		Results:   []ResumeAnalysis{},
	}

	for _, resume := range resumes {
		resumeLogger := logger.With(zap.String("object_key", resume.ObjectKey))

		fileBytes, err := retry(ctx, wc.RetryAttempts, wc.RetryBackoff, func() ([]byte, error) {
			return wc.Documents.Download(ctx, resume.ObjectKey)
		})
		if err != nil {
			resumeLogger.Warn("failed to download resume", zap.Error(err))
			aggregateResult(results, resume, analysis.Result{}, fmt.Errorf("file download error: %w", err))
			continue
		}

		result, err := wc.Analyzer.AnalyzeResume(ctx, textextract.Document{
			Name: resume.OriginalFilename,
			Mime: resume.Mime,
			Data: fileBytes,
		}, jobText)
		if err != nil {
			resumeLogger.Warn("failed to analyze resume", zap.Error(err))
			aggregateResult(results, resume, analysis.Result{}, err)
			continue
		}

		resumeLogger.Info("resume analyzed", zap.Int("score", result.Score))
		aggregateResult(results, resume, result, nil)
	}

	resultsJSON, err := json.Marshal(results.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal analyses results: %w", err)
	}

	_, err = retry(ctx, wc.RetryAttempts, wc.RetryBackoff, func() (any, error) {
		return nil, wc.DB.CreateOrUpdateAnalysesResults(ctx, database.CreateOrUpdateAnalysesResultsParams{
			Results:   resultsJSON,
			SessionID: results.SessionID,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to save analyses results after retries: %w", err)
	}

	logger.Info("session analyzed", zap.Int("resumes", len(resumes)))
	return nil
}

func (wc *WorkerConfig) setStatus(ctx context.Context, sessionID uuid.UUID, status, message string) {
	err := wc.DB.UpdateSessionStatus(ctx, database.UpdateSessionStatusParams{
		Status: status,
		ID:     sessionID,
	})
	if err != nil {
		wc.Logger.Error("failed to update session status",
			zap.Stringer("session_id", sessionID), zap.String("status", status), zap.Error(err))
	}

	if err := wc.Publisher.Publish(ctx, sessionID, status, message); err != nil {
		wc.Logger.Error("failed to publish update",
			zap.Stringer("session_id", sessionID), zap.String("status", status), zap.Error(err))
	}
}

// handleMessage runs one queued session through the analysis and reports
// its progress.
func (wc *WorkerConfig) handleMessage(ctx context.Context, body []byte) {
	s := Session{}
	if err := json.Unmarshal(body, &s); err != nil {
		wc.Logger.Error("error unmarshalling message body", zap.Error(err))
		if s.ID != uuid.Nil {
			wc.setStatus(ctx, s.ID, StatusFailed, "analysis failed")
		}
		return
	}

	wc.setStatus(ctx, s.ID, StatusProcessing, "analysis started")

	if err := wc.processSession(ctx, s); err != nil {
		wc.Logger.Error("error analyzing session", zap.Stringer("session_id", s.ID), zap.Error(err))
		wc.setStatus(ctx, s.ID, StatusFailed, "analysis failed")
		return
	}

	wc.setStatus(ctx, s.ID, StatusCompleted, "analysis completed")
}

func (wc *WorkerConfig) worker(ctx context.Context, id int) error {
	conn, err := amqp.Dial(wc.RABBITMQUrl)
	if err != nil {
		return fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("error connecting to rabbitmq channel: %w", err)
	}
	defer ch.Close()
	_, err = ch.QueueDeclare(
		wc.SessionsQueue, // queue name
		true,             // durable (survives broker restarts)
		false,            // auto-delete when unused
		false,            // exclusive
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	msgs, err := ch.Consume(
		wc.SessionsQueue, // queue name
		"",               // consumer tag
		true,             // auto-ack
		false,            // exclusive
		false,            // no-local
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		return fmt.Errorf("error consuming rabbitmq message: %w", err)
	}

	logger := wc.Logger.With(zap.Int("worker", id+1))
	logger.Info("worker started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			logger.Debug("processing message", zap.Int("bytes", len(msg.Body)))
			wc.handleMessage(ctx, msg.Body)
		}
	}
}

// StartConsumerWorkerPool runs numWorkers consumers until ctx is canceled or
// one of them fails.
func (wc *WorkerConfig) StartConsumerWorkerPool(ctx context.Context, numWorkers int) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < numWorkers; i++ {
		i := i
		g.Go(func() error {
			return wc.worker(gctx, i)
		})
	}
	return g.Wait()
}
