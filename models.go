package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/skillmatch/internal/analysis"
	"go.uber.org/zap"
)

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

type WorkerConfig struct {
	DB            SessionStore
	Documents     DocumentStore
	Analyzer      DocumentAnalyzer
	Publisher     StatusPublisher
	RABBITMQUrl   string
	SessionsQueue string
	RetryAttempts int
	RetryBackoff  time.Duration
	Logger        *zap.Logger
}

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// ResumeAnalysis is the stored outcome for one resume of a session. Failed
// resumes carry only the error fields.
type ResumeAnalysis struct {
	ResumeID uuid.UUID `json:"resume_id"`
	Filename string    `json:"filename"`
	analysis.Result
	// Error result entry
	IsErrorResult bool   `json:"is_error_result"`
	Error         string `json:"error,omitempty"`
}

type AnalysesResults struct {
	ID        uuid.UUID        `json:"id"`
	Results   []ResumeAnalysis `json:"results" db:"results"`
	CreatedAt time.Time        `json:"created_at"`
	SessionID uuid.UUID        `json:"session_id"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type Session struct {
	ID                      uuid.UUID `json:"id"`
	CreatedAt               time.Time `json:"created_at"`
	Name                    string    `json:"name"`
	UserID                  uuid.UUID `json:"user_id"`
	Status                  string    `json:"status"`
	JobTitle                string    `json:"job_title"`
	JobDescription          string    `json:"job_description"`
	JobDescriptionObjectKey string    `json:"job_description_object_key"`
	JobDescriptionMime      string    `json:"job_description_mime"`
}

type SessionUpdate struct {
	SessionID uuid.UUID `json:"session_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
