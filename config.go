package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type workerSettings struct {
	DBURL           string
	RabbitMQURL     string
	R2              R2Config
	Workers         int
	SessionsQueue   string
	UpdatesExchange string
	RetryAttempts   int
	RetryBackoff    time.Duration
}

// newViper reads settings from the environment. Keys are looked up by their
// upper-case environment name.
func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("worker_count", 3)
	v.SetDefault("sessions_queue", "sessions")
	v.SetDefault("updates_exchange", "session_updates")
	v.SetDefault("retry_attempts", 3)
	v.SetDefault("retry_backoff", 500*time.Millisecond)

	// older deployments spell the account id variable with three Cs
	_ = v.BindEnv("r2_account_id", "R2_ACCOUNT_ID", "R2_ACCCOUNT_ID")
	return v
}

func loadWorkerSettings(v *viper.Viper) (workerSettings, error) {
	s := workerSettings{
		DBURL:       v.GetString("db_url"),
		RabbitMQURL: v.GetString("rabbitmq_url"),
		R2: R2Config{
			AccountID: v.GetString("r2_account_id"),
			Bucket:    v.GetString("r2_bucket"),
			AccessKey: v.GetString("r2_access_key"),
			SecretKey: v.GetString("r2_secret_key"),
		},
		Workers:         v.GetInt("worker_count"),
		SessionsQueue:   v.GetString("sessions_queue"),
		UpdatesExchange: v.GetString("updates_exchange"),
		RetryAttempts:   v.GetInt("retry_attempts"),
		RetryBackoff:    v.GetDuration("retry_backoff"),
	}

	required := []struct {
		env   string
		value string
	}{
		{"DB_URL", s.DBURL},
		{"RABBITMQ_URL", s.RabbitMQURL},
		{"R2_ACCOUNT_ID", s.R2.AccountID},
		{"R2_BUCKET", s.R2.Bucket},
		{"R2_ACCESS_KEY", s.R2.AccessKey},
		{"R2_SECRET_KEY", s.R2.SecretKey},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.env)
		}
	}
	if len(missing) > 0 {
		return s, fmt.Errorf("empty %s in environment", strings.Join(missing, ", "))
	}

	if s.Workers < 1 {
		return s, fmt.Errorf("WORKER_COUNT must be at least 1, got %d", s.Workers)
	}
	return s, nil
}
