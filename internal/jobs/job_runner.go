package jobs

import (
	"database/sql"

	"fleetdesk-backend/internal/config"
	"fleetdesk-backend/internal/logger"
	"fleetdesk-backend/internal/repository/postgres"
)

// JobRunner coordinates the scheduled fleet scans.
type JobRunner struct {
	db     *sql.DB
	store  *postgres.Store
	config *config.Config
}

func NewJobRunner(db *sql.DB, store *postgres.Store, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:     db,
		store:  store,
		config: cfg,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs every scan back to back (for manual execution).
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.ScanOverdueRentals()
	jr.ScanRegistrationRenewals()
}
