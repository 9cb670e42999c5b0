package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LeadSyncJobName is the name of the legacy CRM lead import job
const LeadSyncJobName = "lead_sync"

// LeadImporter imports leads from the legacy CRM warehouse.
// Implemented by the lead sync service; the interface keeps the job from
// importing the service package directly.
type LeadImporter interface {
	// ImportLegacyLeads imports leads changed since the previous run.
	// Returns counts for imported and skipped leads.
	ImportLegacyLeads(ctx context.Context) (imported int, skipped int, err error)
}

// LeadSyncJob runs the periodic legacy CRM lead import.
type LeadSyncJob struct {
	importer LeadImporter
	logger   *zap.Logger
	timeout  time.Duration
}

// NewLeadSyncJob creates a new lead sync job.
// The timeout controls how long a single import run is allowed to take.
func NewLeadSyncJob(importer LeadImporter, logger *zap.Logger, timeout time.Duration) *LeadSyncJob {
	return &LeadSyncJob{
		importer: importer,
		logger:   logger,
		timeout:  timeout,
	}
}

// Run executes the lead import. Called by the scheduler according to the
// configured cron expression.
func (j *LeadSyncJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting legacy lead sync job")

	imported, skipped, err := j.importer.ImportLegacyLeads(ctx)
	if err != nil {
		j.logger.Error("legacy lead sync failed",
			zap.Error(err),
			zap.Int("imported_before_failure", imported),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("legacy lead sync job completed",
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
		zap.Duration("duration", time.Since(start)))
}

// RegisterLeadSyncJob registers the lead import job with the scheduler.
// If runStartupSync is true an import runs immediately in a background
// goroutine so it doesn't block API startup.
func RegisterLeadSyncJob(scheduler *Scheduler, importer LeadImporter, logger *zap.Logger, cronExpr string, timeout time.Duration, runStartupSync bool) error {
	job := NewLeadSyncJob(importer, logger, timeout)

	if runStartupSync {
		go job.Run()
	}

	return scheduler.AddJob(LeadSyncJobName, cronExpr, job.Run)
}
