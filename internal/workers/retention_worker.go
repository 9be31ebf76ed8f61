package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/riverqueue/river"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
)

// AuditPurgeArgs triggers one retention sweep over the audit trail. Scheduled
// as a periodic job.
type AuditPurgeArgs struct{}

func (AuditPurgeArgs) Kind() string { return "audit_purge" }

func (AuditPurgeArgs) InsertOpts() river.InsertOpts {
	// Only one sweep needs to run at a time.
	return river.InsertOpts{
		UniqueOpts: river.UniqueOpts{ByPeriod: time.Hour},
	}
}

// purgedActionTypes lists every action type so each one is swept against its
// own retention tier.
var purgedActionTypes = []domain.AuditActionType{
	domain.AuditEntryCreated,
	domain.AuditEntryUpdated,
	domain.AuditEntryDeleted,
	domain.AuditStatusChanged,
	domain.AuditEntryFlagged,
	domain.AuditRateCreated,
	domain.AuditRateApproved,
	domain.AuditPaymentRecorded,
	domain.AuditPermissionDenied,
	domain.AuditLogin,
}

// AuditPurgeWorker deletes audit events older than their retention tier.
type AuditPurgeWorker struct {
	river.WorkerDefaults[AuditPurgeArgs]
	auditRepo portsrepo.AuditWriter
	logger    *slog.Logger
}

func NewAuditPurgeWorker(auditRepo portsrepo.AuditWriter, logger *slog.Logger) *AuditPurgeWorker {
	return &AuditPurgeWorker{auditRepo: auditRepo, logger: logger}
}

func (w *AuditPurgeWorker) Work(ctx context.Context, job *river.Job[AuditPurgeArgs]) error {
	now := time.Now()
	var total int64
	for _, actionType := range purgedActionTypes {
		cutoff := now.Add(-actionType.RetentionPeriod())
		purged, err := w.auditRepo.PurgeExpired(ctx, actionType, cutoff)
		if err != nil {
			w.logger.Error("audit retention sweep failed",
				slog.String("action_type", string(actionType)),
				slog.String("error", err.Error()))
			return err
		}
		total += purged
	}
	if total > 0 {
		w.logger.Info("audit retention sweep completed", slog.Int64("purged", total))
	}
	return nil
}
