package workers

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
)

// AuditRecordArgs carries one audit event to the background writer. The
// enqueue happens inside the mutating transaction, so a committed mutation
// always has its event in the queue.
type AuditRecordArgs struct {
	Event domain.AuditEvent `json:"event"`
}

func (AuditRecordArgs) Kind() string { return "audit_record" }

// AuditRecordWorker persists queued audit events. Delivery is at-least-once;
// the repository tolerates duplicate audit IDs.
type AuditRecordWorker struct {
	river.WorkerDefaults[AuditRecordArgs]
	auditRepo portsrepo.AuditWriter
	logger    *slog.Logger
}

func NewAuditRecordWorker(auditRepo portsrepo.AuditWriter, logger *slog.Logger) *AuditRecordWorker {
	return &AuditRecordWorker{auditRepo: auditRepo, logger: logger}
}

func (w *AuditRecordWorker) Work(ctx context.Context, job *river.Job[AuditRecordArgs]) error {
	if err := w.auditRepo.SaveAuditEvent(ctx, job.Args.Event); err != nil {
		w.logger.Error("failed to persist audit event",
			slog.String("audit_id", job.Args.Event.AuditID),
			slog.String("action_type", string(job.Args.Event.ActionType)),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}
