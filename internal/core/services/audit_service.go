package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	portssvc "github.com/orgfin/org_finance_app/internal/core/ports/services"
	"github.com/orgfin/org_finance_app/internal/workers"
)

// InsertAuditTxFunc enqueues an audit record job within the given
// transaction. Provided by main as a closure over river.Client.InsertTx.
type InsertAuditTxFunc func(ctx context.Context, tx pgx.Tx, args workers.AuditRecordArgs) error

// InsertAuditFunc enqueues an audit record job outside any transaction.
type InsertAuditFunc func(ctx context.Context, args workers.AuditRecordArgs) error

type auditService struct {
	BaseService
	insertTx InsertAuditTxFunc
	insert   InsertAuditFunc
}

// NewAuditService creates the audit recorder backed by the job queue.
func NewAuditService(insertTx InsertAuditTxFunc, insert InsertAuditFunc) portssvc.AuditRecorderSvc {
	return &auditService{insertTx: insertTx, insert: insert}
}

var _ portssvc.AuditRecorderSvc = (*auditService)(nil)

// RecordTx enqueues the event on the caller's transaction. A failed enqueue
// fails the caller's commit: a mutation without its audit trail must not land.
func (s *auditService) RecordTx(ctx context.Context, tx pgx.Tx, event domain.AuditEvent) error {
	stampEvent(&event)
	return s.insertTx(ctx, tx, workers.AuditRecordArgs{Event: event})
}

// Record enqueues outside a transaction. Enqueue failures are logged and
// swallowed so audit noise never breaks the caller's path.
func (s *auditService) Record(ctx context.Context, event domain.AuditEvent) {
	stampEvent(&event)
	if err := s.insert(ctx, workers.AuditRecordArgs{Event: event}); err != nil {
		s.LogError(ctx, err, "Failed to enqueue audit event",
			"action_type", string(event.ActionType),
			"target_id", event.TargetID)
	}
}

func stampEvent(event *domain.AuditEvent) {
	if event.AuditID == "" {
		event.AuditID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
}
