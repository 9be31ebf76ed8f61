package repositories

import (
	"context"
	"time"

	"github.com/orgfin/org_finance_app/internal/core/domain"
)

// AuditReader defines read operations for audit events.
type AuditReader interface {
	ListAuditEventsByTarget(ctx context.Context, targetType domain.AuditTargetType, targetID string, limit int) ([]domain.AuditEvent, error)
}

// AuditWriter defines write operations for audit events.
type AuditWriter interface {
	SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error

	// PurgeExpired deletes events of the given action type created before the
	// cutoff and reports how many rows went away.
	PurgeExpired(ctx context.Context, actionType domain.AuditActionType, before time.Time) (int64, error)
}

// AuditRepositoryFacade combines all audit-related repository interfaces
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}
