package mapping

import (
	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/orgfin/org_finance_app/internal/models"
)

// ToModelAuditEvent converts a domain AuditEvent to its model, computing the
// row's expiry from the action type's retention tier.
func ToModelAuditEvent(d domain.AuditEvent) models.AuditEvent {
	return models.AuditEvent{
		AuditID:     d.AuditID,
		ActionType:  string(d.ActionType),
		ActorUserID: d.ActorUserID,
		TargetType:  string(d.TargetType),
		TargetID:    d.TargetID,
		Metadata:    d.Metadata,
		CreatedAt:   d.CreatedAt,
		ExpiresAt:   d.CreatedAt.Add(d.ActionType.RetentionPeriod()),
	}
}

// ToDomainAuditEvent converts a model AuditEvent to its domain form
func ToDomainAuditEvent(m models.AuditEvent) domain.AuditEvent {
	return domain.AuditEvent{
		AuditID:     m.AuditID,
		ActionType:  domain.AuditActionType(m.ActionType),
		ActorUserID: m.ActorUserID,
		TargetType:  domain.AuditTargetType(m.TargetType),
		TargetID:    m.TargetID,
		Metadata:    m.Metadata,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainAuditEventSlice converts a slice of model AuditEvents
func ToDomainAuditEventSlice(ms []models.AuditEvent) []domain.AuditEvent {
	ds := make([]domain.AuditEvent, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditEvent(m)
	}
	return ds
}
