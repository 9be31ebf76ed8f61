package domain

import "time"

// AuditActionType classifies an audit event.
type AuditActionType string

const (
	AuditEntryCreated     AuditActionType = "entry_created"
	AuditEntryUpdated     AuditActionType = "entry_updated"
	AuditEntryDeleted     AuditActionType = "entry_deleted"
	AuditStatusChanged    AuditActionType = "status_changed"
	AuditEntryFlagged     AuditActionType = "flagged"
	AuditRateCreated      AuditActionType = "rate_created"
	AuditRateApproved     AuditActionType = "rate_approved"
	AuditPaymentRecorded  AuditActionType = "payment_recorded"
	AuditPermissionDenied AuditActionType = "permission_denied"
	AuditLogin            AuditActionType = "login"
)

// AuditTargetType names the kind of record an event refers to.
type AuditTargetType string

const (
	AuditTargetEntry      AuditTargetType = "entry"
	AuditTargetRate       AuditTargetType = "exchange_rate"
	AuditTargetRemittance AuditTargetType = "remittance"
	AuditTargetWorkspace  AuditTargetType = "workspace"
	AuditTargetUser       AuditTargetType = "user"
)

// Retention tiers. Authentication noise expires first, routine operational
// events after a year, security-relevant events are kept the longest.
const (
	RetentionAuthentication = 90 * 24 * time.Hour
	RetentionOperational    = 365 * 24 * time.Hour
	RetentionSecurity       = 730 * 24 * time.Hour
)

// AuditEvent is one immutable row in the audit trail. Events are written by
// a background worker with at-least-once semantics; duplicates are tolerated,
// lost primary commits are not.
type AuditEvent struct {
	AuditID     string            `json:"auditID"`
	ActionType  AuditActionType   `json:"actionType"`
	ActorUserID string            `json:"actorUserID"`
	TargetType  AuditTargetType   `json:"targetType"`
	TargetID    string            `json:"targetID"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// RetentionPeriod returns how long events of this action type are kept.
func (t AuditActionType) RetentionPeriod() time.Duration {
	switch t {
	case AuditLogin:
		return RetentionAuthentication
	case AuditPermissionDenied:
		return RetentionSecurity
	default:
		return RetentionOperational
	}
}
