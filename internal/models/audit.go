package models

import "time"

// AuditEvent represents a row in the audit_events table. Metadata is stored
// as JSONB and scanned straight into the map by pgx.
type AuditEvent struct {
	AuditID     string            `db:"audit_id"`
	ActionType  string            `db:"action_type"`
	ActorUserID string            `db:"actor_user_id"`
	TargetType  string            `db:"target_type"`
	TargetID    string            `db:"target_id"`
	Metadata    map[string]string `db:"metadata"`
	CreatedAt   time.Time         `db:"created_at"`
	ExpiresAt   time.Time         `db:"expires_at"` // Computed from the action's retention tier at insert
}
