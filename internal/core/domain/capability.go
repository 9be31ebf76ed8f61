package domain

// Capability is a single permission that an actor may or may not hold within
// a scope. All authorization guards go through one Can check against these
// values instead of role-specific branches scattered across services.
type Capability string

const (
	CapEntrySubmit             Capability = "entry:submit"
	CapEntryReview             Capability = "entry:review"
	CapEntryResubmit           Capability = "entry:resubmit"
	CapEntryDelete             Capability = "entry:delete"
	CapEntryRead               Capability = "entry:read"
	CapRateManage              Capability = "rate:manage"
	CapRateApprove             Capability = "rate:approve"
	CapRemittanceRecordPayment Capability = "remittance:record_payment"
	CapRemittanceConfirm       Capability = "remittance:confirm"
	CapRemittanceCancel        Capability = "remittance:cancel"
	CapWorkspaceManage         Capability = "workspace:manage"
	CapOrgManage               Capability = "org:manage"
)

// AuthScope narrows a capability check to a particular organization,
// workspace and/or workspace-team. Zero-valued fields mean "not scoped".
type AuthScope struct {
	OrganizationID  string
	WorkspaceID     string
	WorkspaceTeamID string
	TeamID          string
}

// Actor is the identity attempting an operation, resolved from the request
// user. Exactly one of TeamMemberID / nothing extra is set for plain org
// members; team membership refines what the actor may do inside a team scope.
type Actor struct {
	UserID               string
	MemberID             string // OrganizationMember reference
	OrgRole              OrgRole
	TeamMemberID         string   // Set when acting as a team member
	TeamRole             TeamRole // Valid when TeamMemberID is set
	IsWorkspaceAdmin     bool     // True when the actor administers the scoped workspace
	IsOperationsReviewer bool
	IsTeamCoordinator    bool
}
