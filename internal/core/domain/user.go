package domain

// User represents an authenticated person. Organization membership and team
// membership reference users; the user record itself carries no roles.
type User struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AuditFields
}
