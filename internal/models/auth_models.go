package models

// SessionContext is the operator's ambient identity, built by the auth
// middleware from JWT claims and passed explicitly into the services so the
// pipelines stay unit-testable without a simulated storage layer.
type SessionContext struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	// BranchID is the operator's default branch identity, nil when the
	// session has none. Sale submission falls back to it when no explicit
	// branch is supplied with the request.
	BranchID *int64 `json:"branch_id,omitempty"`
}
