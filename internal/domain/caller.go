package domain

// Caller is the authenticated identity every scoped repository call runs as.
// Role is loaded from storage on each request, never from the token.
type Caller struct {
	UserID int64
	Role   UserRole
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
