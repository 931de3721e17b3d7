package domain

import "time"

// User is the logged-in identity every view reads to gate access
// and to stamp the owner email on new bills.
type User struct {
	Role  UserRole `json:"type"`
	Email string   `json:"email"`
}

// StoredSession is the single persisted login record.
type StoredSession struct {
	Role      UserRole
	Email     string
	Token     string
	CreatedAt time.Time
}

// User returns the identity carried by the session.
func (s *StoredSession) User() *User {
	return &User{Role: s.Role, Email: s.Email}
}
