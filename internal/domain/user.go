package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// ParseUserID parses the canonical string form.
func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID{UUID: id}, nil
}

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// User is a registered account. PasswordHash is the PHC-encoded argon2id
// string and must never be serialized or logged.
type User struct {
	ID           UserID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch is an explicit partial update. Only non-nil fields are merged
// onto the stored user.
type UserPatch struct {
	Username *string
	Email    *string
}

// Apply merges the patch onto u and reports whether anything changed.
func (p UserPatch) Apply(u *User) bool {
	changed := false
	if p.Username != nil && *p.Username != u.Username {
		u.Username = *p.Username
		changed = true
	}
	if p.Email != nil && *p.Email != u.Email {
		u.Email = *p.Email
		changed = true
	}
	return changed
}
