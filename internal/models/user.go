// Package models defines the entities stored by Inkwell and their JSON
// representation on the API. JSON tags are the wire contract: ids are
// integers, flags are booleans, and secrets are never serialized.
package models

// Role represents an account's permission level.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleCollaborator Role = "collaborator"
)

// MinPasswordLength is the shortest password accepted anywhere.
const MinPasswordLength = 6

// User is a dashboard login account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar"`
	Role         Role      `json:"role"`
	CreatedAt    Timestamp `json:"created_at"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleCollaborator
}

// UserPatch holds the fields of a partial user update. Password is the new
// plaintext password; the store hashes it.
type UserPatch struct {
	Username *string
	Password *string
	Name     *string
	Avatar   *string
	Role     *Role
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Password == nil && p.Name == nil && p.Avatar == nil && p.Role == nil
}
