package account

import (
	"context"
	"errors"
)

type Role string

const (
	RoleUser        Role = "user"
	RoleBranchAdmin Role = "branch-admin"
	RoleSuperAdmin  Role = "super-admin"
)

// ParseRole rejects anything outside the closed role set, so an invalid
// role never reaches the storage layer.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleBranchAdmin, RoleSuperAdmin:
		return Role(s), true
	}
	return "", false
}

func (r Role) rank() int {
	switch r {
	case RoleBranchAdmin:
		return 1
	case RoleSuperAdmin:
		return 2
	default:
		return 0
	}
}

// AtLeast reports whether r grants at least the access of min:
// user < branch-admin < super-admin.
func (r Role) AtLeast(min Role) bool {
	return r.rank() >= min.rank()
}

var (
	ErrNotFound       = errors.New("account not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Account is an identity record. BranchID is set iff Role is branch-admin;
// the reference is checked when the account is created and never after.
type Account struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Password string  `json:"-"`
	Role     Role    `json:"role"`
	BranchID *string `json:"branch,omitempty"`
}

type Repository interface {
	Create(ctx context.Context, acc *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
}
