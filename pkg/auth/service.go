package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ZiadAdelEissa/BookingBackend/pkg/account"
	"github.com/ZiadAdelEissa/BookingBackend/pkg/branch"
	"github.com/ZiadAdelEissa/BookingBackend/pkg/session"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidBranch      = errors.New("branch not found")
	ErrSessionPersistence = errors.New("session save failed")
)

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type PrivilegedRegisterInput struct {
	RegisterInput
	Role     string
	BranchID string
}

type ServiceInterface interface {
	Login(ctx context.Context, email, password string) (*account.Account, *session.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Register(ctx context.Context, in RegisterInput) (*account.Account, error)
	RegisterPrivileged(ctx context.Context, in PrivilegedRegisterInput) (*account.Account, error)
	RegisterBranchAdmin(ctx context.Context, in RegisterInput, branchID string) (*account.Account, error)
}

type Service struct {
	Accounts account.Repository
	Branches branch.Repository
	Sessions session.Store
}

func NewService(accounts account.Repository, branches branch.Repository, sessions session.Store) *Service {
	return &Service{Accounts: accounts, Branches: branches, Sessions: sessions}
}

// Login resolves the account by email and compares the credential. Both
// miss cases collapse into ErrInvalidCredentials so the response never
// tells an unknown email apart from a wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (*account.Account, *session.Session, error) {
	acc, err := s.Accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	sess, err := s.Sessions.Create(ctx, acc.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSessionPersistence, err)
	}
	return acc, sess, nil
}

// Logout destroys the session unconditionally. Deleting an absent
// session is not an error.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, sessionID)
}

// Register creates a plain account. The role is always user, whatever the
// caller sent alongside the listed fields.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*account.Account, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.create(ctx, in, account.RoleUser, nil)
}

// RegisterPrivileged creates an account with an explicit role. A
// branch-admin must name an existing branch; every other role gets no
// branch reference regardless of input.
func (s *Service) RegisterPrivileged(ctx context.Context, in PrivilegedRegisterInput) (*account.Account, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.Role == "" {
		return nil, fmt.Errorf("%w: role is required", ErrValidation)
	}
	role, ok := account.ParseRole(in.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}

	var branchID *string
	if role == account.RoleBranchAdmin {
		b, err := s.Branches.FindByID(ctx, in.BranchID)
		if err != nil {
			if errors.Is(err, branch.ErrNotFound) {
				return nil, ErrInvalidBranch
			}
			return nil, err
		}
		branchID = &b.ID
	}

	return s.create(ctx, in.RegisterInput, role, branchID)
}

func (s *Service) RegisterBranchAdmin(ctx context.Context, in RegisterInput, branchID string) (*account.Account, error) {
	return s.RegisterPrivileged(ctx, PrivilegedRegisterInput{
		RegisterInput: in,
		Role:          string(account.RoleBranchAdmin),
		BranchID:      branchID,
	})
}

func (in RegisterInput) validate() error {
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case in.Email == "":
		return fmt.Errorf("%w: email is required", ErrValidation)
	case in.Password == "":
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	return nil
}

func (s *Service) create(ctx context.Context, in RegisterInput, role account.Role, branchID *string) (*account.Account, error) {
	if _, err := s.Accounts.FindByEmail(ctx, in.Email); err == nil {
		return nil, account.ErrDuplicateEmail
	} else if !errors.Is(err, account.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password error: %w", err)
	}

	acc := &account.Account{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: string(hashed),
		Role:     role,
		BranchID: branchID,
	}

	if err := s.Accounts.Create(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}
