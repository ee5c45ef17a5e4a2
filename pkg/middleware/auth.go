package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ZiadAdelEissa/BookingBackend/pkg/account"
	"github.com/ZiadAdelEissa/BookingBackend/pkg/session"
)

var (
	ErrUnauthenticated = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
)

type contextKey string

const identityContextKey contextKey = "identity"

// Predicate is one step of the authorization gate. It sees the resolved
// account (nil when the request carries no usable session) and either
// passes or rejects with a terminal error.
type Predicate interface {
	check(acc *account.Account) error
}

type requireSession struct{}

func (requireSession) check(acc *account.Account) error {
	if acc == nil {
		return ErrUnauthenticated
	}
	return nil
}

type requireRole struct {
	min account.Role
}

func (p requireRole) check(acc *account.Account) error {
	if acc == nil {
		return ErrUnauthenticated
	}
	if !acc.Role.AtLeast(p.min) {
		return ErrForbidden
	}
	return nil
}

func RequireSession() Predicate { return requireSession{} }

func RequireRole(min account.Role) Predicate { return requireRole{min: min} }

// Gate resolves the request's session cookie to an account and runs an
// ordered predicate list against it. A rejection short-circuits: later
// predicates never run and the protected handler is never invoked.
type Gate struct {
	Transport *session.Transport
	Sessions  session.Store
	Accounts  account.Repository
	Logger    *slog.Logger
}

func NewGate(transport *session.Transport, sessions session.Store, accounts account.Repository, logger *slog.Logger) *Gate {
	return &Gate{Transport: transport, Sessions: sessions, Accounts: accounts, Logger: logger}
}

func (g *Gate) Protect(preds ...Predicate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			acc, err := g.resolve(r)
			if err != nil {
				g.Logger.Error("identity resolution", "error", err)
				writeGateError(w, http.StatusServiceUnavailable, "service unavailable")
				return
			}

			for _, p := range preds {
				switch err := p.check(acc); {
				case errors.Is(err, ErrUnauthenticated):
					writeGateError(w, http.StatusUnauthorized, "unauthorized")
					return
				case errors.Is(err, ErrForbidden):
					writeGateError(w, http.StatusForbidden, "forbidden")
					return
				case err != nil:
					g.Logger.Error("authorization predicate", "error", err)
					writeGateError(w, http.StatusInternalServerError, "internal server error")
					return
				}
			}

			ctx := context.WithValue(r.Context(), identityContextKey, acc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolve maps absent, tampered, expired and dangling sessions alike to a
// nil account; only an unreachable store is an error.
func (g *Gate) resolve(r *http.Request) (*account.Account, error) {
	id := g.Transport.Resolve(r)
	if id == "" {
		return nil, nil
	}

	sess, err := g.Sessions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	acc, err := g.Accounts.FindByID(r.Context(), sess.AccountID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			// Account deleted out from under a live session.
			return nil, nil
		}
		return nil, err
	}
	return acc, nil
}

// AccountFromContext returns the identity the gate resolved for this
// request.
func AccountFromContext(ctx context.Context) (*account.Account, bool) {
	acc, ok := ctx.Value(identityContextKey).(*account.Account)
	return acc, ok && acc != nil
}

func writeGateError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"message": msg}); err != nil {
		return
	}
}
