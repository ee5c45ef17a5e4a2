package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ZiadAdelEissa/BookingBackend/pkg/account"
	"github.com/ZiadAdelEissa/BookingBackend/pkg/middleware"
	"github.com/ZiadAdelEissa/BookingBackend/pkg/session"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Create(ctx context.Context, accountID string) (*session.Session, error) {
	args := m.Called(ctx, accountID)
	if s := args.Get(0); s != nil {
		return s.(*session.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) Get(ctx context.Context, id string) (*session.Session, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*session.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockAccounts struct {
	mock.Mock
}

func (m *mockAccounts) Create(ctx context.Context, acc *account.Account) error {
	return m.Called(ctx, acc).Error(0)
}

func (m *mockAccounts) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	args := m.Called(ctx, email)
	if acc := args.Get(0); acc != nil {
		return acc.(*account.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccounts) FindByID(ctx context.Context, id string) (*account.Account, error) {
	args := m.Called(ctx, id)
	if acc := args.Get(0); acc != nil {
		return acc.(*account.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func newGate() (*middleware.Gate, *session.Transport, *mockStore, *mockAccounts) {
	transport := session.NewTransport("secret", false)
	store := new(mockStore)
	accounts := new(mockAccounts)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))
	return middleware.NewGate(transport, store, accounts, logger), transport, store, accounts
}

func requestWithSession(t *testing.T, transport *session.Transport, id string) *http.Request {
	t.Helper()

	rec := httptest.NewRecorder()
	transport.Issue(rec, &session.Session{ID: id})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	return req
}

func run(gate *middleware.Gate, req *http.Request, preds ...middleware.Predicate) (*httptest.ResponseRecorder, *bool) {
	invoked := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	gate.Protect(preds...)(next).ServeHTTP(rr, req)
	return rr, &invoked
}

func validSession(id, accountID string) *session.Session {
	now := time.Now()
	return &session.Session{
		ID:        id,
		AccountID: accountID,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestGate_NoCookie(t *testing.T) {
	gate, _, _, _ := newGate()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rr, invoked := run(gate, req, middleware.RequireSession())

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "unauthorized")
	assert.False(t, *invoked)
}

func TestGate_TamperedCookie(t *testing.T) {
	gate, _, store, _ := newGate()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "forged.signature"})
	rr, invoked := run(gate, req, middleware.RequireSession())

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *invoked)
	// a bad signature never reaches the store
	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGate_ExpiredSession(t *testing.T) {
	gate, transport, store, _ := newGate()
	store.On("Get", mock.Anything, "sess1").Return(nil, session.ErrNotFound)

	rr, invoked := run(gate, requestWithSession(t, transport, "sess1"), middleware.RequireSession())

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *invoked)
}

func TestGate_DanglingSession(t *testing.T) {
	gate, transport, store, accounts := newGate()
	store.On("Get", mock.Anything, "sess1").Return(validSession("sess1", "gone"), nil)
	accounts.On("FindByID", mock.Anything, "gone").Return(nil, account.ErrNotFound)

	rr, invoked := run(gate, requestWithSession(t, transport, "sess1"), middleware.RequireSession())

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *invoked)
}

func TestGate_InsufficientRole(t *testing.T) {
	gate, transport, store, accounts := newGate()
	store.On("Get", mock.Anything, "sess1").Return(validSession("sess1", "acc1"), nil)
	accounts.On("FindByID", mock.Anything, "acc1").
		Return(&account.Account{ID: "acc1", Role: account.RoleBranchAdmin}, nil)

	rr, invoked := run(gate, requestWithSession(t, transport, "sess1"),
		middleware.RequireSession(),
		middleware.RequireRole(account.RoleSuperAdmin),
	)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "forbidden")
	assert.False(t, *invoked)
}

func TestGate_OrderingShortCircuits(t *testing.T) {
	// with no usable session the first predicate rejects 401; the role
	// predicate behind it must never turn that into a 403
	gate, _, _, _ := newGate()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rr, invoked := run(gate, req,
		middleware.RequireSession(),
		middleware.RequireRole(account.RoleSuperAdmin),
	)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *invoked)
}

func TestGate_Pass(t *testing.T) {
	gate, transport, store, accounts := newGate()
	acc := &account.Account{ID: "acc1", Role: account.RoleSuperAdmin}
	store.On("Get", mock.Anything, "sess1").Return(validSession("sess1", "acc1"), nil)
	accounts.On("FindByID", mock.Anything, "acc1").Return(acc, nil)

	var seen *account.Account
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = middleware.AccountFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	gate.Protect(
		middleware.RequireSession(),
		middleware.RequireRole(account.RoleSuperAdmin),
	)(next).ServeHTTP(rr, requestWithSession(t, transport, "sess1"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, acc, seen)
}

func TestGate_StoreUnavailable(t *testing.T) {
	gate, transport, store, _ := newGate()
	store.On("Get", mock.Anything, "sess1").Return(nil, session.ErrStoreUnavailable)

	rr, invoked := run(gate, requestWithSession(t, transport, "sess1"), middleware.RequireSession())

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.False(t, *invoked)
}

func TestAccountFromContext_Empty(t *testing.T) {
	_, ok := middleware.AccountFromContext(context.Background())
	assert.False(t, ok)
}
