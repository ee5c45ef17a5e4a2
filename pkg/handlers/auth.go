package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ZiadAdelEissa/BookingBackend/pkg/account"
	"github.com/ZiadAdelEissa/BookingBackend/pkg/auth"
	"github.com/ZiadAdelEissa/BookingBackend/pkg/middleware"
	"github.com/ZiadAdelEissa/BookingBackend/pkg/session"
)

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	// Role is accepted and deliberately ignored on self-registration.
	Role string `json:"role,omitempty"`
}

type AdminRegisterForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
	BranchID string `json:"branchId"`
}

type BranchAdminForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	BranchID string `json:"branchId"`
}

type AuthHandler struct {
	Service   auth.ServiceInterface
	Transport *session.Transport
	Logger    *slog.Logger
}

func NewAuthHandler(service auth.ServiceInterface, transport *session.Transport, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		Service:   service,
		Transport: transport,
		Logger:    logger,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	acc, sess, err := h.Service.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, typeMessage, "Invalid credentials")
	case errors.Is(err, auth.ErrSessionPersistence):
		h.Logger.Error("login", "error", err)
		writeError(w, http.StatusInternalServerError, typeMessage, "Session save failed")
	case err != nil:
		h.Logger.Error("login", "error", err)
		writeError(w, http.StatusInternalServerError, typeMessage, "Server error")
	default:
		h.Transport.Issue(w, sess)
		if ok := WriteResp(w, h.Logger, map[string]any{
			"message": "Logged in successfully",
			"user":    acc,
		}, http.StatusOK); ok {
			h.Logger.Info("login", "account", acc.ID)
		}
	}
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Logout(r.Context(), h.Transport.Resolve(r)); err != nil {
		// Logout succeeds regardless; the session dies with its TTL.
		h.Logger.Error("logout", "error", err)
	}

	h.Transport.Clear(w)
	WriteResp(w, h.Logger, map[string]any{"message": "Logged out successfully"}, http.StatusOK)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	acc, err := h.Service.Register(r.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, account.ErrDuplicateEmail):
		WriteResp(w, h.Logger, map[string]any{
			"errors": []FieldError{
				{
					Location: "body",
					Param:    "email",
					Value:    req.Email,
					Msg:      "already exists",
				},
			},
		}, http.StatusBadRequest)
	case errors.Is(err, auth.ErrValidation):
		writeError(w, http.StatusBadRequest, typeMessage, err.Error())
	case err != nil:
		h.Logger.Error("register", "error", err)
		writeError(w, http.StatusInternalServerError, typeMessage, "Registration failed")
	default:
		if ok := WriteResp(w, h.Logger, map[string]any{
			"message": "User registered successfully",
			"user":    acc,
		}, http.StatusCreated); ok {
			h.Logger.Info("register", "account", acc.ID)
		}
	}
}

// Me returns the identity the gate resolved for this request.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	acc, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, typeMessage, "unauthorized")
		return
	}
	WriteResp(w, h.Logger, map[string]any{"user": acc}, http.StatusOK)
}

// RegisterPrivileged creates an account with an explicit role. The route
// is only reachable behind the super-admin gate.
func (h *AuthHandler) RegisterPrivileged(w http.ResponseWriter, r *http.Request) {
	var req AdminRegisterForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	acc, err := h.Service.RegisterPrivileged(r.Context(), auth.PrivilegedRegisterInput{
		RegisterInput: auth.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Password: req.Password,
		},
		Role:     req.Role,
		BranchID: req.BranchID,
	})
	switch {
	case errors.Is(err, auth.ErrValidation),
		errors.Is(err, auth.ErrInvalidBranch),
		errors.Is(err, account.ErrDuplicateEmail):
		WriteResp(w, h.Logger, map[string]any{
			"success": false,
			"message": err.Error(),
		}, http.StatusBadRequest)
	case err != nil:
		h.Logger.Error("admin register", "error", err)
		WriteResp(w, h.Logger, map[string]any{
			"success": false,
			"message": "Registration failed",
		}, http.StatusInternalServerError)
	default:
		if ok := WriteResp(w, h.Logger, map[string]any{
			"success": true,
			"user": map[string]any{
				"id":    acc.ID,
				"name":  acc.Name,
				"email": acc.Email,
				"role":  acc.Role,
			},
		}, http.StatusCreated); ok {
			h.Logger.Info("admin register", "account", acc.ID, "role", acc.Role)
		}
	}
}

func (h *AuthHandler) RegisterBranchAdmin(w http.ResponseWriter, r *http.Request) {
	var req BranchAdminForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	acc, err := h.Service.RegisterBranchAdmin(r.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	}, req.BranchID)
	switch {
	case errors.Is(err, auth.ErrInvalidBranch):
		writeError(w, http.StatusBadRequest, typeMessage, "Branch not found")
	case errors.Is(err, auth.ErrValidation), errors.Is(err, account.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, typeMessage, err.Error())
	case err != nil:
		h.Logger.Error("branch admin register", "error", err)
		writeError(w, http.StatusInternalServerError, typeMessage, "Registration failed")
	default:
		if ok := WriteResp(w, h.Logger, map[string]any{
			"message": "Branch admin registered successfully",
			"user":    acc,
		}, http.StatusCreated); ok {
			h.Logger.Info("branch admin register", "account", acc.ID)
		}
	}
}
