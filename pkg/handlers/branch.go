package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ZiadAdelEissa/BookingBackend/pkg/branch"
)

type BranchForm struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type BranchHandler struct {
	Repo   branch.Repository
	Logger *slog.Logger
}

func NewBranchHandler(repo branch.Repository, logger *slog.Logger) *BranchHandler {
	return &BranchHandler{Repo: repo, Logger: logger}
}

func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	branches, err := h.Repo.List(r.Context())
	if err != nil {
		h.Logger.Error("list branches", "error", err)
		writeError(w, http.StatusInternalServerError, typeMessage, "Server error")
		return
	}
	WriteResp(w, h.Logger, map[string]any{"branches": branches}, http.StatusOK)
}

func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BranchForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, typeMessage, "name is required")
		return
	}

	b := &branch.Branch{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if err := h.Repo.Create(r.Context(), b); err != nil {
		h.Logger.Error("create branch", "error", err)
		writeError(w, http.StatusInternalServerError, typeMessage, "Server error")
		return
	}

	if ok := WriteResp(w, h.Logger, map[string]any{
		"message": "Branch created successfully",
		"branch":  b,
	}, http.StatusCreated); ok {
		h.Logger.Info("create branch", "branch", b.ID)
	}
}
