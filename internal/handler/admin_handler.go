package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/johnsosoka/jscom-contact-services/internal/model"
	"github.com/johnsosoka/jscom-contact-services/internal/repository"
	"github.com/johnsosoka/jscom-contact-services/internal/service"
)

// AdminHandler exposes the admin query/CRUD surface: a thin read layer over
// the message store plus block-list management. Authentication is enforced
// in front of this service, not here.
type AdminHandler struct {
	admin service.AdminService
}

// NewAdminHandler creates an AdminHandler with the given service.
func NewAdminHandler(admin service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// listMessagesResponse is the JSON response for GET /admin/messages.
type listMessagesResponse struct {
	Messages   []*model.Submission `json:"messages"`
	NextCursor string              `json:"next_cursor,omitempty"`
}

// ListMessages handles GET /admin/messages.
// Query params: contact_type (all/standard/consulting), limit, cursor.
func (h *AdminHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	opts := model.SubmissionListOptions{
		ContactType: r.URL.Query().Get("contact_type"),
		Cursor:      r.URL.Query().Get("cursor"),
		Limit:       20,
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			opts.Limit = n
		}
	}

	messages, next, err := h.admin.ListMessages(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.Submission{}
	}
	writeJSON(w, http.StatusOK, listMessagesResponse{Messages: messages, NextCursor: next})
}

// GetMessage handles GET /admin/messages/{id}.
func (h *AdminHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := h.admin.GetMessage(r.Context(), r.PathValue("id"))
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "message not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load message")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// listBlockedResponse is the JSON response for GET /admin/blocklist.
type listBlockedResponse struct {
	Blocked []*model.BlockEntry `json:"blocked"`
}

// ListBlocked handles GET /admin/blocklist.
func (h *AdminHandler) ListBlocked(w http.ResponseWriter, r *http.Request) {
	entries, err := h.admin.ListBlocked(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list block entries")
		return
	}
	if entries == nil {
		entries = []*model.BlockEntry{}
	}
	writeJSON(w, http.StatusOK, listBlockedResponse{Blocked: entries})
}

// blockRequest is the expected JSON body for POST /admin/blocklist.
type blockRequest struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
}

// Block handles POST /admin/blocklist.
func (h *AdminHandler) Block(w http.ResponseWriter, r *http.Request) {
	var req blockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.admin.Block(r.Context(), req.IPAddress, req.UserAgent)
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, repository.ErrDuplicate):
		writeError(w, http.StatusConflict, "ip_address is already blocked")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to create block entry")
	default:
		writeJSON(w, http.StatusCreated, entry)
	}
}

// Unblock handles DELETE /admin/blocklist/{id}.
func (h *AdminHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	err := h.admin.Unblock(r.Context(), r.PathValue("id"))
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "block entry not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete block entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
