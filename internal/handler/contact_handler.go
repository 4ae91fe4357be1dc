package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/johnsosoka/jscom-contact-services/internal/service"
)

const (
	maxBodyBytes     = 64 << 10
	maxMessageLength = 5000
)

// ContactHandler handles public contact form submissions (the pipeline
// ingress).
type ContactHandler struct {
	submissions       service.SubmissionService
	trustedProxyCount int
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(submissions service.SubmissionService, trustedProxyCount int) *ContactHandler {
	return &ContactHandler{submissions: submissions, trustedProxyCount: trustedProxyCount}
}

// submitRequest is the expected JSON body for POST /contact. The source IP
// and user agent are deliberately absent: they are derived from the
// transport and a client-supplied value is never honored.
type submitRequest struct {
	ContactName       string `json:"contact_name"`
	ContactEmail      string `json:"contact_email"`
	ContactMessage    string `json:"contact_message"`
	ConsultingContact bool   `json:"consulting_contact"`
	CompanyName       string `json:"company_name"`
	Industry          string `json:"industry"`
}

// Submit handles POST /contact. It responds 200 only after the submission
// has been accepted by the queue; an enqueue failure is a 500, never a false
// success.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len([]rune(req.ContactMessage)) > maxMessageLength {
		writeError(w, http.StatusBadRequest, "contact_message exceeds maximum length")
		return
	}

	_, err := h.submissions.Submit(r.Context(), service.SubmissionRequest{
		ContactName:    req.ContactName,
		ContactEmail:   req.ContactEmail,
		ContactMessage: req.ContactMessage,
		Consulting:     req.ConsultingContact,
		CompanyName:    req.CompanyName,
		Industry:       req.Industry,
	}, ClientIP(r, h.trustedProxyCount), r.UserAgent())

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to accept message")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Message Received. Currently Processing",
	})
}
