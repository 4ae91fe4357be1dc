package model

// Contact types for a submission. Consulting submissions carry company_name
// and industry; standard submissions never do.
const (
	ContactTypeStandard   = "standard"
	ContactTypeConsulting = "consulting"
)

// Submission is one processed contact-form entry. It is constructed once at
// ingress and immutable afterwards; only IsBlocked is assigned, exactly once,
// by the filter stage as part of the initial store write.
//
// The JSON field names are the queue wire format and match the stored
// representation.
type Submission struct {
	ID             string `json:"id"`
	ContactName    string `json:"contact_name,omitempty"`
	ContactEmail   string `json:"contact_email,omitempty"`
	ContactMessage string `json:"contact_message"`
	IPAddress      string `json:"ip_address"`
	UserAgent      string `json:"user_agent"`
	Timestamp      int64  `json:"timestamp"`
	ContactType    string `json:"contact_type"`
	CompanyName    string `json:"company_name,omitempty"`
	Industry       string `json:"industry,omitempty"`
	IsBlocked      bool   `json:"is_blocked"`
}

// SubmissionListOptions carries filter and pagination parameters for the
// admin message listing.
type SubmissionListOptions struct {
	// ContactType filters by type: "", "all", "standard", "consulting".
	// Empty string and "all" return all submissions.
	ContactType string
	Limit       int
	// Cursor is the opaque continuation token from a previous page, or ""
	// for the first page.
	Cursor string
}
