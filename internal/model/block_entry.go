package model

// BlockEntry identifies a blocked submission source by IP address. Entries
// are managed by the admin surface; the pipeline only reads them.
type BlockEntry struct {
	ID        string `json:"id"`
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent,omitempty"`
	IsBlocked bool   `json:"is_blocked"`
}
