package history

import "time"

// AppendParams describes one ledger entry. SessionID may be left empty,
// in which case a fresh session is started.
type AppendParams struct {
	UserID       string
	SessionID    string
	Route        string
	QueryText    string
	ResponseText string
	IPAddress    string
}

type SessionSummary struct {
	SessionID     string    `json:"session_id"`
	LastQuery     string    `json:"last_query"`
	LastCreatedAt time.Time `json:"last_created_at"`
}

type EntryResponse struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	Route        string    `json:"route"`
	QueryText    string    `json:"query_text"`
	ResponseText string    `json:"response_text"`
	IPAddress    string    `json:"ip_address"`
	CreatedAt    time.Time `json:"created_at"`
}
