package models

// History routes. Each QueryHistory row records which route produced it.
const (
	RouteRetrieve = "retrieve"
	RouteAnswer   = "answer"
)

// QueryHistoryModel stores each user query and the response returned, grouped
// into sessions. Rows are append-only; a session is only ever deleted as a
// whole.
type QueryHistoryModel struct {
	Base
	UserID       string `json:"user_id"       gorm:"type:char(36);index;not null"`
	SessionID    string `json:"session_id"    gorm:"type:char(36);index;not null"`
	Route        string `json:"route"         gorm:"type:varchar(20);not null"`
	QueryText    string `json:"query_text"    gorm:"type:text;not null"`
	ResponseText string `json:"response_text" gorm:"type:longtext"`
	IPAddress    string `json:"ip_address"    gorm:"type:varchar(45)"`
}

func (QueryHistoryModel) TableName() string { return "query_history" }
