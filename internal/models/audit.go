package models

// AuditLogModel is the compliance trail for document access. One row per
// rag request, recording what the caller asked, what clearance they held
// and the richest disclosure tier that was granted.
type AuditLogModel struct {
	Base
	UserID          string `json:"user_id"           gorm:"type:char(36);index"`
	Action          string `json:"action"            gorm:"type:varchar(50);not null"` // "retrieve" | "answer"
	UserAccessLevel int    `json:"user_access_level"`
	TierGranted     string `json:"tier_granted"      gorm:"type:varchar(20)"`
	QueryText       string `json:"query_text"        gorm:"type:text"`
	IPAddress       string `json:"ip_address"        gorm:"type:varchar(45)"`
	UserAgent       string `json:"user_agent"        gorm:"type:varchar(500)"`
	ResponseTimeMs  int64  `json:"response_time_ms"`
	StatusCode      int    `json:"status_code"`
}

func (AuditLogModel) TableName() string { return "audit_logs" }
