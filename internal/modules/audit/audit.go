// Package audit keeps a compliance trail of every policy-gated request,
// independent of the per-session query ledger.
package audit

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bankbot/core/internal/models"
)

type Entry struct {
	UserID          string
	Action          string
	UserAccessLevel int
	TierGranted     string
	QueryText       string
	IPAddress       string
	UserAgent       string
	ResponseTimeMs  int64
	StatusCode      int
}

type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger.Named("audit")}
}

// Record writes one trail entry. A failed write must not fail the request
// it describes, so the error is logged and swallowed.
func (s *Service) Record(ctx context.Context, entry Entry) {
	row := &models.AuditLogModel{
		UserID:          entry.UserID,
		Action:          entry.Action,
		UserAccessLevel: entry.UserAccessLevel,
		TierGranted:     entry.TierGranted,
		QueryText:       entry.QueryText,
		IPAddress:       entry.IPAddress,
		UserAgent:       entry.UserAgent,
		ResponseTimeMs:  entry.ResponseTimeMs,
		StatusCode:      entry.StatusCode,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		s.logger.Warn("failed to record audit entry",
			zap.String("action", entry.Action), zap.Error(err))
	}
}
