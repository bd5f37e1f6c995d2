package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bankbot/core/internal/models"
)

const summaryQueryLimit = 120

type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger.Named("history")}
}

// Append persists one ledger entry. An empty SessionID starts a fresh
// session; the entry is returned with the session id filled in.
func (s *Service) Append(ctx context.Context, params AppendParams) (*models.QueryHistoryModel, error) {
	if params.SessionID == "" {
		params.SessionID = uuid.New().String()
	}

	row := &models.QueryHistoryModel{
		UserID:       params.UserID,
		SessionID:    params.SessionID,
		Route:        params.Route,
		QueryText:    params.QueryText,
		ResponseText: params.ResponseText,
		IPAddress:    params.IPAddress,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("append history entry: %w", err)
	}
	return row, nil
}

// ListSessions returns one summary per session of the user, most recently
// active first.
func (s *Service) ListSessions(ctx context.Context, userID string) ([]SessionSummary, error) {
	type sessionRow struct {
		SessionID  string
		LastActive string
	}

	var rows []sessionRow
	if err := s.db.WithContext(ctx).
		Model(&models.QueryHistoryModel{}).
		Select("session_id, MAX(created_at) AS last_active").
		Where("user_id = ?", userID).
		Group("session_id").
		Order("last_active DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	summaries := make([]SessionSummary, 0, len(rows))
	for _, row := range rows {
		var latest models.QueryHistoryModel
		err := s.db.WithContext(ctx).
			Where("user_id = ? AND session_id = ?", userID, row.SessionID).
			Order("created_at DESC").
			First(&latest).Error
		if err != nil {
			s.logger.Warn("skip session without readable entries",
				zap.String("sessionId", row.SessionID), zap.Error(err))
			continue
		}
		summaries = append(summaries, SessionSummary{
			SessionID:     row.SessionID,
			LastQuery:     truncateQuery(latest.QueryText),
			LastCreatedAt: latest.CreatedAt,
		})
	}
	return summaries, nil
}

// Entries returns every entry of one session, newest first. Sessions are
// scoped to their owner; another user's session id yields an empty list.
func (s *Service) Entries(ctx context.Context, userID, sessionID string) ([]models.QueryHistoryModel, error) {
	var rows []models.QueryHistoryModel
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load session entries: %w", err)
	}
	return rows, nil
}

// DeleteSession removes every entry of the session in one statement.
// Deleting an unknown session is a no-op.
func (s *Service) DeleteSession(ctx context.Context, userID, sessionID string) error {
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Delete(&models.QueryHistoryModel{}).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func truncateQuery(text string) string {
	runes := []rune(text)
	if len(runes) <= summaryQueryLimit {
		return text
	}
	return string(runes[:summaryQueryLimit])
}
