package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

const (
	auditBufferSize = 100
	// matches the entity_id column width
	auditEntityIDMax = 50
)

// AuditService records security-relevant actions without blocking requests.
// Entries are queued and written by Start; when the queue is full they are
// dropped.
type AuditService struct {
	db      *gorm.DB
	logger  *slog.Logger
	entries chan models.AuditLog
}

func NewAuditService(db *gorm.DB, logger *slog.Logger) *AuditService {
	return &AuditService{
		db:      db,
		logger:  logger,
		entries: make(chan models.AuditLog, auditBufferSize),
	}
}

func (s *AuditService) Start(ctx context.Context) {
	s.logger.Info("Audit worker starting")
	for {
		select {
		case entry := <-s.entries:
			s.write(entry)
		case <-ctx.Done():
			s.drain()
			s.logger.Info("Audit worker stopping")
			return
		}
	}
}

func (s *AuditService) LogAction(userID *uint, action, entityID string, details any, ip string) {
	var detailText string
	if details != nil {
		detailBytes, err := json.Marshal(details)
		if err != nil {
			s.logger.Warn("Failed to encode audit details", "action", action, "error", err)
		}
		detailText = string(detailBytes)
	}

	entry := models.AuditLog{
		UserID:    userID,
		Action:    action,
		EntityID:  truncateRunes(entityID, auditEntityIDMax),
		Details:   detailText,
		IPAddress: ip,
		Timestamp: time.Now(),
	}

	select {
	case s.entries <- entry:
	default:
		s.logger.Warn("Audit channel full, dropping log", "action", action)
	}
}

// drain flushes whatever is already queued at shutdown.
func (s *AuditService) drain() {
	for {
		select {
		case entry := <-s.entries:
			s.write(entry)
		default:
			return
		}
	}
}

func (s *AuditService) write(entry models.AuditLog) {
	if err := s.db.Create(&entry).Error; err != nil {
		s.logger.Error("Failed to write audit log", "action", entry.Action, "error", err)
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
