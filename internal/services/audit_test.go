package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"recipebox/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAuditService(t *testing.T) {
	db := setupTestDB(t)
	logger := testLogger()
	service := NewAuditService(db, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.Start(ctx)

	t.Run("Log Action", func(t *testing.T) {
		userID := uint(1)
		service.LogAction(&userID, models.ActionCreateRecipe, "42", map[string]string{"title": "Soup"}, "127.0.0.1")

		assert.Eventually(t, func() bool {
			var count int64
			db.Model(&models.AuditLog{}).Count(&count)
			return count == 1
		}, time.Second, 10*time.Millisecond)

		var log models.AuditLog
		err := db.First(&log).Error
		assert.NoError(t, err)
		assert.Equal(t, models.ActionCreateRecipe, log.Action)
		assert.Equal(t, "42", log.EntityID)
		assert.Contains(t, log.Details, "Soup")
		assert.Equal(t, uint(1), *log.UserID)
	})

	t.Run("Long Entity ID Truncated", func(t *testing.T) {
		service := NewAuditService(db, logger)
		service.LogAction(nil, models.ActionLoginFailed, strings.Repeat("é", 80), nil, "127.0.0.1")

		entry := <-service.entries
		assert.Equal(t, strings.Repeat("é", auditEntityIDMax), entry.EntityID)

		service.LogAction(nil, models.ActionLoginFailed, "chef", nil, "127.0.0.1")
		entry = <-service.entries
		assert.Equal(t, "chef", entry.EntityID)
	})

	t.Run("Channel Full", func(t *testing.T) {
		service := NewAuditService(db, logger)
		// Fill channel
		for i := 0; i < auditBufferSize; i++ {
			service.LogAction(nil, models.ActionLogin, "ID", nil, "IP")
		}
		// Should drop
		service.LogAction(nil, "DROP", "ID", nil, "IP")
		assert.Len(t, service.entries, auditBufferSize)
	})

	t.Run("Drain On Stop", func(t *testing.T) {
		drainDB := setupTestDB(t)
		service := NewAuditService(drainDB, logger)
		service.LogAction(nil, models.ActionLogout, "a", nil, "IP")
		service.LogAction(nil, models.ActionLogout, "b", nil, "IP")

		stopCtx, stop := context.WithCancel(context.Background())
		stop()
		service.Start(stopCtx)

		var count int64
		drainDB.Model(&models.AuditLog{}).Where("action = ?", models.ActionLogout).Count(&count)
		assert.Equal(t, int64(2), count)
	})

	t.Run("DB Error", func(t *testing.T) {
		dbErr := setupTestDB(t)
		dbErr.Migrator().DropTable(&models.AuditLog{})
		serviceErr := NewAuditService(dbErr, logger)

		ctxErr, cancelErr := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			serviceErr.Start(ctxErr)
			close(done)
		}()

		serviceErr.LogAction(nil, "ERROR", "ID", nil, "IP")
		time.Sleep(50 * time.Millisecond)
		cancelErr()
		<-done
	})
}
