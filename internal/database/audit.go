package database

import (
	"context"
	"fmt"

	"problemas/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type auditRepo struct {
	db *gorm.DB
}

// Record appends an entry to the audit journal.
func (r *auditRepo) Record(ctx context.Context, entry *models.AuditLog) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error; err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *auditRepo) Recent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}

// DetachActor clears the actor reference of entries written by userID so the
// user row can be removed; ActorName keeps the journal readable.
func (r *auditRepo) DetachActor(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).Model(&models.AuditLog{}).
		Where("user_id = ?", userID).
		Update("user_id", nil).Error
	if err != nil {
		return fmt.Errorf("detach audit actor %d: %w", userID, err)
	}
	return nil
}
