package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sweetshop/internal/models"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// Recent returns the newest entries first, at most limit of them.
func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	var entries []models.AuditEntry
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
