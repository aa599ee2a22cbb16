package repository

import (
	"vacation-tracker/internal/models"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Append(entry *models.AuditEntry) error
	ListByEntity(entityType string, entityID uint) ([]models.AuditEntry, error)
}

type GormAuditRepository struct {
	db *gorm.DB
}

func (r *GormAuditRepository) Append(entry *models.AuditEntry) error {
	return r.db.Create(entry).Error
}

func (r *GormAuditRepository) ListByEntity(entityType string, entityID uint) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	err := r.db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
