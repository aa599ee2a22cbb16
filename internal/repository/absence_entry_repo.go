package repository

import (
	"time"
	"vacation-tracker/internal/models"

	"gorm.io/gorm"
)

type AbsenceEntryRepository interface {
	CreateBatch(entries []models.AbsenceEntry) error
	DeleteBySourceRequest(requestID uint) error
	ListBySourceRequest(requestID uint) ([]models.AbsenceEntry, error)
	ListByDateRange(from, to time.Time) ([]models.AbsenceEntry, error)
}

type GormAbsenceEntryRepository struct {
	db *gorm.DB
}

const absenceBatchSize = 500

func (r *GormAbsenceEntryRepository) CreateBatch(entries []models.AbsenceEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.Omit("Employee").CreateInBatches(&entries, absenceBatchSize).Error
}

func (r *GormAbsenceEntryRepository) DeleteBySourceRequest(requestID uint) error {
	return r.db.Where("source_request_id = ?", requestID).Delete(&models.AbsenceEntry{}).Error
}

func (r *GormAbsenceEntryRepository) ListBySourceRequest(requestID uint) ([]models.AbsenceEntry, error) {
	var entries []models.AbsenceEntry
	err := r.db.Where("source_request_id = ?", requestID).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *GormAbsenceEntryRepository) ListByDateRange(from, to time.Time) ([]models.AbsenceEntry, error) {
	var entries []models.AbsenceEntry
	err := r.db.Preload("Employee").
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, employee_id ASC").
		Find(&entries).Error
	return entries, err
}
