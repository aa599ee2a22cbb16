package repository

import (
	"time"
	"vacation-tracker/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CalendarRepository interface {
	// GetRange возвращает записи календаря в [from, to] для региона и общие (region = '')
	GetRange(from, to time.Time, region string) ([]models.CalendarDay, error)
	GetByYear(year int, region string) ([]models.CalendarDay, error)
	// ReplaceYear атомарно заменяет записи года для региона
	ReplaceYear(year int, region string, days []models.CalendarDay) error
}

type GormCalendarRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func (r *GormCalendarRepository) GetRange(from, to time.Time, region string) ([]models.CalendarDay, error) {
	var days []models.CalendarDay
	query := r.db.Where("date >= ? AND date <= ?", from, to)
	if region != "" {
		query = query.Where("region = ? OR region = ''", region)
	} else {
		query = query.Where("region = ''")
	}
	err := query.Order("date ASC").Find(&days).Error
	return days, err
}

func (r *GormCalendarRepository) GetByYear(year int, region string) ([]models.CalendarDay, error) {
	var days []models.CalendarDay
	err := r.db.Where("year = ? AND region = ?", year, region).
		Order("date ASC").
		Find(&days).Error
	return days, err
}

func (r *GormCalendarRepository) ReplaceYear(year int, region string, days []models.CalendarDay) error {
	r.logger.WithFields(logrus.Fields{
		"year":   year,
		"region": region,
		"days":   len(days),
	}).Info("Replacing calendar year")

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("year = ? AND region = ?", year, region).
			Delete(&models.CalendarDay{}).Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "region"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_weekend", "is_holiday", "holiday_name", "year", "updated_at"}),
		}).Create(&days).Error
	})
}
