package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"vacation-tracker/internal/models"
	"vacation-tracker/internal/repository"
	"vacation-tracker/pkg/logger"
)

// AbsenceSyncService поддерживает календарь отсутствий в соответствии с заявками.
// Записи с SourceRequestID принадлежат только ему.
type AbsenceSyncService struct {
	repo   *repository.Repository
	logger *logrus.Logger
}

func NewAbsenceSyncService(repo *repository.Repository, log *logrus.Logger) *AbsenceSyncService {
	return &AbsenceSyncService{
		repo:   repo,
		logger: logger.OrDefault(log),
	}
}

// Sync перестраивает отсутствия по заявке. Повторный вызов ничего не меняет.
func (s *AbsenceSyncService) Sync(requestID uint) error {
	return s.repo.Transaction(func(repo *repository.Repository) error {
		return s.sync(repo, requestID)
	})
}

func (s *AbsenceSyncService) sync(repo *repository.Repository, requestID uint) error {
	request, err := repo.Request.GetByID(requestID)
	if err != nil {
		return fmt.Errorf("ошибка получения заявки: %w", err)
	}
	if request == nil {
		return ErrRequestNotFound
	}

	if err := repo.Absence.DeleteBySourceRequest(requestID); err != nil {
		return fmt.Errorf("ошибка удаления отсутствий: %w", err)
	}

	if request.Status != models.StatusApproved {
		s.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     request.Status,
		}).Debug("Absences cleared for request")
		return nil
	}

	var entries []models.AbsenceEntry
	for _, day := range request.Days {
		if day.IsHolidayOrWeekend {
			continue
		}
		entries = append(entries, models.AbsenceEntry{
			EmployeeID:      request.EmployeeID,
			Date:            models.DateOnly(day.Date),
			AbsenceType:     request.Type,
			SourceRequestID: request.ID,
		})
	}

	if err := repo.Absence.CreateBatch(entries); err != nil {
		return fmt.Errorf("ошибка создания отсутствий: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"request_id":  requestID,
		"employee_id": request.EmployeeID,
		"entries":     len(entries),
	}).Info("Absences synchronized")

	return nil
}

// AbsentOn - кто отсутствует в указанный день
func (s *AbsenceSyncService) AbsentOn(date time.Time) ([]models.AbsenceEntry, error) {
	date = models.DateOnly(date)
	return s.repo.Absence.ListByDateRange(date, date)
}
