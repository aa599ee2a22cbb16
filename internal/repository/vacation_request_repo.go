package repository

import (
	"time"
	"vacation-tracker/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type VacationRequestRepository interface {
	// Create сохраняет заявку вместе с разбивкой по дням
	Create(request *models.VacationRequest) error
	GetByID(id uint) (*models.VacationRequest, error)
	// Update сохраняет поля заявки; дни не трогает
	Update(request *models.VacationRequest) error
	// FindOverlapping - заявки сотрудника, кроме rejected/cancelled, пересекающие [start, end]
	FindOverlapping(employeeID uint, start, end time.Time, excludeID uint) ([]models.VacationRequest, error)
	ListApprovedStartingInYear(employeeID uint, year int) ([]models.VacationRequest, error)
	ListByEmployee(employeeID uint) ([]models.VacationRequest, error)
	ListByEmployeesAndStatus(employeeIDs []uint, status models.RequestStatus) ([]models.VacationRequest, error)
}

type GormVacationRequestRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func (r *GormVacationRequestRepository) Create(request *models.VacationRequest) error {
	if err := r.db.Create(request).Error; err != nil {
		r.logger.WithError(err).WithField("employee_id", request.EmployeeID).
			Error("Failed to create vacation request")
		return err
	}
	return nil
}

func (r *GormVacationRequestRepository) GetByID(id uint) (*models.VacationRequest, error) {
	var request models.VacationRequest
	err := r.db.Preload("Days", func(db *gorm.DB) *gorm.DB {
		return db.Order("date ASC")
	}).First(&request, id).Error
	return notFound(&request, err)
}

func (r *GormVacationRequestRepository) Update(request *models.VacationRequest) error {
	return r.db.Omit("Days", "Employee").Save(request).Error
}

func (r *GormVacationRequestRepository) FindOverlapping(employeeID uint, start, end time.Time, excludeID uint) ([]models.VacationRequest, error) {
	var requests []models.VacationRequest
	query := r.db.Where("employee_id = ? AND status NOT IN ? AND start_date <= ? AND end_date >= ?",
		employeeID,
		[]models.RequestStatus{models.StatusRejected, models.StatusCancelled},
		end, start)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Order("start_date ASC, id ASC").Find(&requests).Error
	return requests, err
}

func (r *GormVacationRequestRepository) ListApprovedStartingInYear(employeeID uint, year int) ([]models.VacationRequest, error) {
	from, to := models.YearBounds(year)
	var requests []models.VacationRequest
	err := r.db.Where("employee_id = ? AND status = ? AND start_date >= ? AND start_date < ?",
		employeeID, models.StatusApproved, from, to).
		Find(&requests).Error
	return requests, err
}

func (r *GormVacationRequestRepository) ListByEmployee(employeeID uint) ([]models.VacationRequest, error) {
	var requests []models.VacationRequest
	err := r.db.Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *GormVacationRequestRepository) ListByEmployeesAndStatus(employeeIDs []uint, status models.RequestStatus) ([]models.VacationRequest, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var requests []models.VacationRequest
	err := r.db.Preload("Employee").
		Where("employee_id IN ? AND status = ?", employeeIDs, status).
		Order("submitted_at ASC, id ASC").
		Find(&requests).Error
	return requests, err
}
