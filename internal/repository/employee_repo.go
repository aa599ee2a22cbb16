package repository

import (
	"vacation-tracker/internal/models"

	"gorm.io/gorm"
)

// EmployeeRepository - справочник сотрудников (активность, руководитель)
type EmployeeRepository interface {
	Create(employee *models.Employee) error
	GetByID(id uint) (*models.Employee, error)
	GetByChatID(chatID int64) (*models.Employee, error)
	ListActive() ([]models.Employee, error)
	ListSubordinates(managerID uint) ([]models.Employee, error)
}

type GormEmployeeRepository struct {
	db *gorm.DB
}

func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

func (r *GormEmployeeRepository) GetByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.First(&employee, id).Error
	return notFound(&employee, err)
}

func (r *GormEmployeeRepository) GetByChatID(chatID int64) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.Where("telegram_chat_id = ?", chatID).First(&employee).Error
	return notFound(&employee, err)
}

func (r *GormEmployeeRepository) ListActive() ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&employees).Error
	return employees, err
}

func (r *GormEmployeeRepository) ListSubordinates(managerID uint) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Where("manager_id = ? AND is_active = ?", managerID, true).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}
