package repository

import (
	"vacation-tracker/internal/models"

	"gorm.io/gorm"
)

type PolicyRepository interface {
	Create(policy *models.VacationPolicy) error
	GetByID(id uint) (*models.VacationPolicy, error)
	// GetByYear возвращает политику года; при нескольких - default, затем с меньшим id
	GetByYear(year int) (*models.VacationPolicy, error)
}

type GormPolicyRepository struct {
	db *gorm.DB
}

func (r *GormPolicyRepository) Create(policy *models.VacationPolicy) error {
	return r.db.Create(policy).Error
}

func (r *GormPolicyRepository) GetByID(id uint) (*models.VacationPolicy, error) {
	var policy models.VacationPolicy
	err := r.db.First(&policy, id).Error
	return notFound(&policy, err)
}

func (r *GormPolicyRepository) GetByYear(year int) (*models.VacationPolicy, error) {
	var policy models.VacationPolicy
	err := r.db.Where("year = ?", year).
		Order("is_default DESC, id ASC").
		First(&policy).Error
	return notFound(&policy, err)
}
