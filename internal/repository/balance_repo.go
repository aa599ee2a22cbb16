package repository

import (
	"vacation-tracker/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BalanceRepository interface {
	GetByEmployeeYear(employeeID uint, year int) (*models.VacationBalance, error)
	// CreateIfAbsent вставляет баланс, если пары (employee, year) еще нет.
	// Возвращает false, если запись уже была.
	CreateIfAbsent(balance *models.VacationBalance) (bool, error)
	Update(balance *models.VacationBalance) error
	EmployeeIDsWithBalance(policyID uint, year int) ([]uint, error)
	CreateBatch(balances []models.VacationBalance) (int64, error)
}

type GormBalanceRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func (r *GormBalanceRepository) GetByEmployeeYear(employeeID uint, year int) (*models.VacationBalance, error) {
	var balance models.VacationBalance
	err := r.db.Where("employee_id = ? AND year = ?", employeeID, year).First(&balance).Error
	return notFound(&balance, err)
}

func (r *GormBalanceRepository) CreateIfAbsent(balance *models.VacationBalance) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "year"}},
		DoNothing: true,
	}).Create(balance)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormBalanceRepository) Update(balance *models.VacationBalance) error {
	return r.db.Model(balance).Updates(map[string]interface{}{
		"used_days":      balance.UsedDays,
		"remaining_days": balance.RemainingDays,
	}).Error
}

func (r *GormBalanceRepository) EmployeeIDsWithBalance(policyID uint, year int) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.VacationBalance{}).
		Where("policy_id = ? AND year = ?", policyID, year).
		Pluck("employee_id", &ids).Error
	return ids, err
}

// balanceBatchSize держит число параметров INSERT ниже лимита SQLite
const balanceBatchSize = 500

// CreateBatch вставляет балансы пачками по balanceBatchSize, пропуская конфликты (employee_id, year).
// Возвращает число реально созданных записей.
func (r *GormBalanceRepository) CreateBatch(balances []models.VacationBalance) (int64, error) {
	if len(balances) == 0 {
		return 0, nil
	}

	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "year"}},
		DoNothing: true,
	}).CreateInBatches(&balances, balanceBatchSize)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to insert balances batch")
		return 0, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"requested": len(balances),
		"inserted":  result.RowsAffected,
	}).Debug("Balances batch inserted")

	return result.RowsAffected, nil
}
