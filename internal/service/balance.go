package service

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"vacation-tracker/internal/metrics"
	"vacation-tracker/internal/models"
	"vacation-tracker/internal/repository"
	"vacation-tracker/pkg/logger"
)

type BalanceService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *logrus.Logger
}

func NewBalanceService(repo *repository.Repository, m *metrics.Metrics, log *logrus.Logger) *BalanceService {
	return &BalanceService{
		repo:    repo,
		metrics: m,
		logger:  logger.OrDefault(log),
	}
}

// GetOrCreate возвращает баланс за год, создавая его по политике года при первом обращении.
// (nil, nil) - нет политики на год или сотрудник не найден/неактивен.
func (s *BalanceService) GetOrCreate(employeeID uint, year int) (*models.VacationBalance, error) {
	return s.getOrCreate(s.repo, employeeID, year)
}

func (s *BalanceService) getOrCreate(repo *repository.Repository, employeeID uint, year int) (*models.VacationBalance, error) {
	balance, err := repo.Balance.GetByEmployeeYear(employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения баланса: %w", err)
	}
	if balance != nil {
		return balance, nil
	}

	policy, err := repo.Policy.GetByYear(year)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения политики отпусков: %w", err)
	}
	if policy == nil {
		s.logger.WithField("year", year).Warn("No vacation policy for year")
		return nil, nil
	}

	employee, err := repo.Employee.GetByID(employeeID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения сотрудника: %w", err)
	}
	if employee == nil || !employee.IsActive {
		return nil, nil
	}

	carryOver, err := s.carryOver(repo, policy, employeeID, year)
	if err != nil {
		return nil, err
	}

	fresh := models.NewVacationBalance(employeeID, policy, year, carryOver)
	created, err := repo.Balance.CreateIfAbsent(&fresh)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания баланса: %w", err)
	}
	if created {
		s.logger.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"year":        year,
			"allocated":   fresh.AllocatedDays.String(),
			"carry_over":  carryOver.String(),
		}).Info("Vacation balance created")
		return &fresh, nil
	}

	// параллельное обращение успело создать запись
	balance, err = repo.Balance.GetByEmployeeYear(employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения баланса: %w", err)
	}
	return balance, nil
}

func (s *BalanceService) carryOver(repo *repository.Repository, policy *models.VacationPolicy, employeeID uint, year int) (decimal.Decimal, error) {
	previous, err := repo.Balance.GetByEmployeeYear(employeeID, year-1)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ошибка получения баланса прошлого года: %w", err)
	}
	return policy.CarryOverFrom(previous), nil
}

// Recalculate пересчитывает использованные дни по утвержденным заявкам года.
// (nil, nil) - баланса нет.
func (s *BalanceService) Recalculate(employeeID uint, year int) (*models.VacationBalance, error) {
	var balance *models.VacationBalance
	err := s.repo.Transaction(func(repo *repository.Repository) error {
		var err error
		balance, err = s.recalculate(repo, employeeID, year)
		if err != nil || balance == nil {
			return err
		}
		return appendAudit(repo, models.AuditEntry{
			Action:      models.AuditRecalculate,
			EntityType:  entityVacationBalance,
			EntityID:    balance.ID,
			PerformedBy: "system",
		}, map[string]any{
			"employee_id": employeeID,
			"year":        year,
			"used":        balance.UsedDays.String(),
			"remaining":   balance.RemainingDays.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	return balance, nil
}

func (s *BalanceService) recalculate(repo *repository.Repository, employeeID uint, year int) (*models.VacationBalance, error) {
	balance, err := repo.Balance.GetByEmployeeYear(employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения баланса: %w", err)
	}
	if balance == nil {
		return nil, nil
	}

	approved, err := repo.Request.ListApprovedStartingInYear(employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения утвержденных заявок: %w", err)
	}

	used := decimal.Zero
	for _, request := range approved {
		used = used.Add(request.RequestedDays)
	}

	balance.ApplyUsage(used)
	if err := repo.Balance.Update(balance); err != nil {
		return nil, fmt.Errorf("ошибка обновления баланса: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"year":        year,
		"used":        used.String(),
		"remaining":   balance.RemainingDays.String(),
	}).Info("Vacation balance recalculated")

	return balance, nil
}

// HasSufficientBalance - хватает ли остатка на days дней
func (s *BalanceService) HasSufficientBalance(employeeID uint, year int, days decimal.Decimal) (bool, error) {
	return s.hasSufficientBalance(s.repo, employeeID, year, days)
}

func (s *BalanceService) hasSufficientBalance(repo *repository.Repository, employeeID uint, year int, days decimal.Decimal) (bool, error) {
	balance, err := s.getOrCreate(repo, employeeID, year)
	if err != nil {
		return false, err
	}
	if balance == nil {
		return false, nil
	}
	return balance.RemainingDays.GreaterThanOrEqual(days), nil
}
