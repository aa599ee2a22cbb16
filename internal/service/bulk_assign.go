package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"vacation-tracker/internal/models"
	"vacation-tracker/internal/repository"
)

var ErrPolicyNotFound = errors.New("политика отпусков не найдена")

type BulkAssignResult struct {
	Created int
	Skipped int
	Total   int
}

// BulkAssign создает балансы года по политике всем активным сотрудникам,
// у которых их еще нет. Вставка выполняется одной транзакцией.
func (s *BalanceService) BulkAssign(policyID uint, year int, performedBy string) (*BulkAssignResult, error) {
	policy, err := s.repo.Policy.GetByID(policyID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения политики отпусков: %w", err)
	}
	if policy == nil {
		return nil, ErrPolicyNotFound
	}

	employees, err := s.repo.Employee.ListActive()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения сотрудников: %w", err)
	}

	assigned, err := s.repo.Balance.EmployeeIDsWithBalance(policyID, year)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения балансов: %w", err)
	}
	hasBalance := make(map[uint]bool, len(assigned))
	for _, id := range assigned {
		hasBalance[id] = true
	}

	s.logger.WithFields(logrus.Fields{
		"policy_id":    policyID,
		"year":         year,
		"employees":    len(employees),
		"performed_by": performedBy,
	}).Info("Starting bulk balance assignment")

	var balances []models.VacationBalance
	for _, employee := range employees {
		if hasBalance[employee.ID] {
			continue
		}
		carryOver, err := s.carryOver(s.repo, policy, employee.ID, year)
		if err != nil {
			s.logger.WithError(err).WithField("employee_id", employee.ID).
				Warn("Carry-over unavailable, assigning without it")
			carryOver = decimal.Zero
		}
		balances = append(balances, models.NewVacationBalance(employee.ID, policy, year, carryOver))
	}

	result := &BulkAssignResult{Total: len(employees)}

	err = s.repo.Transaction(func(repo *repository.Repository) error {
		inserted, err := repo.Balance.CreateBatch(balances)
		if err != nil {
			return err
		}
		result.Created = int(inserted)
		result.Skipped = result.Total - result.Created

		return appendAudit(repo, models.AuditEntry{
			Action:      models.AuditBulkAssign,
			EntityType:  entityVacationPolicy,
			EntityID:    policyID,
			PerformedBy: performedBy,
		}, map[string]any{
			"year":    year,
			"created": result.Created,
			"skipped": result.Skipped,
			"total":   result.Total,
		})
	})
	if err != nil {
		s.logger.WithError(err).WithField("policy_id", policyID).Error("Bulk assignment failed")
		return nil, fmt.Errorf("ошибка массового назначения балансов: %w", err)
	}

	s.metrics.BulkAssign(result.Created, result.Skipped)

	s.logger.WithFields(logrus.Fields{
		"policy_id": policyID,
		"year":      year,
		"created":   result.Created,
		"skipped":   result.Skipped,
	}).Info("Bulk balance assignment finished")

	return result, nil
}
