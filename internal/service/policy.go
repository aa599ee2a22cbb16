package service

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"vacation-tracker/internal/models"
	"vacation-tracker/internal/repository"
)

var ErrInvalidPolicy = errors.New("invalid vacation policy")

// CreatePolicy сохраняет политику отпусков на год и пишет запись в журнал
func (s *Service) CreatePolicy(policy *models.VacationPolicy, performedBy string) error {
	if policy.AccrualType == "" {
		policy.AccrualType = models.AccrualAnnual
	}
	if !policy.IsValid() {
		return ErrInvalidPolicy
	}

	err := s.repo.Transaction(func(repo *repository.Repository) error {
		if err := repo.Policy.Create(policy); err != nil {
			return fmt.Errorf("ошибка создания политики: %w", err)
		}
		return appendAudit(repo, models.AuditEntry{
			Action:      models.AuditPolicyCreated,
			EntityType:  entityVacationPolicy,
			EntityID:    policy.ID,
			PerformedBy: performedBy,
		}, map[string]any{
			"year":       policy.Year,
			"total_days": policy.TotalDaysPerYear.String(),
			"carry_over": policy.CarryOverMaxDays.String(),
			"is_default": policy.IsDefault,
		})
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"policy_id": policy.ID,
		"year":      policy.Year,
	}).Info("Vacation policy created")

	return nil
}

// PolicyForYear - политика, по которой создаются балансы года
func (s *Service) PolicyForYear(year int) (*models.VacationPolicy, error) {
	return s.repo.Policy.GetByYear(year)
}
