package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"vacation-tracker/internal/models"
	"vacation-tracker/internal/repository"
	"vacation-tracker/pkg/logger"
)

const dateFormat = "02.01.2006"

// ValidationResult - итог проверки периода. Errors делают заявку невалидной, Warnings - нет.
type ValidationResult struct {
	IsValid       bool
	Errors        []string
	Warnings      []string
	WorkingDays   decimal.Decimal
	AvailableDays decimal.Decimal
}

func (r *ValidationResult) addError(format string, args ...any) {
	r.IsValid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

type ValidatorConfig struct {
	// LongRequestDays - порог предупреждения о длинной заявке
	LongRequestDays int
	// PastGraceDays - на сколько дней назад можно начинать заявку
	PastGraceDays int
	Now           func() time.Time
}

func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		LongRequestDays: 15,
		PastGraceDays:   1,
		Now:             time.Now,
	}
}

type ValidatorService struct {
	repo     *repository.Repository
	calendar *CalendarService
	balances *BalanceService
	cfg      ValidatorConfig
	logger   *logrus.Logger
}

func NewValidatorService(
	repo *repository.Repository,
	calendar *CalendarService,
	balances *BalanceService,
	cfg ValidatorConfig,
	log *logrus.Logger,
) *ValidatorService {
	defaults := DefaultValidatorConfig()
	if cfg.LongRequestDays <= 0 {
		cfg.LongRequestDays = defaults.LongRequestDays
	}
	if cfg.PastGraceDays < 0 {
		cfg.PastGraceDays = defaults.PastGraceDays
	}
	if cfg.Now == nil {
		cfg.Now = defaults.Now
	}

	return &ValidatorService{
		repo:     repo,
		calendar: calendar,
		balances: balances,
		cfg:      cfg,
		logger:   logger.OrDefault(log),
	}
}

// Validate проверяет период заявки сотрудника. excludeRequestID исключает саму заявку
// из проверки пересечений (0 - не исключать).
// Может создать баланс года начала, если его еще не было.
func (s *ValidatorService) Validate(employeeID uint, start, end time.Time, excludeRequestID uint) (*ValidationResult, error) {
	start, end = models.DateOnly(start), models.DateOnly(end)
	result := &ValidationResult{
		IsValid:       true,
		WorkingDays:   decimal.Zero,
		AvailableDays: decimal.Zero,
	}

	if end.Before(start) {
		result.addError("дата окончания не может быть раньше даты начала")
		return result, nil
	}

	earliest := models.DateOnly(s.cfg.Now()).AddDate(0, 0, -s.cfg.PastGraceDays)
	if start.Before(earliest) {
		result.addError("нельзя создать заявку на прошедшие даты (раньше %s)", earliest.Format(dateFormat))
		return result, nil
	}

	workingDays, err := s.calendar.CountWorkingDays(start, end)
	if err != nil {
		return nil, err
	}
	result.WorkingDays = workingDays
	if workingDays.IsZero() {
		result.addWarning("в выбранном периоде нет рабочих дней")
	}

	balance, err := s.balances.GetOrCreate(employeeID, start.Year())
	if err != nil {
		return nil, err
	}
	if balance == nil {
		result.addError("не найден баланс отпуска на %d год", start.Year())
		return result, nil
	}
	result.AvailableDays = balance.RemainingDays

	if workingDays.GreaterThan(balance.RemainingDays) {
		result.addError("недостаточно дней отпуска: запрошено %s, доступно %s",
			workingDays.String(), balance.RemainingDays.String())
	}

	overlapping, err := s.repo.Request.FindOverlapping(employeeID, start, end, excludeRequestID)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки пересечений: %w", err)
	}
	if len(overlapping) > 0 {
		other := overlapping[0]
		result.addError("период пересекается с заявкой %s - %s (статус: %s)",
			other.StartDate.Format(dateFormat), other.EndDate.Format(dateFormat), other.Status)
	}

	if workingDays.GreaterThan(decimal.NewFromInt(int64(s.cfg.LongRequestDays))) {
		result.addWarning("заявка длиннее %d рабочих дней, согласуйте ее с руководителем заранее", s.cfg.LongRequestDays)
	}

	if !result.IsValid {
		s.logger.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"start":       start.Format(models.DateLayout),
			"end":         end.Format(models.DateLayout),
			"errors":      len(result.Errors),
		}).Debug("Vacation period rejected by validation")
	}

	return result, nil
}
